// Package badges maps a final score to the victory badge.
package badges

import "github.com/abhisek/periodica/internal/i18n"

// Tier identifies a badge level.
type Tier string

const (
	TierMendeleev  Tier = "mendeleev"
	TierGiants     Tier = "giants"
	TierFewSecrets Tier = "few-secrets"
	TierMoreEffort Tier = "more-effort"
	TierMadeIt     Tier = "made-it"
)

// AllTiers returns all tiers from highest to lowest.
func AllTiers() []Tier {
	return []Tier{TierMendeleev, TierGiants, TierFewSecrets, TierMoreEffort, TierMadeIt}
}

// ForScore returns the tier earned by a final score.
func ForScore(score int) Tier {
	switch {
	case score >= 100:
		return TierMendeleev
	case score >= 90:
		return TierGiants
	case score >= 75:
		return TierFewSecrets
	case score >= 60:
		return TierMoreEffort
	default:
		return TierMadeIt
	}
}

// Title returns the Italian badge text.
func (t Tier) Title() string {
	switch t {
	case TierMendeleev:
		return i18n.T("BADGE_MENDELEEV")
	case TierGiants:
		return i18n.T("BADGE_GIANTS")
	case TierFewSecrets:
		return i18n.T("BADGE_FEW_SECRETS")
	case TierMoreEffort:
		return i18n.T("BADGE_MORE_EFFORT")
	case TierMadeIt:
		return i18n.T("BADGE_MADE_IT")
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierMendeleev:
		return "🏆"
	case TierGiants:
		return "🥇"
	case TierFewSecrets:
		return "🥈"
	case TierMoreEffort:
		return "🥉"
	default:
		return "⚗"
	}
}
