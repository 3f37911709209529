package rooms

import "github.com/abhisek/periodica/internal/game"

const (
	GroupLaboratory = "Sala Laboratorio"
	GroupLibrary    = "Biblioteca scientifica"
)

var templates = []game.RoomTemplate{
	{ID: 1, Name: "Stanza 1", Group: GroupLaboratory, Theme: game.ThemePrimary},
	{ID: 2, Name: "Stanza 2", Group: GroupLaboratory, Theme: game.ThemePrimary},
	{ID: 3, Name: "Stanza 3", Group: GroupLaboratory, Theme: game.ThemePrimary},
	{ID: 4, Name: "Stanza 4", Group: GroupLaboratory, Theme: game.ThemePrimary},
	{ID: 5, Name: "Stanza 5", Group: GroupLibrary, Theme: game.ThemeLibrary},
	{ID: 6, Name: "Stanza 6", Group: GroupLibrary, Theme: game.ThemeLibrary},
	{ID: 7, Name: "Stanza 7", Group: GroupLibrary, Theme: game.ThemeLibrary},
	{ID: 8, Name: "Stanza 8", Group: GroupLibrary, Theme: game.ThemeLibrary},
}

// Templates returns a copy of the compiled-in room templates in id order.
func Templates() []game.RoomTemplate {
	out := make([]game.RoomTemplate, len(templates))
	copy(out, templates)
	return out
}
