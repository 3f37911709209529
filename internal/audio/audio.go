// Package audio turns game sound cues into output on a best-effort basis.
// Playback failures are logged and never reach the player.
package audio

import (
	"io"
	"log/slog"
	"sync"
)

// Cue names a sound the game wants played.
type Cue string

const (
	CueClick   Cue = "click"
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
	CueUnlock  Cue = "unlock"
	CueType    Cue = "type"
)

// Volume is the playback level used by sinks that support one.
const Volume = 0.4

// Sink renders a cue.
type Sink interface {
	Play(cue Cue) error
}

// Controller gates cues on the mute flag. Nothing plays until the player
// has interacted once.
type Controller struct {
	mu     sync.Mutex
	sink   Sink
	muted  bool
	primed bool
	logger *slog.Logger
	onPlay func(Cue)
}

// NewController creates a Controller over sink.
func NewController(sink Sink, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{sink: sink, logger: logger}
}

// OnPlay registers a callback run for every cue actually sent to the sink.
func (c *Controller) OnPlay(fn func(Cue)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPlay = fn
}

// SetMuted applies the mute flag immediately.
func (c *Controller) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = muted
}

// Muted reports the current mute flag.
func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Interact marks the first player interaction.
func (c *Controller) Interact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primed = true
}

// Play sends cue to the sink unless muted or not yet primed. Sink errors
// are swallowed.
func (c *Controller) Play(cue Cue) {
	c.mu.Lock()
	if c.muted || !c.primed || c.sink == nil || cue == "" {
		c.mu.Unlock()
		return
	}
	sink, onPlay := c.sink, c.onPlay
	c.mu.Unlock()

	if err := sink.Play(cue); err != nil {
		c.logger.Debug("audio cue failed", "cue", string(cue), "error", err)
		return
	}
	if onPlay != nil {
		onPlay(cue)
	}
}

// Bell rings the terminal bell for cues that deserve attention.
type Bell struct {
	W io.Writer
}

var bellCues = map[Cue]bool{
	CueCorrect: true,
	CueWrong:   true,
	CueUnlock:  true,
}

func (b Bell) Play(cue Cue) error {
	if !bellCues[cue] {
		return nil
	}
	_, err := b.W.Write([]byte{'\a'})
	return err
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Play(Cue) error { return nil }

// Recorder keeps the cues it receives.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
	Err  error
}

func (r *Recorder) Play(cue Cue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.cues = append(r.cues, cue)
	return nil
}

// Cues returns the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.cues))
	copy(out, r.cues)
	return out
}
