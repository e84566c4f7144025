// Package sound plays alert audio for error messages.
//
// Every Player is best-effort: Play never blocks the caller for long, never
// panics, and never reports failure. Backends that cannot work on the current
// machine are replaced by Noop when selected. Players that play inside this
// process implement Drainer; call Drain before exiting.
package sound

import (
	"strings"
	"sync"
	"time"
)

// Player plays an audio resource once.
type Player interface {
	Play(path string)
}

// Backend names accepted by Select.
const (
	BackendAuto    = "auto"
	BackendCommand = "command"
	BackendBeep    = "beep"
	BackendNone    = "none"
)

// Backends lists every valid backend name.
var Backends = []string{BackendAuto, BackendCommand, BackendBeep, BackendNone}

// Options configures backend selection.
type Options struct {
	// MaxDuration bounds a single playback. Zero uses DefaultMaxDuration.
	MaxDuration time.Duration

	// Cooldown drops alerts that arrive within this interval of the last one.
	// Zero disables rate limiting.
	Cooldown time.Duration
}

// DefaultMaxDuration is the playback bound applied when none is configured.
const DefaultMaxDuration = 10 * time.Second

// Noop discards every request.
type Noop struct{}

// Play does nothing.
func (Noop) Play(string) {}

// Drainer is implemented by players whose playback stops when this process
// exits.
type Drainer interface {
	Drain()
}

// Drain waits for in-flight playback of p when p is a Drainer.
func Drain(p Player) {
	if d, ok := p.(Drainer); ok {
		d.Drain()
	}
}

// Available reports whether p can make any sound at all.
func Available(p Player) bool {
	switch v := p.(type) {
	case nil, Noop, *Noop:
		return false
	case *Cooldown:
		return Available(v.next)
	case interface{ Ready() bool }:
		return v.Ready()
	}
	return true
}

// newBeepPlayer is swapped in tests so no real audio device is opened.
var newBeepPlayer = NewBeepPlayer

// Select returns the Player for backend. "auto" prefers an installed
// command-line player, then the in-process beep player if the speaker
// initializes, then Noop. Unknown names select Noop.
func Select(backend string, opts Options) Player {
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}

	var p Player
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendAuto, "":
		if cp, err := DetectCommandPlayer(opts.MaxDuration); err == nil {
			p = cp
		} else if bp := newBeepPlayer(opts.MaxDuration); bp.Ready() {
			p = bp
		} else {
			return Noop{}
		}
	case BackendCommand:
		cp, err := DetectCommandPlayer(opts.MaxDuration)
		if err != nil {
			return Noop{}
		}
		p = cp
	case BackendBeep:
		bp := newBeepPlayer(opts.MaxDuration)
		if !bp.Ready() {
			return Noop{}
		}
		p = bp
	default:
		return Noop{}
	}

	if opts.Cooldown > 0 {
		p = NewCooldown(p, opts.Cooldown)
	}
	return p
}

// Cooldown rate-limits another Player.
type Cooldown struct {
	next     Player
	interval time.Duration
	last     time.Time
	now      func() time.Time
	mu       sync.Mutex
}

// NewCooldown wraps next so plays within interval of the previous accepted
// play are dropped.
func NewCooldown(next Player, interval time.Duration) *Cooldown {
	return &Cooldown{
		next:     next,
		interval: interval,
		now:      time.Now,
	}
}

// Play forwards to the wrapped player unless the cooldown is active.
func (c *Cooldown) Play(path string) {
	c.mu.Lock()
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < c.interval {
		c.mu.Unlock()
		return
	}
	c.last = now
	c.mu.Unlock()

	c.next.Play(path)
}

// Drain forwards to the wrapped player.
func (c *Cooldown) Drain() {
	Drain(c.next)
}

// Recorder is a Player that remembers every requested path.
// It is used by tests in this module to observe alert calls.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// Play records path.
func (r *Recorder) Play(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Calls returns the number of recorded plays.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// Paths returns a copy of the recorded paths.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
