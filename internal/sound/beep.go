package sound

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
	speakerBuffer   = 100 * time.Millisecond

	buzzFrequency = 110.0
	buzzDuration  = 600 * time.Millisecond
)

// BeepPlayer decodes and plays audio in-process through the system speaker.
// The speaker is initialized on first use; if that fails the player stays
// silent for the rest of the process.
type BeepPlayer struct {
	maxDuration time.Duration

	once  sync.Once
	ready bool

	initSpeaker func() error
	play        func(beep.Streamer)

	// pending counts alerts queued on the speaker and not yet finished.
	pending sync.WaitGroup
}

// NewBeepPlayer creates an in-process player bounded by maxDuration per alert.
func NewBeepPlayer(maxDuration time.Duration) *BeepPlayer {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	return &BeepPlayer{
		maxDuration: maxDuration,
		initSpeaker: func() error {
			return speaker.Init(sampleRate, sampleRate.N(speakerBuffer))
		},
		play: func(s beep.Streamer) {
			speaker.Play(s)
		},
	}
}

// Ready initializes the speaker if needed and reports whether it is usable.
func (p *BeepPlayer) Ready() bool {
	p.once.Do(func() {
		p.ready = p.initSpeaker() == nil
	})
	return p.ready
}

// Play queues path on the speaker and returns. Missing or undecodable files
// fall back to the bundled alert, then to a synthesized buzz. Playback
// happens inside this process, so callers about to exit should Drain first.
func (p *BeepPlayer) Play(path string) {
	if !p.Ready() {
		return
	}

	streamer, closer := load(path)
	bounded := beep.Take(sampleRate.N(p.maxDuration), streamer)

	p.pending.Add(1)
	p.play(beep.Seq(bounded, beep.Callback(func() {
		if closer != nil {
			closer()
		}
		p.pending.Done()
	})))
}

// Drain blocks until queued alerts finish, waiting at most maxDuration.
func (p *BeepPlayer) Drain() {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		// The last buffer is still being written out by the device.
		time.Sleep(speakerBuffer)
	case <-time.After(p.maxDuration):
	}
}

// load returns a streamer for path, the bundled clip, or the buzz, in that order.
func load(path string) (beep.Streamer, func()) {
	if path != "" {
		if s, closer, err := decodeFile(path); err == nil {
			return s, closer
		}
	}
	if s, closer, err := decode(io.NopCloser(bytes.NewReader(alertClip)), ".wav"); err == nil {
		return s, closer
	}
	return NewBuzz(sampleRate, buzzFrequency, buzzDuration), nil
}

// decodeFile opens an mp3 or wav file and resamples it to the speaker rate.
func decodeFile(path string) (beep.Streamer, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return decode(f, filepath.Ext(path))
}

// decode reads an mp3 or wav stream, chosen by ext, and resamples it.
// rc is closed on failure and by the returned closer otherwise.
func decode(rc io.ReadCloser, ext string) (beep.Streamer, func(), error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch strings.ToLower(ext) {
	case ".mp3":
		stream, format, err = mp3.Decode(rc)
	case ".wav":
		stream, format, err = wav.Decode(rc)
	default:
		err = fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		rc.Close()
		return nil, nil, err
	}

	closer := func() {
		stream.Close()
		rc.Close()
	}
	if format.SampleRate == sampleRate {
		return stream, closer, nil
	}
	return beep.Resample(resampleQuality, format.SampleRate, sampleRate, stream), closer, nil
}

// NewBuzz generates a fading sawtooth tone.
func NewBuzz(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	tone := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			t := float64(pos) / float64(sr)
			phase := t*freq - math.Floor(t*freq)
			env := 1 - float64(pos)/float64(total)
			v := (2*phase - 1) * env
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
	return &effects.Volume{Streamer: tone, Base: 2, Volume: -2}
}
