// Package chime synthesizes the short sound played with a celebration.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/bizpanel/internal/logging"
)

// C5, E5, G5
var arpeggioNotes = []float64{523.25, 659.25, 783.99}

const noteLength = 120 * time.Millisecond

// NoteGenerator plays one decaying sine note.
type NoteGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewNoteGenerator(sr beep.SampleRate, freq float64) *NoteGenerator {
	return &NoteGenerator{sr: sr, freq: freq}
}

func (g *NoteGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, exponential decay
		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t*12)

		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.05 * envelope * math.Sin(2*math.Pi*g.freq*2*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoteGenerator) Err() error {
	return nil
}

// NewArpeggio returns the finite rising three-note chime.
func NewArpeggio(sr beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(arpeggioNotes))
	for _, f := range arpeggioNotes {
		notes = append(notes, beep.Take(sr.N(noteLength), NewNoteGenerator(sr, f)))
	}
	return beep.Seq(notes...)
}

// Length is the number of samples the arpeggio produces at sr.
func Length(sr beep.SampleRate) int {
	return sr.N(noteLength) * len(arpeggioNotes)
}

// Player plays the chime on the default audio device.
type Player struct {
	sr      beep.SampleRate
	enabled bool
	log     logrus.FieldLogger

	once    sync.Once
	initErr error
}

func NewPlayer(sampleRate int, enabled bool, log logrus.FieldLogger) *Player {
	if log == nil {
		log = logging.Discard()
	}
	return &Player{sr: beep.SampleRate(sampleRate), enabled: enabled, log: log}
}

// Play starts the chime and returns immediately. Audio failures disable the
// player; they are logged once and never surface to the caller.
func (p *Player) Play() {
	if !p.enabled {
		return
	}
	p.once.Do(func() {
		p.initErr = speaker.Init(p.sr, p.sr.N(time.Second/20))
		if p.initErr != nil {
			p.log.WithError(p.initErr).Warn("audio unavailable, chime disabled")
		}
	})
	if p.initErr != nil {
		return
	}
	speaker.Play(NewArpeggio(p.sr))
	p.log.WithField("duration", p.sr.D(Length(p.sr))).Debug("chime playing")
}
