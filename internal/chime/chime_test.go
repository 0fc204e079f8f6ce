package chime

import (
	"math"
	"testing"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteGeneratorRange(t *testing.T) {
	g := NewNoteGenerator(beep.SampleRate(44100), 523.25)
	samples := make([][2]float64, 2048)

	n, ok := g.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 2048, n)
	assert.NoError(t, g.Err())

	peak := 0.0
	for _, s := range samples {
		assert.LessOrEqual(t, math.Abs(s[0]), 1.0)
		assert.Equal(t, s[0], s[1])
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Greater(t, peak, 0.05)
}

func TestArpeggioIsFinite(t *testing.T) {
	sr := beep.SampleRate(44100)
	s := NewArpeggio(sr)

	total := 0
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, Length(sr), total)
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := NewPlayer(44100, false, nil)
	assert.NotPanics(t, p.Play)
}
