// Package celebrate plays the confetti overlay shown after a successful
// business action, such as an invoice being marked paid.
//
// The driver owns no window or timer of its own. The host provides the
// overlay surface, the frame scheduler and the clock, and every frame runs
// on the host's frame callback.
package celebrate

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/bizpanel/internal/config"
	"github.com/iburimskiy/bizpanel/internal/logging"
)

// Driver runs at most one celebration at a time.
type Driver struct {
	host  Host
	sched Scheduler
	clk   clock.Clock
	rng   *rand.Rand
	log   logrus.FieldLogger

	count    int
	duration time.Duration
	gravity  float64
	palette  []color.RGBA

	// run state
	running   bool
	surface   Surface
	particles []Particle
	start     time.Time
	pending   FrameID
	frames    int
}

type Option func(*Driver)

func WithClock(c clock.Clock) Option { return func(d *Driver) { d.clk = c } }

func WithRand(r *rand.Rand) Option { return func(d *Driver) { d.rng = r } }

func WithLogger(l logrus.FieldLogger) Option { return func(d *Driver) { d.log = l } }

func WithDuration(dur time.Duration) Option { return func(d *Driver) { d.duration = dur } }

func WithParticles(n int) Option { return func(d *Driver) { d.count = n } }

func WithGravity(g float64) Option { return func(d *Driver) { d.gravity = g } }

func WithPalette(p []color.RGBA) Option { return func(d *Driver) { d.palette = p } }

func New(host Host, sched Scheduler, opts ...Option) *Driver {
	d := &Driver{
		host:     host,
		sched:    sched,
		clk:      clock.New(),
		count:    config.CelebrationParticles,
		duration: config.CelebrationDuration,
		gravity:  config.CelebrationGravity,
		palette:  config.Palette,
	}
	for _, o := range opts {
		o(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.log == nil {
		d.log = logging.Discard()
	}
	if len(d.palette) == 0 {
		d.palette = []color.RGBA{{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	}
	return d
}

// Play starts a celebration. It never fails: without a scheduler or a
// drawing surface it does nothing, and while a run is active new triggers
// are ignored.
func (d *Driver) Play() {
	if d.running {
		d.log.Debug("celebration already running, trigger ignored")
		return
	}
	if d.sched == nil {
		d.log.Debug("no frame scheduler, celebration skipped")
		return
	}
	if d.host == nil {
		d.log.WithError(ErrSurfaceUnavailable).Debug("celebration skipped")
		return
	}
	s, err := d.host.Attach()
	if err != nil || s == nil {
		d.log.WithError(err).Debug("celebration skipped: no drawing surface")
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		s.Remove()
		d.log.WithError(ErrSurfaceUnavailable).Debug("celebration skipped: empty surface")
		return
	}

	d.particles = make([]Particle, d.count)
	for i := range d.particles {
		d.particles[i] = newParticle(d.rng, d.palette, d.gravity, w, h)
	}
	d.surface = s
	d.running = true
	d.frames = 0
	d.start = d.clk.Now()
	d.pending = d.sched.RequestFrame(d.frame)

	d.log.WithField("particles", d.count).Debug("celebration started")
}

// Running reports whether a run is active.
func (d *Driver) Running() bool { return d.running }

// Frames reports how many frames the current or last run has drawn.
func (d *Driver) Frames() int { return d.frames }

// Particles returns a copy of the live particle set.
func (d *Driver) Particles() []Particle {
	return append([]Particle(nil), d.particles...)
}

func (d *Driver) frame() {
	if !d.running {
		return
	}
	d.pending = 0

	if d.clk.Since(d.start) > d.duration {
		d.stop()
		return
	}

	d.surface.Clear()
	for i := range d.particles {
		d.particles[i].draw(d.surface)
	}

	w, h := d.surface.Size()
	for i := range d.particles {
		p := &d.particles[i]
		p.step()
		if p.Y > h {
			*p = respawn(d.rng, d.palette, d.gravity, w)
		}
	}
	d.frames++

	d.pending = d.sched.RequestFrame(d.frame)
}

// stop is the only terminal transition of a run.
func (d *Driver) stop() {
	if d.pending != 0 {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
	}
	d.surface.Remove()
	d.surface = nil
	d.particles = nil
	d.running = false

	d.log.WithField("frames", d.frames).Debug("celebration finished")
}
