package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/bizpanel/internal/celebrate"
	"github.com/iburimskiy/bizpanel/internal/chime"
	"github.com/iburimskiy/bizpanel/internal/config"
)

// Celebration ties the confetti driver to the ebiten loop. ebiten has no
// frame-request primitive, so Update pumps a FrameQueue once per tick.
type Celebration struct {
	host   *overlayHost
	frames celebrate.FrameQueue
	driver *celebrate.Driver
	chime  *chime.Player
}

func NewCelebration(player *chime.Player, log logrus.FieldLogger) *Celebration {
	c := &Celebration{
		host:  newOverlayHost(config.WindowWidth, config.WindowHeight),
		chime: player,
	}
	c.driver = celebrate.New(c.host, &c.frames, celebrate.WithLogger(log))
	return c
}

// Celebrate must be called from the ebiten Update goroutine.
func (c *Celebration) Celebrate() {
	if c.driver.Running() {
		return
	}
	c.driver.Play()
	if c.driver.Running() && c.chime != nil {
		c.chime.Play()
	}
}

func (c *Celebration) tick() {
	c.frames.Pump()
}

func (c *Celebration) draw(screen *ebiten.Image) {
	c.host.draw(screen)
}

func (c *Celebration) resize(width, height int) {
	c.host.resize(width, height)
}
