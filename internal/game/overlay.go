package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/bizpanel/internal/celebrate"
)

// overlayHost hands out the celebration overlay. Only the most recently
// attached overlay is drawn, on top of the dashboard, and it never sees input.
type overlayHost struct {
	width, height int
	active        *overlay
}

func newOverlayHost(width, height int) *overlayHost {
	return &overlayHost{width: width, height: height}
}

// resize follows the window layout so new overlays cover the viewport.
func (h *overlayHost) resize(width, height int) {
	h.width, h.height = width, height
}

func (h *overlayHost) Attach() (celebrate.Surface, error) {
	if h.width <= 0 || h.height <= 0 {
		return nil, celebrate.ErrSurfaceUnavailable
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	o := &overlay{
		host:  h,
		img:   ebiten.NewImage(h.width, h.height),
		white: white,
		brush: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
	h.active = o
	return o, nil
}

func (h *overlayHost) draw(screen *ebiten.Image) {
	if h.active == nil {
		return
	}
	screen.DrawImage(h.active.img, nil)
}

// overlay is an offscreen image the size of the window.
type overlay struct {
	host  *overlayHost
	img   *ebiten.Image
	white *ebiten.Image
	brush *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16

	removed bool
}

func (o *overlay) Size() (float64, float64) {
	b := o.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (o *overlay) Clear() {
	o.img.Clear()
}

func (o *overlay) FillPolygon(pts []celebrate.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	o.vertices, o.indices = path.AppendVerticesAndIndicesForFilling(o.vertices[:0], o.indices[:0])
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range o.vertices {
		o.vertices[i].SrcX = 1
		o.vertices[i].SrcY = 1
		o.vertices[i].ColorR = r
		o.vertices[i].ColorG = g
		o.vertices[i].ColorB = b
		o.vertices[i].ColorA = a
	}
	o.img.DrawTriangles(o.vertices, o.indices, o.brush, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (o *overlay) FillCircle(cx, cy, r float64, c color.RGBA) {
	vector.DrawFilledCircle(o.img, float32(cx), float32(cy), float32(r), c, true)
}

func (o *overlay) Remove() {
	if o.removed {
		return
	}
	o.removed = true
	if o.host.active == o {
		o.host.active = nil
	}
	if o.img != nil {
		o.img.Deallocate()
	}
	if o.white != nil {
		o.white.Deallocate()
	}
}
