// Package game is the ebiten front end: the dashboard window and the
// celebration overlay drawn on top of it.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/bizpanel/internal/app"
	"github.com/iburimskiy/bizpanel/internal/config"
)

type Game struct {
	app   *app.App
	party *Celebration
	log   logrus.FieldLogger

	// view
	tab      app.Tab
	selected int
	top      int // first visible row
	rows     []app.Row
	time     float64

	// input edge detection
	keys keyEdges

	// button state
	buttonHovered bool
	buttonPressed bool

	status  string
	lastErr error
}

func New(a *app.App, party *Celebration, log logrus.FieldLogger) *Game {
	return &Game{
		app:    a,
		party:  party,
		log:    log,
		keys:   keyEdges{},
		status: "Tab: switch view, Up/Down: select, Enter/button: action, C: celebrate, R: reload, Esc/Q: quit",
	}
}

func (g *Game) Update() error {
	pressed := make(map[ebiten.Key]bool, len(watchedKeys))
	for _, k := range watchedKeys {
		pressed[k] = g.keys.update(k, ebiten.IsKeyPressed(k))
	}

	g.rows = g.app.Rows(g.tab, g.app.Now())
	if g.selected >= len(g.rows) {
		g.selected = len(g.rows) - 1
	}
	if g.selected < 0 {
		g.selected = 0
	}
	g.top = keepVisible(g.top, g.selected, len(g.rows))

	// Handle button interactions
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.primaryAction()
		}
		g.buttonPressed = false
	}

	// Row selection by click
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if i, ok := rowAt(mouseY, g.top, len(g.rows)); ok {
			g.selected = i
		}
	}

	switch {
	case pressed[ebiten.KeyTab]:
		g.tab = g.tab.Next()
		g.selected, g.top = 0, 0
	case pressed[ebiten.KeyDown]:
		if g.selected < len(g.rows)-1 {
			g.selected++
		}
	case pressed[ebiten.KeyUp]:
		if g.selected > 0 {
			g.selected--
		}
	case pressed[ebiten.KeyEnter]:
		g.primaryAction()
	case pressed[ebiten.KeyP]:
		g.actOn(app.TabInvoices)
	case pressed[ebiten.KeyA]:
		g.actOn(app.TabQuotes)
	case pressed[ebiten.KeyJ]:
		g.actOn(app.TabJobs)
	case pressed[ebiten.KeyD]:
		g.declineSelected()
	case pressed[ebiten.KeyC]:
		g.party.Celebrate()
	case pressed[ebiten.KeyR]:
		g.report(g.app.Reload(context.Background()), "Reloaded")
	case pressed[ebiten.KeyEscape], pressed[ebiten.KeyQ]:
		return ebiten.Termination
	}
	g.top = keepVisible(g.top, g.selected, len(g.rows))

	g.time += 1.0 / 60.0
	g.party.tick()
	return nil
}

func (g *Game) selectedRow() (app.Row, bool) {
	if g.selected < 0 || g.selected >= len(g.rows) || g.rows[g.selected].ID == "" {
		return app.Row{}, false
	}
	return g.rows[g.selected], true
}

func (g *Game) buttonLabel() string {
	switch g.tab {
	case app.TabInvoices:
		return "Mark paid"
	case app.TabQuotes:
		return "Accept"
	case app.TabJobs:
		return "Advance"
	}
	return "Celebrate"
}

func (g *Game) primaryAction() {
	ctx := context.Background()
	row, ok := g.selectedRow()

	switch g.tab {
	case app.TabInvoices:
		if !ok || !g.confirm(fmt.Sprintf("Mark invoice %s as paid?", row.Label)) {
			return
		}
		inv, err := g.app.MarkInvoicePaid(ctx, row.ID)
		g.report(err, fmt.Sprintf("Invoice %s paid: %s", inv.Number, inv.Amount))
	case app.TabQuotes:
		if !ok || !g.confirm(fmt.Sprintf("Accept quote %s and issue an invoice?", row.Label)) {
			return
		}
		inv, err := g.app.AcceptQuote(ctx, row.ID)
		g.report(err, fmt.Sprintf("Quote accepted, invoice %s issued", inv.Number))
	case app.TabJobs:
		if !ok {
			return
		}
		j, err := g.app.AdvanceJob(ctx, row.ID)
		g.report(err, fmt.Sprintf("Job %q is now %s", j.Title, j.Status))
	default:
		g.party.Celebrate()
	}
}

// actOn runs the primary action only while tab is showing.
func (g *Game) actOn(tab app.Tab) {
	if g.tab == tab {
		g.primaryAction()
	}
}

func (g *Game) declineSelected() {
	row, ok := g.selectedRow()
	if g.tab != app.TabQuotes || !ok {
		return
	}
	err := g.app.DeclineQuote(context.Background(), row.ID)
	g.report(err, "Quote declined")
}

// confirm asks through a native dialog. Without a dialog backend the
// action goes ahead.
func (g *Game) confirm(text string) bool {
	err := zenity.Question(text,
		zenity.Title("bizpanel"),
		zenity.OKLabel("Yes"),
		zenity.CancelLabel("No"),
	)
	if err == nil {
		return true
	}
	if errors.Is(err, zenity.ErrCanceled) {
		return false
	}
	g.log.WithError(err).Warn("confirmation dialog unavailable")
	return true
}

func (g *Game) report(err error, ok string) {
	if err != nil {
		g.lastErr = err
		g.log.WithError(err).Warn("action failed")
		return
	}
	g.lastErr = nil
	g.status = ok
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawHeader(screen)
	g.drawButton(screen)
	g.drawRows(screen)

	status := g.status
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, config.WindowHeight-20)

	// Topmost, after everything else.
	g.party.draw(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	for y := 0; y < config.WindowHeight; y += 4 {
		ratio := float64(y) / float64(config.WindowHeight)
		r := uint8(14 + 8*math.Sin(g.time*0.2+ratio*math.Pi))
		g_val := uint8(16 + 6*math.Cos(g.time*0.15+ratio*math.Pi))
		b := uint8(26 + 10*math.Sin(g.time*0.1+ratio*math.Pi))
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, 4, color.RGBA{R: r, G: g_val, B: b, A: 255}, false)
	}
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	d := g.app.Dashboard(g.app.Now())
	summary := fmt.Sprintf("%s | clients %d | outstanding %s (%d) | overdue %s (%d) | paid this month %s | spent %s | over budget %d",
		d.User, d.Clients, d.Outstanding, d.UnpaidCount, d.Overdue, d.OverdueCount, d.PaidMonth, d.SpentMonth, d.OverBudget)
	ebitenutil.DebugPrintAt(screen, summary, 12, 12)

	x := config.ButtonX + config.ButtonWidth + 20
	for _, t := range app.Tabs {
		label := t.String()
		w := len(label)*7 + 16
		bg := color.RGBA{R: 40, G: 48, B: 66, A: 255}
		if t == g.tab {
			bg = color.RGBA{R: 90, G: 110, B: 150, A: 255}
		}
		vector.DrawFilledRect(screen, float32(x), config.ButtonY, float32(w), config.ButtonHeight, bg, false)
		ebitenutil.DebugPrintAt(screen, label, x+8, config.ButtonY+(config.ButtonHeight-16)/2)
		x += w + 6
	}
}

func (g *Game) drawRows(screen *ebiten.Image) {
	if len(g.rows) == 0 {
		ebitenutil.DebugPrintAt(screen, "Nothing here yet.", config.ListLeft, config.ListTop)
		return
	}

	first := g.top
	width := float32(config.WindowWidth - 2*config.ListLeft)
	for i := first; i < len(g.rows) && i-first < config.VisibleRows; i++ {
		row := g.rows[i]
		y := float32(config.ListTop + (i-first)*config.RowHeight)

		vector.DrawFilledRect(screen, config.ListLeft, y, width, config.RowHeight-2, toneColor(row.Tone), false)
		if g.tab == app.TabBudget && row.ID != "" {
			fill := width * float32(clamp01(row.Percent/100))
			vector.DrawFilledRect(screen, config.ListLeft, y+config.RowHeight-6, fill, 4, budgetColor(row.Percent), false)
		}
		if i == g.selected {
			vector.StrokeRect(screen, config.ListLeft, y, width, config.RowHeight-2, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)
		}
		ebitenutil.DebugPrintAt(screen, row.Text, config.ListLeft+8, int(y)+3)
	}
}

func (g *Game) drawButton(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, float32(config.ButtonX), float32(config.ButtonY), float32(config.ButtonWidth), float32(config.ButtonHeight), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(config.ButtonX), float32(config.ButtonY), float32(config.ButtonWidth), float32(config.ButtonHeight), 2, borderColor, false)

	text := g.buttonLabel()
	textWidth := len(text) * 6 // Approximate character width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.party.resize(config.WindowWidth, config.WindowHeight)
	return config.WindowWidth, config.WindowHeight
}
