package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Garsondee/Maze-Escape/internal/game"
	"github.com/Garsondee/Maze-Escape/internal/records"
)

const (
	minimapSize = 168 // px, longest side
	hudPad      = 10
	lineH       = 18
)

var (
	colPanel     = color.RGBA{R: 6, G: 8, B: 12, A: 200}
	colPanelEdge = color.RGBA{R: 70, G: 80, B: 100, A: 180}
	colWall      = color.RGBA{R: 110, G: 110, B: 125, A: 255}
	colExit      = color.RGBA{R: 70, G: 210, B: 110, A: 255}
	colRoute     = color.RGBA{R: 240, G: 220, B: 90, A: 150}
	colPlayer    = color.RGBA{R: 240, G: 240, B: 255, A: 255}
	colHunter    = color.RGBA{R: 220, G: 40, B: 50, A: 255}
	colFrozen    = color.RGBA{R: 90, G: 180, B: 255, A: 255}
	colStamina   = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	colLocked    = color.RGBA{R: 200, G: 60, B: 40, A: 255}
	colText      = color.RGBA{R: 230, G: 230, B: 235, A: 255}
)

var pickupColors = map[game.PickupKind]color.RGBA{
	game.PickupStamina:    colStamina,
	game.PickupFreeze:     colFrozen,
	game.PickupFlashlight: {R: 255, G: 250, B: 220, A: 255},
}

// hudState is everything the HUD reads in one frame.
type hudState struct {
	session   *game.Session
	showRoute bool
	paused    bool
	mouseLook bool
	rank      int
	best      []records.Record
	status    string
}

type hud struct {
	face  *text.GoTextFace
	title *text.GoTextFace
}

func newHUD() (*hud, error) {
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &hud{
		face:  &text.GoTextFace{Source: mono, Size: 14},
		title: &text.GoTextFace{Source: bold, Size: 32},
	}, nil
}

func (h *hud) draw(screen *ebiten.Image, st hudState) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	h.drawLines(screen, statusLines(st), hudPad, hudPad)
	h.drawMinimap(screen, st, sw-minimapSize-hudPad, hudPad)
	h.drawStamina(screen, st.session, hudPad, sh-hudPad-14)

	hint := "WASD move  Q/E turn  Shift sprint  L mouse-look  M route  P pause  C copy report  R new maze"
	h.drawLines(screen, []string{hint}, hudPad+220, sh-hudPad-16)

	switch {
	case st.session.Outcome().Terminal():
		h.drawOverlay(screen, outcomeTitle(st.session), outcomeLines(st))
	case st.paused:
		h.drawOverlay(screen, "PAUSED", []string{"P to resume"})
	}
}

// statusLines is the top-left readout.
func statusLines(st hudState) []string {
	s := st.session
	lines := []string{fmt.Sprintf("TIME %6.2fs", s.Elapsed())}

	if a := s.Adversary(); a != nil {
		switch a.State() {
		case game.AdversaryDormant:
			lines = append(lines, fmt.Sprintf("HUNTER wakes in %.1fs", a.SpawnLeft()))
		case game.AdversaryFrozen:
			lines = append(lines, fmt.Sprintf("HUNTER frozen %.1fs", a.FreezeLeft()))
		default:
			lines = append(lines, "HUNTER is coming")
		}
	}
	if p := s.Player(); p.FlashlightLeft() > 0 {
		lines = append(lines, fmt.Sprintf("LIGHT %.1fs", p.FlashlightLeft()))
	}
	if st.mouseLook {
		lines = append(lines, "mouse-look on")
	}
	if st.status != "" {
		lines = append(lines, st.status)
	}
	return lines
}

func outcomeTitle(s *game.Session) string {
	if s.Outcome() == game.OutcomeEscaped {
		return fmt.Sprintf("ESCAPED in %.2fs", s.Elapsed())
	}
	return "CAUGHT"
}

// outcomeLines is the end-of-run panel body.
func outcomeLines(st hudState) []string {
	var lines []string
	if st.rank > 0 {
		lines = append(lines, fmt.Sprintf("New best time: #%d", st.rank))
	}
	if len(st.best) > 0 {
		lines = append(lines, "Best times:")
		for i, r := range st.best {
			lines = append(lines, fmt.Sprintf("%d. %6.2fs  %dx%d", i+1, r.Seconds, r.Width, r.Height))
		}
	}
	lines = append(lines, "", "R new maze   C copy report")
	return lines
}

func (h *hud) drawLines(screen *ebiten.Image, lines []string, x, y int) {
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x), float64(y+i*lineH))
		op.ColorScale.ScaleWithColor(colText)
		text.Draw(screen, l, h.face, op)
	}
}

func (h *hud) drawOverlay(screen *ebiten.Image, title string, lines []string) {
	sw, sh := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	bw := float32(380)
	bh := float32(70 + len(lines)*lineH)
	bx, by := (sw-bw)/2, (sh-bh)/2
	vector.FillRect(screen, bx, by, bw, bh, colPanel, false)
	vector.StrokeRect(screen, bx, by, bw, bh, 1, colPanelEdge, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(bx)+20, float64(by)+12)
	op.ColorScale.ScaleWithColor(colText)
	text.Draw(screen, title, h.title, op)
	h.drawLines(screen, lines, int(bx)+20, int(by)+58)
}

func (h *hud) drawStamina(screen *ebiten.Image, s *game.Session, x, y int) {
	const w, ht = 200, 12
	p := s.Player()
	frac := 0.0
	if full := s.Tuning().MaxStamina; full > 0 {
		frac = math.Max(0, math.Min(1, p.Stamina()/full))
	}
	fill := colStamina
	if p.SprintBlocked() {
		fill = colLocked
	}
	fx, fy := float32(x), float32(y)
	vector.FillRect(screen, fx, fy, w, ht, colPanel, false)
	vector.FillRect(screen, fx, fy, float32(w*frac), ht, fill, false)
	vector.StrokeRect(screen, fx, fy, w, ht, 1, colPanelEdge, false)
}

func (h *hud) drawMinimap(screen *ebiten.Image, st hudState, x, y int) {
	s := st.session
	g := s.Grid()
	cell := float32(minimapSize) / float32(max(g.Width(), g.Height()))
	ox, oy := float32(x), float32(y)
	vector.FillRect(screen, ox, oy, cell*float32(g.Width()), cell*float32(g.Height()), colPanel, false)

	for cy := 0; cy < g.Height(); cy++ {
		for cx := 0; cx < g.Width(); cx++ {
			var c color.RGBA
			switch g.At(cx, cy) {
			case game.CellWall:
				c = colWall
			case game.CellExit:
				c = colExit
			default:
				continue
			}
			vector.FillRect(screen, ox+float32(cx)*cell, oy+float32(cy)*cell, cell, cell, c, false)
		}
	}

	toScreen := func(wx, wy float64) (float32, float32) {
		return ox + float32(wx)*cell, oy + float32(wy)*cell
	}

	if st.showRoute {
		route := s.Route()
		for i := 1; i < len(route); i++ {
			x0, y0 := toScreen(route[i-1].Center())
			x1, y1 := toScreen(route[i].Center())
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, colRoute, false)
		}
	}

	for _, it := range s.Pickups() {
		if it.Collected() {
			continue
		}
		px, py := toScreen(it.X(), it.Y())
		vector.FillCircle(screen, px, py, cell*0.3, pickupColors[it.Kind()], false)
	}

	if a := s.Adversary(); a != nil && a.Active() {
		c := colHunter
		if a.Frozen() {
			c = colFrozen
		}
		ax, ay := toScreen(a.X(), a.Y())
		vector.FillCircle(screen, ax, ay, cell*0.45, c, false)
	}

	p := s.Player()
	px, py := toScreen(p.X(), p.Y())
	hx, hy := toScreen(p.X()+math.Cos(p.Heading())*0.9, p.Y()+math.Sin(p.Heading())*0.9)
	vector.StrokeLine(screen, px, py, hx, hy, 1, colPlayer, false)
	vector.FillCircle(screen, px, py, cell*0.4, colPlayer, false)
}
