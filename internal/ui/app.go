// Package ui is the desktop frontend: an ebiten window that drives a
// session at a fixed tick rate and draws the raycast view with a HUD.
package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/Garsondee/Maze-Escape/internal/config"
	"github.com/Garsondee/Maze-Escape/internal/game"
	"github.com/Garsondee/Maze-Escape/internal/records"
	"github.com/Garsondee/Maze-Escape/internal/render"
)

// statusTicks is how long a status line stays on screen.
const statusTicks = 180

// App implements ebiten.Game. Update is the fixed-rate driver: it turns
// input into an Intent and advances the session one tick. Draw renders the
// settled state; the two never overlap.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	records *records.Store

	session *game.Session
	dt      float64

	opt      render.Options
	frame    *render.Frame
	frameImg *ebiten.Image
	hud      *hud

	paused    bool
	mouseLook bool
	lastMX    int
	showRoute bool

	submitted bool
	rank      int
	status    string
	statusFor int
}

// New builds the app and starts the first session.
func New(cfg config.Config, logger *zap.Logger, rec *records.Store) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h, err := newHUD()
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	opt := cfg.RenderOptions()
	a := &App{
		cfg:     cfg,
		logger:  logger,
		records: rec,
		dt:      1 / float64(max(cfg.Window.TPS, 1)),
		opt:     opt,
		frame:   render.NewFrame(opt.Width, opt.Height),
		hud:     h,
	}
	a.frameImg = ebiten.NewImage(opt.Width, opt.Height)
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run opens the window and blocks until it closes.
func (a *App) Run() error {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetTPS(a.cfg.Window.TPS)
	return ebiten.RunGame(a)
}

func (a *App) restart() error {
	opts := append(a.cfg.SessionOptions(), game.WithLogger(a.logger))
	s, err := game.NewSession(opts...)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	a.session = s
	a.submitted = false
	a.rank = 0
	a.paused = false
	return nil
}

func (a *App) Update() error {
	if err := a.handleToggles(); err != nil {
		return err
	}

	mx, _ := ebiten.CursorPosition()
	mouseDX := 0
	if a.mouseLook {
		mouseDX = mx - a.lastMX
	}
	a.lastMX = mx

	if a.statusFor > 0 {
		a.statusFor--
	}
	if a.paused || a.session.Outcome().Terminal() {
		a.finish()
		return nil
	}
	a.session.AdvanceTick(intentFrom(pollKeys(), mouseDX, a.dt), a.dt)
	a.finish()
	return nil
}

// handleToggles processes edge-triggered keys.
func (a *App) handleToggles() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !a.session.Outcome().Terminal() {
			a.paused = !a.paused
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		a.setMouseLook(!a.mouseLook)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.showRoute = !a.showRoute
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.restart(); err != nil {
			return err
		}
		a.setStatus("new maze")
	}
	return nil
}

func (a *App) setMouseLook(on bool) {
	a.mouseLook = on
	if on {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		a.lastMX, _ = ebiten.CursorPosition()
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (a *App) copyReport() {
	if err := clipboard.WriteAll(a.session.Report(0)); err != nil {
		a.logger.Warn("copy report", zap.Error(err))
		a.setStatus("clipboard unavailable")
		return
	}
	a.setStatus("report copied")
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusFor = statusTicks
}

// finish records a terminal session once.
func (a *App) finish() {
	if a.submitted || !a.session.Outcome().Terminal() {
		return
	}
	a.submitted = true
	if a.mouseLook {
		a.setMouseLook(false)
	}
	sum := a.session.Summary()
	a.logger.Info("session finished",
		zap.String("session", sum.ID),
		zap.Stringer("outcome", sum.Outcome),
		zap.Float64("elapsed", sum.Elapsed))
	if a.records == nil {
		return
	}
	a.rank = a.records.Submit(sum, time.Now())
	if err := a.records.Save(); err != nil {
		a.logger.Warn("save records", zap.Error(err))
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	cam, sprites := render.SceneOf(a.session)
	render.RenderInto(a.frame, cam, a.session.Grid(), sprites, a.opt)
	a.frameImg.WritePixels(a.frame.Image.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(a.cfg.Window.Width)/float64(a.opt.Width),
		float64(a.cfg.Window.Height)/float64(a.opt.Height),
	)
	screen.DrawImage(a.frameImg, op)

	a.hud.draw(screen, a.hudState())
}

func (a *App) hudState() hudState {
	st := hudState{
		session:   a.session,
		showRoute: a.showRoute,
		paused:    a.paused,
		mouseLook: a.mouseLook,
		rank:      a.rank,
	}
	if a.records != nil {
		st.best = a.records.Best()
	}
	if a.statusFor > 0 {
		st.status = a.status
	}
	return st
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}
