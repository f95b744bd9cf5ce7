// Package termui is a terminal frontend. It renders the raycast view with
// half-block characters (two pixels per cell) and drives the session from
// a ticker.
package termui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Maze-Escape/internal/config"
	"github.com/Garsondee/Maze-Escape/internal/game"
	"github.com/Garsondee/Maze-Escape/internal/render"
)

// Terminals report key presses and repeats but never releases, so a press
// holds its action for a few ticks and auto-repeat keeps it alive.
const holdTicks = 9

type action int

const (
	actForward action = iota
	actBack
	actStrafeL
	actStrafeR
	actTurnL
	actTurnR
	actSprint
	actionCount
)

const keyTurnRate = 2.6 // rad/s

// Terminal owns the screen and the session. All session access happens on
// the Run goroutine.
type Terminal struct {
	screen tcell.Screen
	cfg    config.Config
	logger *zap.Logger

	session *game.Session
	dt      float64
	opt     render.Options
	frame   *render.Frame

	held   [actionCount]int
	paused bool
}

// New wraps an initialised screen and starts a session.
func New(screen tcell.Screen, cfg config.Config, logger *zap.Logger) (*Terminal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Terminal{
		screen: screen,
		cfg:    cfg,
		logger: logger,
		dt:     1 / float64(max(cfg.Window.TPS, 1)),
		opt:    cfg.RenderOptions(),
	}
	if err := t.restart(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Terminal) restart() error {
	opts := append(t.cfg.SessionOptions(), game.WithLogger(t.logger))
	s, err := game.NewSession(opts...)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	t.session = s
	t.held = [actionCount]int{}
	t.paused = false
	return nil
}

// Run ticks and draws until the context ends or the player quits. The
// caller owns screen.Fini.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go t.pollEvents(events, done)

	ticker := time.NewTicker(time.Duration(float64(time.Second) * t.dt))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				quit, err := t.handleKey(ev)
				if err != nil || quit {
					return err
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done
// closes. It closes events on the way out.
func (t *Terminal) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleKey applies one key event. It reports whether the player asked to
// quit.
func (t *Terminal) handleKey(ev *tcell.EventKey) (bool, error) {
	return t.press(ev.Key(), ev.Rune())
}

func (t *Terminal) press(k tcell.Key, r rune) (bool, error) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		t.hold(actForward)
	case tcell.KeyDown:
		t.hold(actBack)
	case tcell.KeyLeft:
		t.hold(actTurnL)
	case tcell.KeyRight:
		t.hold(actTurnR)
	case tcell.KeyRune:
		switch r {
		case 'p':
			if !t.session.Outcome().Terminal() {
				t.paused = !t.paused
			}
			return false, nil
		case 'r':
			return false, t.restart()
		}
		if act, ok := runeActions[r]; ok {
			t.hold(act)
			if r >= 'A' && r <= 'Z' {
				t.hold(actSprint)
			}
		}
	}
	return false, nil
}

// Shifted letters also sprint.
var runeActions = map[rune]action{
	'w': actForward, 'W': actForward,
	's': actBack, 'S': actBack,
	'a': actStrafeL, 'A': actStrafeL,
	'd': actStrafeR, 'D': actStrafeR,
	'q': actTurnL, 'Q': actTurnL,
	'e': actTurnR, 'E': actTurnR,
}

func (t *Terminal) hold(a action) { t.held[a] = holdTicks }

func (t *Terminal) intent() game.Intent {
	on := func(a action) bool { return t.held[a] > 0 }
	in := game.Intent{
		Forward:     on(actForward),
		Back:        on(actBack),
		StrafeLeft:  on(actStrafeL),
		StrafeRight: on(actStrafeR),
		Sprint:      on(actSprint),
	}
	if on(actTurnL) {
		in.Turn -= keyTurnRate * t.dt
	}
	if on(actTurnR) {
		in.Turn += keyTurnRate * t.dt
	}
	return in
}

// step advances the session one tick and ages held keys.
func (t *Terminal) step() {
	if !t.paused && !t.session.Outcome().Terminal() {
		t.session.AdvanceTick(t.intent(), t.dt)
		if o := t.session.Outcome(); o.Terminal() {
			t.logger.Info("session finished",
				zap.String("session", t.session.ID()),
				zap.Stringer("outcome", o),
				zap.Float64("elapsed", t.session.Elapsed()))
		}
	}
	for i := range t.held {
		if t.held[i] > 0 {
			t.held[i]--
		}
	}
}

// draw renders at two pixels per cell, leaving the last row for status.
func (t *Terminal) draw() {
	cols, rows := t.screen.Size()
	if cols < 1 || rows < 2 {
		return
	}
	w, h := cols, (rows-1)*2
	if t.frame == nil || t.frame.Width() != w || t.frame.Height() != h {
		t.frame = render.NewFrame(w, h)
	}
	cam, sprites := render.SceneOf(t.session)
	render.RenderInto(t.frame, cam, t.session.Grid(), sprites, t.opt)

	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols; x++ {
			top := t.frame.At(x, 2*y)
			bot := t.frame.At(x, 2*y+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			t.screen.SetContent(x, y, '▀', nil, st)
		}
	}

	status := statusLine(t.session, t.paused)
	bar := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		t.screen.SetContent(x, rows-1, r, nil, bar)
	}
	t.screen.Show()
}

func statusLine(s *game.Session, paused bool) string {
	p := s.Player()
	line := fmt.Sprintf(" %6.2fs  stamina %3.0f", s.Elapsed(), p.Stamina())
	if p.SprintBlocked() {
		line += " (winded)"
	}
	if a := s.Adversary(); a != nil {
		line += "  hunter " + a.State().String()
	}
	switch {
	case s.Outcome() == game.OutcomeEscaped:
		line += "  ESCAPED - r new maze, esc quit"
	case s.Outcome() == game.OutcomeCaptured:
		line += "  CAUGHT - r new maze, esc quit"
	case paused:
		line += "  PAUSED - p resume"
	default:
		line += "  wasd/arrows move  q/e turn  SHIFT sprint  p pause"
	}
	return line
}
