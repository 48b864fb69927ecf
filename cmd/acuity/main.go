package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/acuitylab/stimulus-engine/internal/device"
	"github.com/acuitylab/stimulus-engine/internal/render"
	"github.com/acuitylab/stimulus-engine/internal/session"
	"github.com/acuitylab/stimulus-engine/internal/staircase"
	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

// #region game

// game runs the interactive acuity test: one window, one session.
type game struct {
	sess    *session.Session
	pres    session.Presentation
	dark    bool
	hideHUD bool
	width   int
	height  int

	status string // last trial feedback line
}

func (g *game) theme() render.Theme {
	if g.dark {
		return render.Dark
	}
	return render.Light
}

func (g *game) present() error {
	p, err := g.sess.Present()
	if err != nil {
		return err
	}
	g.pres = p
	if p.Advisory != nil {
		log.Printf("advisory: %s", p.Advisory.Message)
	}
	return nil
}

// #endregion game

// #region update

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if g.sess.Mode() == staircase.ModeAdaptive {
			g.sess.SetMode(staircase.ModeManual)
		} else {
			g.sess.SetMode(staircase.ModeAdaptive)
		}
		log.Printf("mode: %s", g.sess.Mode())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.dark = !g.dark
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hideHUD = !g.hideHUD
	}

	// Manual level selection on the digit keys.
	for i, k := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4} {
		if inpututil.IsKeyJustPressed(k) && i < g.sess.Ladder().Len() {
			if err := g.sess.SelectLevel(i); err != nil {
				log.Printf("select: %v", err)
				continue
			}
			g.status = fmt.Sprintf("manual override: %s", g.sess.CurrentLevel().Label)
			if err := g.present(); err != nil {
				return err
			}
		}
	}

	if reported, ok := reportedKey(); ok {
		res, err := g.sess.Respond(reported)
		if err != nil {
			return err
		}
		g.status = fmt.Sprintf("[%s] %s | true: %s | answer: %s | %s",
			res.Record.Mode, res.Record.LevelLabel,
			res.Outcome.Presented, res.Outcome.Reported, res.Record.Result())
		if res.Step.Moved {
			g.status += fmt.Sprintf(" -> %s", g.sess.CurrentLevel().Label)
		}
		log.Print(g.status)
		if err := g.present(); err != nil {
			return err
		}
	}

	return nil
}

// reportedKey maps WASD and the arrow keys to an orientation response.
func reportedKey() (staircase.Orientation, bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyW), inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		return staircase.Up, true
	case inpututil.IsKeyJustPressed(ebiten.KeyS), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		return staircase.Down, true
	case inpututil.IsKeyJustPressed(ebiten.KeyA), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		return staircase.Left, true
	case inpututil.IsKeyJustPressed(ebiten.KeyD), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		return staircase.Right, true
	}
	return "", false
}

// #endregion update

// #region draw

func (g *game) Draw(screen *ebiten.Image) {
	theme := g.theme()
	screen.Fill(theme.Background)

	cx := float64(g.width) / 2
	cy := float64(g.height) / 2
	render.DrawLandoltC(screen, cx, cy, g.pres.Spec, g.pres.Orientation, theme)

	if g.hideHUD {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Acuity: %s  (%.1f arcmin)", g.pres.Level.Label, g.pres.Level.GapArcmin), 20, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Mode: %s  Trial: %d", g.sess.Mode(), g.pres.TrialNum), 20, 40)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 20, 60)
	}
	if g.pres.Advisory != nil {
		ebitenutil.DebugPrintAt(screen, g.pres.Advisory.Message, 20, 80)
	}
	ebitenutil.DebugPrintAt(screen,
		"Keys: 1-4 level, W/A/S/D or arrows respond, M adaptive, T theme, F fullscreen, H hud, ESC quit",
		20, g.height-30)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// #endregion draw

// #region main

func main() {
	distance := flag.Float64("distance", 100.0, "viewing distance in mm")
	ppi := flag.Float64("ppi", 300.0, "display pixel density")
	width := flag.Int("width", 800, "display width in pixels")
	height := flag.Int("height", 600, "display height in pixels")
	start := flag.Int("start", 1, "starting ladder index (default 6/12)")
	dbPath := flag.String("db", envOr("ACUITY_DB", "acuity_trials.db"), "trial log database path")
	flag.Parse()

	profile, err := device.NewProfile(*distance, *ppi, device.Resolution{Width: *width, Height: *height})
	if err != nil {
		log.Fatalf("profile: %v", err)
	}

	store, err := triallog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("open trial log: %v", err)
	}
	defer store.Close()

	sess, err := session.New(session.Config{
		Profile:    profile,
		StartIndex: *start,
		Mode:       staircase.ModeAdaptive,
		Store:      store,
	})
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	g := &game{sess: sess, width: *width, height: *height}
	if err := g.present(); err != nil {
		log.Fatalf("present: %v", err)
	}

	log.Printf("session %s | db %s | %s starting at %s",
		sess.ID(), *dbPath, sess.Mode(), sess.CurrentLevel().Label)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Visual Acuity Stimulus Engine (Landolt C)")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion main
