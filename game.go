package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/play"
	"github.com/milk9111/rollball/render"
	"github.com/milk9111/rollball/script"
	"github.com/milk9111/rollball/ui"
	"golang.design/x/clipboard"
)

type Game struct {
	levelName string
	debug     bool

	ctrl      *play.Controller
	input     *Input
	toolbox   *ui.Toolbox
	renderer  *render.Renderer
	watcher   *levels.Watcher
	winTicker *time.Ticker

	// pressed is the pointer that went down this frame, read by the toolbox.
	pressed input.PointerID

	clipboardReady bool
}

func NewGame(levelName string, debug, watch bool) *Game {
	lvl, err := levels.LoadLevel(levelName)
	if err != nil {
		log.Printf("failed to load level %q, using default: %v", levelName, err)
		lvl = levels.Default()
	}

	g := &Game{
		levelName: levelName,
		debug:     debug,
		input:     NewInput(),
		renderer:  render.NewRenderer(),
		pressed:   input.NoPointer,
	}
	g.ctrl = play.New(lvl, play.Options{})
	g.loadRater()
	g.winTicker = time.NewTicker(lvl.Win.PollInterval())

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, layouts will be logged: %v", err)
	} else {
		g.clipboardReady = true
	}

	g.toolbox = ui.NewToolbox(g.ctrl, func() input.PointerID { return g.pressed }, g.copyLayout)

	if watch {
		w, err := levels.NewWatcher(levels.Dir, filepath.Join(levels.Dir, "scripts"))
		if err != nil {
			log.Printf("level hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Update() error {
	g.hotReload()

	pointers := g.input.Pointers()
	g.pressed = input.LastDown(pointers)
	for _, ev := range pointers {
		g.ctrl.HandlePointer(ev)
	}
	for _, a := range g.input.Actions() {
		switch a {
		case input.ActionToggleDebug:
			g.debug = !g.debug
		case input.ActionCopyLayout:
			g.copyLayout()
		default:
			g.ctrl.HandleAction(a)
		}
	}

	g.toolbox.Update()
	g.ctrl.Update()

	select {
	case <-g.winTicker.C:
		g.ctrl.PollWin()
	default:
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, render.View{
		Session:  g.ctrl.Session,
		Ghost:    g.ctrl.Placement.Ghost(),
		Selected: g.ctrl.Selection.Selected(),
		Debug:    g.debug,
	})
	g.toolbox.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	g.winTicker.Stop()
	if err := g.watcher.Close(); err != nil {
		log.Printf("level watcher: close: %v", err)
	}
}

func (g *Game) loadRater() {
	name := g.ctrl.Level().Rating
	if name == "" {
		g.ctrl.SetRater(nil)
		return
	}
	r, err := script.NewRater(name)
	if err != nil {
		log.Printf("rating disabled: %v", err)
		g.ctrl.SetRater(nil)
		return
	}
	g.ctrl.SetRater(r)
}

// hotReload applies level and script edits reported by the watcher. A level
// that fails to load keeps the current one running.
func (g *Game) hotReload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("watcher: %v", err)
	default:
	}

	for _, name := range g.watcher.Drain() {
		switch {
		case levels.IsScriptFile(name):
			if filepath.Base(name) == filepath.Base(g.ctrl.Level().Rating) {
				log.Printf("reloading rating script %s", name)
				g.loadRater()
			}
		case levels.IsLevelFile(name):
			if !g.isCurrentLevel(name) {
				continue
			}
			lvl, err := levels.LoadLevel(g.levelName)
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				continue
			}
			log.Printf("reloading level %s", name)
			g.ctrl.Reload(lvl)
			g.input.Reset()
			g.loadRater()
			g.winTicker.Reset(lvl.Win.PollInterval())
		}
	}
}

func (g *Game) isCurrentLevel(path string) bool {
	want := g.levelName
	if want == "" {
		want = "default"
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return base == strings.TrimSuffix(filepath.Base(want), filepath.Ext(want))
}

func (g *Game) copyLayout() {
	data, err := g.ctrl.Layout().Marshal()
	if err != nil {
		log.Printf("copy layout: %v", err)
		return
	}
	if !g.clipboardReady {
		log.Printf("layout:\n%s", data)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("copied layout with %d obstacles", len(g.ctrl.Session.Obstacles()))
}
