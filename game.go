package main

import (
	"errors"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/blockjumper/assets"
	"github.com/milk9111/blockjumper/assets/sound"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/highscore"
	"github.com/milk9111/blockjumper/levels"
	"github.com/milk9111/blockjumper/prefabs"
	"github.com/milk9111/blockjumper/render"
	"github.com/milk9111/blockjumper/world"
)

// Options are the command line settings NewGame needs.
type Options struct {
	Level     int
	Debug     bool
	Watch     bool
	DataDir   string
	Seed      uint64
	ScorePath string
}

type Game struct {
	world    *world.World
	renderer *render.Renderer
	mixer    *sound.Mixer
	input    *Input
	pauseUI  *ebitenui.UI
	watcher  *prefabs.Watcher

	paused    bool
	quit      bool
	scorePath string
	saved     int
}

func NewGame(opts Options) (*Game, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("game: %v; using defaults", err)
	}
	difficulty, err := prefabs.LoadDifficulty(prefabs.DifficultyScript)
	if err != nil {
		log.Printf("game: %v; difficulty disabled", err)
	}
	anims, err := prefabs.LoadAnimationsSpec()
	if err != nil {
		return nil, err
	}
	hud, err := prefabs.LoadHUDSpec()
	if err != nil {
		log.Printf("game: %v", err)
	}
	sounds, err := prefabs.LoadSoundsSpec()
	if err != nil {
		log.Printf("game: %v", err)
	}

	store := assets.Store{Dir: opts.DataDir}
	pack := store.Load(anims, hud)

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	high := highscore.Load(opts.ScorePath)
	w, err := world.New(world.Config{
		Levels:     levels.Source{Dir: filepath.Join(opts.DataDir, "maps")},
		Library:    pack.Library,
		Tuning:     tuning,
		Tune:       difficulty.Apply,
		StartLevel: opts.Level,
		HighScore:  high,
		Seed:       seed,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:     w,
		renderer:  render.New(pack, hud),
		mixer:     sound.NewMixer(filepath.Join(opts.DataDir, "sfx"), sounds),
		input:     NewInput(),
		scorePath: opts.ScorePath,
		saved:     high,
	}
	g.renderer.Debug = opts.Debug
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		g.watcher, err = prefabs.WatchDir(prefabs.Dir)
		if err != nil {
			log.Printf("game: watch %s: %v", prefabs.Dir, err)
		}
	}

	g.mixer.StartLoops()
	return g, nil
}

func (g *Game) Update() error {
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.renderer.Debug = !g.renderer.Debug
	}
	if g.quit {
		g.saveHighScore()
		return ebiten.Termination
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.input.Update()
	if err := g.world.Step(g.input.Intent()); err != nil {
		return err
	}
	for _, s := range g.world.DrainSounds() {
		g.mixer.Play(s.String())
	}
	if g.world.HighScore > g.saved {
		g.saveHighScore()
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.mixer.SetPaused(paused)
}

func (g *Game) saveHighScore() {
	if err := highscore.Save(g.scorePath, g.world.HighScore); err != nil {
		log.Printf("game: %v", err)
		return
	}
	g.saved = g.world.HighScore
}

// reload applies prefab changes reported by the watcher. Only tuning, the
// difficulty script and the HUD style are picked up; animation changes
// need a restart.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	if !drainWatcher(g.watcher, g.apply) {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: %v", err)
		}
		g.watcher = nil
	}
}

// drainWatcher applies every pending change without blocking. It reports
// false once the watcher has shut down and closed its channels.
func drainWatcher(w *prefabs.Watcher, apply func(path string) error) bool {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return false
			}
			if err := apply(path); err != nil {
				log.Printf("game: reload %s: %v", path, err)
				continue
			}
			log.Printf("game: reloaded %s", path)
		case err, ok := <-w.Errors:
			if !ok {
				return false
			}
			log.Printf("game: watch: %v", err)
		default:
			return true
		}
	}
}

func (g *Game) apply(path string) error {
	switch {
	case prefabs.IsScriptFile(path), filepath.Base(path) == "tuning.yaml":
		tuning, err := prefabs.LoadTuning()
		if err != nil {
			return err
		}
		var tune world.TuneFunc
		difficulty, err := prefabs.LoadDifficulty(prefabs.DifficultyScript)
		if err != nil {
			log.Printf("game: %v; difficulty disabled", err)
		} else {
			tune = difficulty.Apply
		}
		g.world.SetTuning(tuning, tune)
		return nil
	case filepath.Base(path) == "hud.yaml":
		hud, err := prefabs.LoadHUDSpec()
		if err != nil {
			return err
		}
		g.renderer.SetHUD(hud)
		return nil
	}
	return errors.New("no reload handler")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close saves the high score and stops the watcher.
func (g *Game) Close() {
	g.saveHighScore()
	if err := g.watcher.Close(); err != nil {
		log.Printf("game: %v", err)
	}
}
