package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/highscore"
)

func main() {
	level := flag.Int("level", 0, "level number to start on")
	debug := flag.Bool("debug", false, "draw collision boxes and entity state")
	watch := flag.Bool("watch", false, "reload prefabs when they change on disk")
	dataDir := flag.String("data", "data", "directory holding images/, sfx/ and maps/")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	scorePath := flag.String("highscore", highscore.DefaultPath, "high score file")
	flag.Parse()

	game, err := NewGame(Options{
		Level:     *level,
		Debug:     *debug,
		Watch:     *watch,
		DataDir:   filepath.Clean(*dataDir),
		Seed:      *seed,
		ScorePath: *scorePath,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(common.BaseWidth*common.WindowScale, common.BaseHeight*common.WindowScale)
	ebiten.SetWindowTitle("Block Jumper Adventure")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
