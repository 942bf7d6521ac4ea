// Command levelview prints level files in the terminal, one character per
// grid cell. It never writes the level back.
package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockjumper/levels"
)

func main() {
	level := flag.Int("level", 0, "level number to open")
	dir := flag.String("dir", "", "directory of level files overriding the embedded ones")
	autotile := flag.Bool("autotile", false, "autotile grass and stone before drawing")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("levelview: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("levelview: %v", err)
	}
	defer screen.Fini()

	v := NewViewer(levels.Source{Dir: *dir}, *level, *autotile)
	v.Draw(screen)
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return
		}
		v.Draw(screen)
	}
}
