// Package highscore persists the best score between runs.
package highscore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// DefaultPath is where the high score lives unless -highscore says
// otherwise.
const DefaultPath = "highscore.json"

type file struct {
	HighScore int `json:"high_score"`
}

// Load returns the stored high score. A missing or unreadable file is not
// an error for the game, so Load reports 0 and logs why.
func Load(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("highscore: read %s: %v", path, err)
		}
		return 0
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("highscore: decode %s: %v", path, err)
		return 0
	}
	return max(0, f.HighScore)
}

// Save writes score to path.
func Save(path string, score int) error {
	data, err := json.Marshal(file{HighScore: score})
	if err != nil {
		return fmt.Errorf("highscore: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("highscore: write %s: %w", path, err)
	}
	return nil
}
