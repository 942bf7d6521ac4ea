package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/blockjumper/tilemap"
)

//go:embed *.json
var LevelsFS embed.FS

// Source loads numbered level files ("0.json", "1.json", ...). When Dir is
// set, a file found there takes precedence over the embedded copy.
type Source struct {
	Dir string
}

// Name returns the file name of level n.
func Name(n int) string {
	return strconv.Itoa(n) + ".json"
}

// Load reads and decodes level n.
func (s Source) Load(n int) (*tilemap.Map, error) {
	if n < 0 {
		return nil, fmt.Errorf("levels: invalid level %d", n)
	}
	name := Name(n)
	if s.Dir != "" {
		path := filepath.Join(s.Dir, name)
		m, err := tilemap.Load(path)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels: %w", err)
		}
	}
	f, err := LevelsFS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("levels: open %s: %w", name, err)
	}
	defer f.Close()
	m, err := tilemap.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return m, nil
}

// Count returns the number of consecutive levels starting at 0, counting
// both the embedded files and any in Dir.
func (s Source) Count() int {
	have := make(map[int]bool)
	for _, n := range numbered(LevelsFS, ".") {
		have[n] = true
	}
	if s.Dir != "" {
		for _, n := range numbered(os.DirFS(s.Dir), ".") {
			have[n] = true
		}
	}
	count := 0
	for have[count] {
		count++
	}
	return count
}

func numbered(fsys fs.FS, dir string) []int {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	var out []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil || n < 0 {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
