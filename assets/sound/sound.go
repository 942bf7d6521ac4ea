// Package sound plays the game's WAV effects and background loops through
// ebiten's audio context.
package sound

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/blockjumper/prefabs"
)

const SampleRate = 44100

type effect struct {
	pcm    []byte
	volume float64
}

// Mixer holds decoded effects. Effects may overlap, so each Play gets its
// own player over the shared PCM data.
type Mixer struct {
	ctx     *audio.Context
	effects map[string]effect
	loops   []*audio.Player
}

// NewMixer decodes every sound in spec from dir. Missing or broken files
// are logged and left silent.
func NewMixer(dir string, spec *prefabs.SoundsSpec) *Mixer {
	m := &Mixer{
		ctx:     audio.NewContext(SampleRate),
		effects: make(map[string]effect),
	}
	if spec == nil {
		return m
	}
	for _, s := range spec.Sounds {
		pcm, err := m.decode(filepath.Join(dir, filepath.FromSlash(s.File)))
		if err != nil {
			log.Printf("sound: %s: %v", s.Name, err)
			continue
		}
		m.effects[s.Name] = effect{pcm: pcm, volume: s.Volume}
	}
	for _, s := range spec.Loops {
		pcm, err := m.decode(filepath.Join(dir, filepath.FromSlash(s.File)))
		if err != nil {
			log.Printf("sound: loop %s: %v", s.Name, err)
			continue
		}
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := m.ctx.NewPlayer(loop)
		if err != nil {
			log.Printf("sound: loop %s: %v", s.Name, err)
			continue
		}
		p.SetVolume(s.Volume)
		m.loops = append(m.loops, p)
	}
	return m
}

func (m *Mixer) decode(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return io.ReadAll(stream)
}

// Play starts the named effect. Unknown names are ignored.
func (m *Mixer) Play(name string) {
	if m == nil {
		return
	}
	e, ok := m.effects[name]
	if !ok {
		return
	}
	p := m.ctx.NewPlayerFromBytes(e.pcm)
	p.SetVolume(e.volume)
	p.Play()
}

// StartLoops begins the background loops.
func (m *Mixer) StartLoops() {
	if m == nil {
		return
	}
	for _, p := range m.loops {
		p.Play()
	}
}

// SetPaused pauses or resumes the background loops.
func (m *Mixer) SetPaused(paused bool) {
	if m == nil {
		return
	}
	for _, p := range m.loops {
		if paused {
			p.Pause()
		} else {
			p.Play()
		}
	}
}
