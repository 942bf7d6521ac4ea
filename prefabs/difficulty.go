package prefabs

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/blockjumper/entity"
	"gopkg.in/yaml.v3"
)

// DifficultyScript is the script consulted for per-level tuning.
const DifficultyScript = "difficulty.tengo"

// Difficulty adjusts the tuning for each level by running a tengo script.
// The script sees `level` (int) and `base` (the tuning as a map keyed by
// the YAML field names) and leaves its overrides in a `tuning` map.
type Difficulty struct {
	name     string
	compiled *tengo.Compiled
}

func LoadDifficulty(name string) (*Difficulty, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("level", 0)
	_ = script.Add("base", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile %s: %w", name, err)
	}
	return &Difficulty{name: name, compiled: compiled}, nil
}

// Apply returns base with the script's overrides for level merged in. A
// nil Difficulty returns base unchanged.
func (d *Difficulty) Apply(level int, base entity.Tuning) (entity.Tuning, error) {
	if d == nil || d.compiled == nil {
		return base, nil
	}

	baseMap, err := toMap(base)
	if err != nil {
		return base, fmt.Errorf("prefabs: %s: %w", d.name, err)
	}
	if err := d.compiled.Set("level", level); err != nil {
		return base, fmt.Errorf("prefabs: %s: set level: %w", d.name, err)
	}
	if err := d.compiled.Set("base", baseMap); err != nil {
		return base, fmt.Errorf("prefabs: %s: set base: %w", d.name, err)
	}
	if err := d.compiled.Run(); err != nil {
		return base, fmt.Errorf("prefabs: run %s: %w", d.name, err)
	}
	if !d.compiled.IsDefined("tuning") {
		return base, nil
	}

	overrides := d.compiled.Get("tuning").Map()
	out, err := overlay(base, overrides)
	if err != nil {
		return base, fmt.Errorf("prefabs: %s: %w", d.name, err)
	}
	if err := out.Validate(); err != nil {
		return base, fmt.Errorf("prefabs: %s level %d: %w", d.name, level, err)
	}
	return out, nil
}

func toMap(v any) (map[string]any, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// overlay decodes raw on top of a copy of base. Keys raw does not mention
// keep their value from base.
func overlay[T any](base T, raw map[string]any) (T, error) {
	if len(raw) == 0 {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}
