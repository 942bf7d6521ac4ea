package component

import "sort"

// Key builds the library key for an entity kind and action, e.g.
// "player/run".
func Key(kind, action string) string {
	return kind + "/" + action
}

// Library stores clips by key.
type Library struct {
	clips map[string]*Clip
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{clips: make(map[string]*Clip)}
}

// Register adds or replaces a clip.
func (l *Library) Register(key string, clip *Clip) {
	if l == nil || key == "" || clip == nil {
		return
	}
	l.clips[key] = clip
}

// Clip returns the clip registered under key.
func (l *Library) Clip(key string) (*Clip, bool) {
	if l == nil || key == "" {
		return nil, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Animation returns a fresh cursor over the clip registered under key. A
// missing key yields an empty animation that is already done.
func (l *Library) Animation(key string) Animation {
	clip, _ := l.Clip(key)
	return NewAnimation(clip)
}

// Keys returns the registered keys in sorted order.
func (l *Library) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.clips))
	for k := range l.clips {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
