package component

import (
	"image"
)

// DefaultFrameDuration is used when a clip is registered without a
// per-frame duration.
const DefaultFrameDuration = 5

// Clip is the immutable part of an animation: its frames and timing. Every
// entity playing the same kind/action shares one Clip.
type Clip struct {
	Frames   []image.Image
	Duration int
	Loop     bool
}

// NewClip creates a clip. `duration` is the number of ticks each frame is
// shown (defaults to DefaultFrameDuration if <= 0).
func NewClip(frames []image.Image, duration int, loop bool) *Clip {
	if duration <= 0 {
		duration = DefaultFrameDuration
	}
	return &Clip{Frames: frames, Duration: duration, Loop: loop}
}

// Ticks returns how many ticks one full pass through the clip lasts.
func (c *Clip) Ticks() int {
	if c == nil {
		return 0
	}
	return c.Duration * len(c.Frames)
}

// Animation is a per-entity playback cursor over a shared Clip. Copying an
// Animation value copies the cursor and shares the frames.
type Animation struct {
	clip  *Clip
	frame int
	done  bool
}

func NewAnimation(clip *Clip) Animation {
	return Animation{clip: clip}
}

// Clip returns the shared clip being played.
func (a *Animation) Clip() *Clip {
	if a == nil {
		return nil
	}
	return a.clip
}

// Update advances the animation by one tick. Looping clips wrap; one-shot
// clips stop on their last frame and report Done from then on.
func (a *Animation) Update() {
	if a == nil {
		return
	}
	total := a.clip.Ticks()
	if total == 0 {
		a.done = true
		return
	}
	if a.clip.Loop {
		a.frame = (a.frame + 1) % total
		return
	}
	a.frame = min(a.frame+1, total-1)
	if a.frame >= total-1 {
		a.done = true
	}
}

// Frame returns the elapsed tick counter.
func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.frame
}

// SetFrame jumps to the given tick, clamped to the clip length.
func (a *Animation) SetFrame(frame int) {
	if a == nil {
		return
	}
	total := a.clip.Ticks()
	if total == 0 {
		a.frame = 0
		return
	}
	a.frame = max(0, min(frame, total-1))
}

// Index returns the frame index currently displayed.
func (a *Animation) Index() int {
	if a == nil || a.clip.Ticks() == 0 {
		return 0
	}
	return a.frame / a.clip.Duration
}

// Image returns the frame currently displayed, or nil for an empty clip.
func (a *Animation) Image() image.Image {
	if a == nil || a.clip.Ticks() == 0 {
		return nil
	}
	return a.clip.Frames[a.Index()]
}

// Done reports whether a one-shot animation has reached its last frame.
// Animations without frames are always done.
func (a *Animation) Done() bool {
	if a == nil || a.clip.Ticks() == 0 {
		return true
	}
	return a.done
}
