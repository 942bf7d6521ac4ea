package component

// Animator tracks which action an entity is showing and owns the cursor
// for it.
type Animator struct {
	Kind   string
	Action string
	Anim   Animation

	lib *Library
}

func NewAnimator(lib *Library, kind, action string) Animator {
	a := Animator{Kind: kind, lib: lib}
	a.SetAction(action)
	return a
}

// SetAction switches to another action and restarts its animation. Setting
// the action already playing does nothing, so callers can set it every
// tick. It reports whether the action changed.
func (a *Animator) SetAction(action string) bool {
	if a == nil || action == a.Action {
		return false
	}
	a.Action = action
	a.Anim = a.lib.Animation(Key(a.Kind, action))
	return true
}

// Update advances the current animation by one tick.
func (a *Animator) Update() {
	if a == nil {
		return
	}
	a.Anim.Update()
}
