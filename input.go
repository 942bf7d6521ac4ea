package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/blockjumper/world"
)

const stickDeadZone = 0.3

// Input holds the keyboard and gamepad state for one tick.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the tick the jump key is pressed.
	JumpPressed bool
	// DashPressed is true on the tick the dash key/button is pressed.
	DashPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	var moveX float64
	// Keyboard A/D or arrows
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	var gpJumpJustPressed, gpDashJustPressed bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -stickDeadZone {
			moveX = -1
		} else if leftX > stickDeadZone {
			moveX = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}

		// A/primary jumps, X dashes.
		gpJumpJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpDashJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
	}

	i.MoveX = moveX
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		gpJumpJustPressed
	i.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyX) ||
		inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) ||
		gpDashJustPressed
}

// Intent converts the polled state into the world's per-tick input.
func (i *Input) Intent() world.Input {
	return world.Input{Move: i.MoveX, Jump: i.JumpPressed, Dash: i.DashPressed}
}
