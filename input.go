package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem polls keyboard, mouse and the first gamepad into every Input
// component.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	moveX := axis(ebiten.KeyA, ebiten.KeyD)
	moveZ := axis(ebiten.KeyS, ebiten.KeyW)
	turn := axis(ebiten.KeyQ, ebiten.KeyE)
	if turn == 0 {
		turn = axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
	}

	possessHeld := ebiten.IsKeyPressed(ebiten.KeyV) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	possessPressed := inpututil.IsKeyJustPressed(ebiten.KeyV) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	possessReleased := inpututil.IsKeyJustReleased(ebiten.KeyV) || inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	teleportPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX = lx
			moveZ = -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			turn = rx
		}

		possessHeld = possessHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		possessPressed = possessPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		possessReleased = possessReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		teleportPressed = teleportPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveZ = moveZ
		input.Turn = turn
		input.PossessHeld = possessHeld
		input.PossessPressed = possessPressed
		input.PossessReleased = possessReleased
		input.TeleportPressed = teleportPressed
	})
}

func axis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(neg) {
		v -= 1
	}
	if ebiten.IsKeyPressed(pos) {
		v += 1
	}
	return v
}
