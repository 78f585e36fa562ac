package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var hudFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// view maps world X/Z onto the screen around the main camera, +Z up.
type view struct {
	center mgl64.Vec3
}

func (v view) project(p mgl64.Vec3) (float32, float32) {
	x := (p.X()-v.center.X())*common.PixelsPerUnit + common.BaseWidth/2
	y := common.BaseHeight/2 - (p.Z()-v.center.Z())*common.PixelsPerUnit
	return float32(x), float32(y)
}

func mainCamera(w *ecs.World) (ecs.Entity, *component.Camera, bool) {
	var found ecs.Entity
	var cam *component.Camera
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		if cam == nil || (c.Main && !cam.Main) {
			found, cam = e, c
		}
	})
	return found, cam, cam != nil
}

// drawScene draws every active visual that the main camera's culling mask
// lets through, then the camera's heading.
func drawScene(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1c, G: 0x1f, B: 0x24, A: 0xff})

	camEnt, cam, ok := mainCamera(w)
	if !ok {
		return
	}
	camPos, camRot, _ := ecs.WorldTransform(w, camEnt)
	v := view{center: camPos}

	drawGrid(screen, v)

	ecs.ForEach(w, component.VisualComponent.Kind(), func(e ecs.Entity, vis *component.Visual) {
		if !vis.Active || !cam.Sees(vis.Layer) {
			return
		}
		pos, ok := ecs.WorldPosition(w, e)
		if !ok {
			return
		}
		x, y := v.project(pos)
		r := float32(vis.Radius * common.PixelsPerUnit)
		clr := vis.Color
		if clr == nil {
			clr = colornames.White
		}
		if ecs.Has(w, e, component.TTLComponent.Kind()) {
			vector.StrokeCircle(screen, x, y, r, 2, clr, true)
			return
		}
		vector.FillCircle(screen, x, y, r, clr, true)
	})

	ecs.ForEach(w, component.PursuerComponent.Kind(), func(e ecs.Entity, p *component.Pursuer) {
		target := ecs.Entity(p.GetTarget())
		from, ok := ecs.WorldPosition(w, e)
		if !ok {
			return
		}
		to, ok := ecs.WorldPosition(w, target)
		if !ok {
			return
		}
		x0, y0 := v.project(from)
		x1, y1 := v.project(to)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, color.RGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0x60}, true)
	})

	fwd := camRot.Rotate(mgl64.Vec3{0, 0, 1})
	fwd[1] = 0
	if fwd.Len() > 1e-6 {
		fwd = fwd.Normalize().Mul(1.5)
		x0, y0 := v.project(camPos)
		x1, y1 := v.project(camPos.Add(fwd))
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Lightgrey, true)
	}
}

func drawGrid(screen *ebiten.Image, v view) {
	const step = 2.0
	clr := color.RGBA{R: 0x2a, G: 0x2e, B: 0x35, A: 0xff}
	halfW := common.BaseWidth / 2 / common.PixelsPerUnit
	halfH := common.BaseHeight / 2 / common.PixelsPerUnit

	for gx := math.Floor((v.center.X()-halfW)/step) * step; gx <= v.center.X()+halfW; gx += step {
		x, _ := v.project(mgl64.Vec3{gx, 0, 0})
		vector.StrokeLine(screen, x, 0, x, common.BaseHeight, 1, clr, false)
	}
	for gz := math.Floor((v.center.Z()-halfH)/step) * step; gz <= v.center.Z()+halfH; gz += step {
		_, y := v.project(mgl64.Vec3{0, 0, gz})
		vector.StrokeLine(screen, 0, y, common.BaseWidth, y, 1, clr, false)
	}
}

// drawFade darkens the screen as the listener level drops so the audio
// crossfade has a visible counterpart.
func drawFade(w *ecs.World, screen *ebiten.Image) {
	e, ok := ecs.First(w, component.AudioListenerComponent.Kind())
	if !ok {
		return
	}
	l, _ := ecs.Get(w, e, component.AudioListenerComponent.Kind())
	alpha := uint8((1 - common.Clamp01(l.Level)) * 255)
	if alpha == 0 {
		return
	}
	vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.RGBA{A: alpha}, false)
}

func drawHUD(g *Game, screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()),
		fmt.Sprintf("state: %s  phase: %s", g.possession.State(), g.possession.Phase()),
	}
	if g.debug {
		if frame, ok := g.possession.SavedFrame(); ok {
			p := frame.Position
			lines = append(lines, fmt.Sprintf("saved: %.2f %.2f %.2f  yaw %.0f", p.X(), p.Y(), p.Z(), common.Yaw(frame.Rotation)*180/math.Pi))
		}
		if e, ok := ecs.First(g.world, component.AudioListenerComponent.Kind()); ok {
			l, _ := ecs.Get(g.world, e, component.AudioListenerComponent.Kind())
			lines = append(lines, fmt.Sprintf("listener: %.2f", l.Level))
		}
	}
	lines = append(lines, "hold V / RMB: possess   space / LMB: teleport   esc: pause")

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*16))
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, line, hudFace, op)
	}
}
