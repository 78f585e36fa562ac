package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/viewpoint/common"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.1

	insetWidth  = 320
	insetHeight = 160
	insetMargin = 12
	insetScale  = 32.0
)

// drawPhysicsInset draws the physics space side-on (X across, Y up) in a
// panel at the bottom right, centered on focusX.
func drawPhysicsInset(space *cp.Space, screen *ebiten.Image, focusX float64) {
	if space == nil || screen == nil {
		return
	}
	left := float32(common.BaseWidth - insetWidth - insetMargin)
	top := float32(common.BaseHeight - insetHeight - insetMargin)
	vector.FillRect(screen, left, top, insetWidth, insetHeight, color.NRGBA{A: 180}, false)
	vector.StrokeRect(screen, left, top, insetWidth, insetHeight, 1, color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}, false)

	drawer := &physicsDebugDrawer{
		screen:  screen,
		originX: float64(left) + insetWidth/2,
		originY: float64(top) + insetHeight - 16,
		focusX:  focusX,
		scale:   insetScale,
	}
	cp.DrawSpace(space, drawer)
}

type physicsDebugDrawer struct {
	screen  *ebiten.Image
	originX float64
	originY float64
	focusX  float64
	scale   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor greys out sensors so a decoupled rig stands out.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// toScreen flips Y so up in the simulation is up on screen. Points outside
// the inset are clamped to its edges.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	x := d.originX + (v.X-d.focusX)*d.scale
	y := d.originY - v.Y*d.scale
	minX := d.originX - insetWidth/2
	x = math.Max(minX, math.Min(minX+insetWidth, x))
	return float32(x), float32(y)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(float64(c.R)) * 255),
		G: uint8(common.Clamp01(float64(c.G)) * 255),
		B: uint8(common.Clamp01(float64(c.B)) * 255),
		A: uint8(common.Clamp01(float64(c.A)) * 255),
	}
}
