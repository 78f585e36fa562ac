package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/milk9111/viewpoint/prefabs"
)

// pursuitDispatchScript is appended to every steering script. Scripts define
// steer(self, target, params) and return a velocity map {x, y, z}.
const pursuitDispatchScript = `
__out = steer(__self, __target, __params)
`

// PursuitSystem moves every Pursuer toward its target's world position.
type PursuitSystem struct {
	scripts map[string]*steeringScript
	failed  map[string]bool
	logger  *log.Logger
}

type steeringScript struct {
	compiled *tengo.Compiled
}

func NewPursuitSystem() *PursuitSystem {
	return &PursuitSystem{
		scripts: make(map[string]*steeringScript),
		failed:  make(map[string]bool),
		logger:  log.WithPrefix("pursuit"),
	}
}

func (s *PursuitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.PursuerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pursuer, _ *component.Transform) {
		target := ecs.Entity(p.GetTarget())
		if !target.Valid() {
			return
		}
		goal, ok := ecs.WorldPosition(w, target)
		if !ok {
			return
		}
		pos, _ := ecs.WorldPosition(w, e)
		ecs.SetWorldPosition(w, e, s.step(p, pos, goal, dt))
	})
}

// InvalidateScripts drops compiled scripts so edited sources are picked up.
func (s *PursuitSystem) InvalidateScripts() {
	s.scripts = make(map[string]*steeringScript)
	s.failed = make(map[string]bool)
}

func (s *PursuitSystem) step(p *component.Pursuer, pos, goal mgl64.Vec3, dt float64) mgl64.Vec3 {
	if name := strings.TrimSpace(p.Script); name != "" && !s.failed[name] {
		vel, err := s.steer(name, p, pos, goal)
		if err == nil {
			return pos.Add(vel.Mul(dt))
		}
		s.failed[name] = true
		s.logger.Error("steering script failed; using direct pursuit", "script", name, "err", err)
	}
	dist := goal.Sub(pos).Len()
	if dist <= p.StopDistance {
		return pos
	}
	maxStep := p.Speed * dt
	if remaining := dist - p.StopDistance; maxStep > remaining {
		maxStep = remaining
	}
	return common.MoveTowards(pos, goal, maxStep)
}

func (s *PursuitSystem) steer(name string, p *component.Pursuer, pos, goal mgl64.Vec3) (mgl64.Vec3, error) {
	rt, err := s.script(name)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	c := rt.compiled
	if err := c.Set("__self", vecMap(pos)); err != nil {
		return mgl64.Vec3{}, err
	}
	if err := c.Set("__target", vecMap(goal)); err != nil {
		return mgl64.Vec3{}, err
	}
	params := map[string]interface{}{"speed": p.Speed, "stop": p.StopDistance}
	if err := c.Set("__params", params); err != nil {
		return mgl64.Vec3{}, err
	}
	if err := c.Run(); err != nil {
		return mgl64.Vec3{}, err
	}
	out := c.Get("__out").Map()
	if out == nil {
		return mgl64.Vec3{}, fmt.Errorf("steer must return a map")
	}
	return mgl64.Vec3{toFloat(out["x"]), toFloat(out["y"]), toFloat(out["z"])}, nil
}

func (s *PursuitSystem) script(name string) (*steeringScript, error) {
	if rt, ok := s.scripts[name]; ok {
		return rt, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + pursuitDispatchScript))
	_ = script.Add("__self", map[string]interface{}{})
	_ = script.Add("__target", map[string]interface{}{})
	_ = script.Add("__params", map[string]interface{}{})
	_ = script.Add("__out", nil)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt := &steeringScript{compiled: compiled}
	s.scripts[name] = rt
	return rt, nil
}

func vecMap(v mgl64.Vec3) map[string]interface{} {
	return map[string]interface{}{"x": v.X(), "y": v.Y(), "z": v.Z()}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
