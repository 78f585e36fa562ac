package system

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

const (
	DefaultPossessionFade = 0.15
	DefaultTeleportCue    = "teleport"

	// maxPhaseSteps bounds how many zero-length phases can resolve in one
	// frame. A full enter/exit cycle is six.
	maxPhaseSteps = 8
)

// Event types pushed on the world queue.
const (
	EventPossessionEntered     = "possession_entered"
	EventPossessionExited      = "possession_exited"
	EventPossessionTeleported  = "possession_teleported"
	EventPossessionInterrupted = "possession_interrupted"
	EventPossessionAborted     = "possession_aborted"
)

// PossessionEvent is the payload of every possession event.
type PossessionEvent struct {
	Rig    ecs.Entity
	Target ecs.Entity
}

type PossessionState int

const (
	PossessionIdle PossessionState = iota
	PossessionActive
)

func (s PossessionState) String() string {
	if s == PossessionActive {
		return "possessing"
	}
	return "idle"
}

// Frame is a world-space pose.
type Frame struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// StandInSpawner builds a stand-in body at a world pose.
type StandInSpawner func(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error)

// PossessionTuning is the data-driven part of the configuration.
type PossessionTuning struct {
	FadeDuration         float64
	PossessedCullingMask uint32
	TeleportCue          string
}

func DefaultPossessionTuning() PossessionTuning {
	return PossessionTuning{
		FadeDuration:         DefaultPossessionFade,
		PossessedCullingMask: component.LayerAll &^ component.LayerHands,
		TeleportCue:          DefaultTeleportCue,
	}
}

// PossessionConfig binds the system to the scene.
type PossessionConfig struct {
	PossessionTuning

	Rig            ecs.Entity
	Camera         ecs.Entity
	ControlScripts []ecs.Entity
	HideObjects    []ecs.Entity

	// Pursuer is optional. When unset the pursuer is looked up on the
	// viewpoint's hierarchy at entry.
	Pursuer      ecs.Entity
	SpawnStandIn StandInSpawner
}

// PossessionSystem moves the player's eye into a remote viewpoint and back.
//
// Entry fades the listener out, then in one frame detaches the rig, takes
// away player control and physics, hides configured visuals, hands any
// pursuer a stand-in and swaps the culling mask. Every frame while
// possessed the rig is placed so the camera sits at the viewpoint. Exit
// undoes each step in order and puts the rig back at the saved frame.
type PossessionSystem struct {
	cfg     PossessionConfig
	pending *PossessionTuning

	phase   PossessionPhase
	enabled bool

	target        ecs.Entity
	saved         Frame
	hasSaved      bool
	anchor        ecs.Entity
	standIn       ecs.Entity
	prevMask      uint32
	maskSaved     bool
	preLevel      float64
	mutated       bool
	exitRequested bool

	fader    *AudioCrossfader
	controls *ControlAuthority
	visuals  *VisibilityGroup
	physics  *PhysicsDecoupler
	pursuers *PursuerRedirector

	logger *log.Logger
	warned map[string]bool
}

func NewPossessionSystem(cfg PossessionConfig) *PossessionSystem {
	if cfg.FadeDuration < 0 {
		cfg.FadeDuration = 0
	}
	return &PossessionSystem{
		cfg:      cfg,
		enabled:  true,
		preLevel: 1,
		fader:    NewAudioCrossfader(),
		controls: NewControlAuthority(),
		visuals:  NewVisibilityGroup(),
		physics:  NewPhysicsDecoupler(),
		pursuers: NewPursuerRedirector(),
		logger:   log.WithPrefix("possession"),
		warned:   make(map[string]bool),
	}
}

// RequestBeginPossession queues a possession of viewpoint for the next update.
func RequestBeginPossession(w *ecs.World, viewpoint ecs.Entity) {
	requestPossession(w, component.PossessionRequest{Action: component.PossessionBegin, Target: uint64(viewpoint)})
}

func RequestEndPossession(w *ecs.World) {
	requestPossession(w, component.PossessionRequest{Action: component.PossessionEnd})
}

func RequestTeleportRebase(w *ecs.World) {
	requestPossession(w, component.PossessionRequest{Action: component.PossessionTeleport})
}

func requestPossession(w *ecs.World, req component.PossessionRequest) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.PossessionRequestComponent.Kind(), &req)
}

// Configure replaces the tuning. While a possession is in progress the new
// values are held until the system is idle again.
func (s *PossessionSystem) Configure(t PossessionTuning) {
	if t.FadeDuration < 0 {
		t.FadeDuration = 0
	}
	if s.phase != PhaseIdle {
		s.pending = &t
		return
	}
	s.cfg.PossessionTuning = t
	s.pending = nil
}

func (s *PossessionSystem) Tuning() PossessionTuning {
	return s.cfg.PossessionTuning
}

// SetPursuer changes the explicitly linked pursuer for later possessions.
func (s *PossessionSystem) SetPursuer(e ecs.Entity) {
	s.cfg.Pursuer = e
}

// State is Active from the frame the entry mutation lands until the exit
// sequence has completely finished.
func (s *PossessionSystem) State() PossessionState {
	switch s.phase {
	case PhaseIdle, PhaseEnterFadeOut:
		return PossessionIdle
	default:
		return PossessionActive
	}
}

func (s *PossessionSystem) Phase() PossessionPhase {
	return s.phase
}

// Busy reports whether any part of a possession cycle is in progress.
func (s *PossessionSystem) Busy() bool {
	return s.phase != PhaseIdle
}

func (s *PossessionSystem) Rig() ecs.Entity {
	return s.cfg.Rig
}

func (s *PossessionSystem) Target() ecs.Entity {
	return s.target
}

// SavedFrame is the pose the rig returns to on exit.
func (s *PossessionSystem) SavedFrame() (Frame, bool) {
	return s.saved, s.hasSaved
}

func (s *PossessionSystem) StandIn() ecs.Entity {
	return s.standIn
}

func (s *PossessionSystem) Enabled() bool {
	return s.enabled
}

// Enable re-arms the system after Disable.
func (s *PossessionSystem) Enable() {
	s.enabled = true
}

// BeginPossession starts moving the player's eye into viewpoint. It reports
// whether the request was accepted.
func (s *PossessionSystem) BeginPossession(w *ecs.World, viewpoint ecs.Entity) bool {
	if w == nil || !s.enabled {
		return false
	}
	if s.phase != PhaseIdle {
		s.warnOnce("begin_busy", "possession already in progress", "phase", s.phase)
		return false
	}
	if !s.rigReady(w) {
		return false
	}
	if !viewpoint.Valid() || !ecs.Has(w, viewpoint, component.TransformComponent.Kind()) {
		s.warnOnce("begin_target", "viewpoint missing or has no transform", "viewpoint", viewpoint)
		return false
	}
	if ecs.IsDescendant(w, viewpoint, s.cfg.Rig) {
		s.warnOnce("begin_self", "viewpoint belongs to the rig", "viewpoint", viewpoint)
		return false
	}

	pos, rot, _ := ecs.WorldTransform(w, s.cfg.Rig)
	s.saved = Frame{Position: pos, Rotation: rot}
	s.hasSaved = true
	s.anchor, _ = ecs.Parent(w, s.cfg.Rig)
	s.preLevel = s.fader.Level(w)
	s.target = viewpoint
	s.exitRequested = false

	s.logger.Debug("begin", "rig", s.cfg.Rig, "viewpoint", viewpoint, "level", s.preLevel)
	s.phase = PhaseEnterFadeOut
	s.fader.FadeTo(w, 0, s.cfg.FadeDuration)
	s.settle(w)
	return true
}

// EndPossession starts returning the eye to the rig. An exit asked for while
// the entry fade-out is still running is carried out as soon as the entry
// has landed.
func (s *PossessionSystem) EndPossession(w *ecs.World) bool {
	if w == nil || !s.enabled {
		return false
	}
	switch s.phase {
	case PhaseEnterFadeOut:
		s.exitRequested = true
		return true
	case PhaseEnterFadeIn, PhasePossessing:
		s.startExit(w)
		s.settle(w)
		return true
	default:
		s.warnOnce("end_idle", "not possessing", "phase", s.phase)
		return false
	}
}

// TeleportRebase makes the viewpoint's current position the place the rig
// returns to. Only yaw is kept from the viewpoint's orientation. Once an exit
// has started the return frame is fixed.
func (s *PossessionSystem) TeleportRebase(w *ecs.World) bool {
	if w == nil || !s.enabled {
		return false
	}
	switch s.phase {
	case PhaseEnterFadeIn, PhasePossessing:
	default:
		s.warnOnce("teleport_idle", "teleport requires an active possession", "phase", s.phase)
		return false
	}
	pos, rot, ok := ecs.WorldTransform(w, s.target)
	if !ok {
		s.warnOnce("teleport_target", "viewpoint is gone", "viewpoint", s.target)
		return false
	}
	s.saved = Frame{Position: pos, Rotation: common.YawOnly(rot)}
	s.playCue(w, s.cfg.TeleportCue)
	s.push(w, EventPossessionTeleported)
	s.logger.Debug("teleport", "position", pos)
	return true
}

// Disable forces the system back to idle at once: fades are cut short, an
// applied entry is fully reverted and the listener level is restored. The
// system then ignores requests until Enable.
func (s *PossessionSystem) Disable(w *ecs.World) {
	if s.phase != PhaseIdle && w != nil {
		s.fader.Cancel()
		if s.mutated {
			s.applyExit(w)
		}
		s.fader.Set(w, s.preLevel)
		s.push(w, EventPossessionInterrupted)
		s.logger.Info("interrupted", "phase", s.phase)
		s.finish()
	}
	s.enabled = false
}

func (s *PossessionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.consumeRequests(w)
	if !s.enabled {
		return
	}
	s.advance(w, w.DeltaTime())
}

func (s *PossessionSystem) consumeRequests(w *ecs.World) {
	var requests []ecs.Entity
	var actions []component.PossessionRequest
	ecs.ForEach(w, component.PossessionRequestComponent.Kind(), func(e ecs.Entity, req *component.PossessionRequest) {
		requests = append(requests, e)
		actions = append(actions, *req)
	})
	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}
	if !s.enabled {
		return
	}
	for _, req := range actions {
		switch req.Action {
		case component.PossessionBegin:
			s.BeginPossession(w, ecs.Entity(req.Target))
		case component.PossessionEnd:
			s.EndPossession(w)
		case component.PossessionTeleport:
			s.TeleportRebase(w)
		}
	}
}

// advance runs the current phase. When a phase finishes without starting a
// timed fade the next one runs on the same frame.
func (s *PossessionSystem) advance(w *ecs.World, dt float64) {
	for i := 0; i < maxPhaseSteps; i++ {
		before := s.phase
		possessionPhases[s.phase].update(s, w, dt)
		if s.phase == before || s.fader.Active() {
			return
		}
		dt = 0
	}
}

// settle resolves phases that complete instantly, as with a zero fade.
func (s *PossessionSystem) settle(w *ecs.World) {
	if !s.fader.Active() {
		s.advance(w, 0)
	}
}

func (s *PossessionSystem) rigReady(w *ecs.World) bool {
	if !s.cfg.Rig.Valid() || !ecs.Has(w, s.cfg.Rig, component.TransformComponent.Kind()) {
		s.warnOnce("rig", "rig missing or has no transform", "rig", s.cfg.Rig)
		return false
	}
	return true
}

func (s *PossessionSystem) startExit(w *ecs.World) {
	s.exitRequested = false
	s.phase = PhaseExitFadeOut
	s.fader.FadeTo(w, 0, s.cfg.FadeDuration)
}

// applyEntry is the single-frame entry mutation.
func (s *PossessionSystem) applyEntry(w *ecs.World) {
	rig := s.cfg.Rig
	if err := ecs.SetParent(w, rig, 0, true); err != nil {
		s.warnOnce("detach", "detach rig", "err", err)
	}
	s.controls.Suspend(w, s.cfg.ControlScripts)
	s.physics.Suspend(w, rig)
	s.visuals.Hide(w, s.cfg.HideObjects)

	agent := s.resolvePursuer(w)
	chasing := agent.Valid() && s.pursuers.Chasing(w, agent, rig)
	s.standIn = s.spawnStandIn(w, chasing)
	if chasing && s.standIn.Valid() {
		s.pursuers.Redirect(w, agent, s.standIn, rig)
	}

	if cam, ok := ecs.Get(w, s.cfg.Camera, component.CameraComponent.Kind()); ok {
		s.prevMask = cam.CullingMask
		s.maskSaved = true
		cam.CullingMask = s.cfg.PossessedCullingMask
	}

	s.mutated = true
	s.rebase(w)
	s.push(w, EventPossessionEntered)
	s.logger.Info("entered", "viewpoint", s.target, "standIn", s.standIn)
}

// applyExit reverts applyEntry step by step and returns the rig to the saved
// frame.
func (s *PossessionSystem) applyExit(w *ecs.World) {
	rig := s.cfg.Rig
	anchor := s.anchor
	if !ecs.IsAlive(w, anchor) {
		anchor = 0
	}
	if err := ecs.SetParent(w, rig, anchor, true); err != nil {
		s.warnOnce("reattach", "reattach rig", "err", err)
	}
	ecs.SetWorldPose(w, rig, s.saved.Position, s.saved.Rotation)

	s.controls.Resume(w)
	s.physics.Resume(w)
	s.visuals.Restore(w)
	s.pursuers.Restore(w)
	if s.standIn.Valid() {
		ecs.DestroyEntity(w, s.standIn)
		s.standIn = 0
	}
	if s.maskSaved {
		if cam, ok := ecs.Get(w, s.cfg.Camera, component.CameraComponent.Kind()); ok {
			cam.CullingMask = s.prevMask
		}
		s.maskSaved = false
	}
	s.mutated = false
	s.push(w, EventPossessionExited)
	s.logger.Info("exited", "position", s.saved.Position)
}

// finish clears the cycle and picks up tuning that arrived mid-cycle.
func (s *PossessionSystem) finish() {
	s.phase = PhaseIdle
	s.target = 0
	s.anchor = 0
	s.saved = Frame{}
	s.hasSaved = false
	s.exitRequested = false
	if s.pending != nil {
		s.cfg.PossessionTuning = *s.pending
		s.pending = nil
	}
}

// rebase places the rig so that the camera's world position equals the
// viewpoint's. The rig's rotation is left alone.
func (s *PossessionSystem) rebase(w *ecs.World) {
	targetPos, ok := ecs.WorldPosition(w, s.target)
	if !ok {
		return
	}
	rigPos, ok := ecs.WorldPosition(w, s.cfg.Rig)
	if !ok {
		return
	}
	offset := mgl64.Vec3{}
	if camPos, ok := ecs.WorldPosition(w, s.cfg.Camera); ok {
		offset = camPos.Sub(rigPos)
	}
	ecs.SetWorldPosition(w, s.cfg.Rig, targetPos.Sub(offset))
}

// stale reports why the possession can no longer continue, if it cannot.
func (s *PossessionSystem) stale(w *ecs.World) string {
	if !ecs.IsAlive(w, s.target) {
		return "viewpoint destroyed"
	}
	if s.pursuers.Stale(w) {
		return "pursuer link broken"
	}
	return ""
}

func (s *PossessionSystem) resolvePursuer(w *ecs.World) ecs.Entity {
	if s.cfg.Pursuer.Valid() {
		if ecs.Has(w, s.cfg.Pursuer, component.PursuerComponent.Kind()) {
			return s.cfg.Pursuer
		}
		s.warnOnce("pursuer", "configured pursuer has no Pursuer component", "pursuer", s.cfg.Pursuer)
	}
	for _, e := range ecs.Lineage(w, s.target) {
		if ecs.Has(w, e, component.PursuerComponent.Kind()) {
			return e
		}
	}
	return 0
}

// spawnStandIn builds the stand-in at the saved frame. Without a prefab a
// bare decoy is made when a pursuer needs something to chase.
func (s *PossessionSystem) spawnStandIn(w *ecs.World, needDecoy bool) ecs.Entity {
	if s.cfg.SpawnStandIn != nil {
		e, err := s.cfg.SpawnStandIn(w, s.saved.Position, s.saved.Rotation)
		if err == nil && ecs.IsAlive(w, e) {
			if !ecs.Has(w, e, component.StandInTagComponent.Kind()) {
				_ = ecs.Add(w, e, component.StandInTagComponent.Kind(), &component.StandInTag{})
			}
			return e
		}
		s.warnOnce("stand_in", "stand-in prefab failed", "err", err)
	}
	if !needDecoy {
		return 0
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: s.saved.Position, Rotation: s.saved.Rotation})
	_ = ecs.Add(w, e, component.StandInTagComponent.Kind(), &component.StandInTag{})
	return e
}

func (s *PossessionSystem) playCue(w *ecs.World, name string) {
	if name == "" {
		return
	}
	a, ok := ecs.Get(w, s.cfg.Rig, component.AudioComponent.Kind())
	if !ok || !a.Request(name) {
		s.warnOnce("cue", "teleport cue not found on rig", "cue", name)
	}
}

func (s *PossessionSystem) push(w *ecs.World, typ string) {
	w.Events().Push(ecs.Event{Type: typ, Data: PossessionEvent{Rig: s.cfg.Rig, Target: s.target}})
}

func (s *PossessionSystem) warnOnce(key, msg string, keyvals ...interface{}) {
	if s.warned[key] {
		return
	}
	s.warned[key] = true
	s.logger.Warn(msg, keyvals...)
}
