package system

import "github.com/milk9111/viewpoint/ecs"

type PossessionPhase int

const (
	PhaseIdle PossessionPhase = iota
	PhaseEnterFadeOut
	PhaseEnterFadeIn
	PhasePossessing
	PhaseExitFadeOut
	PhaseExitFadeIn
)

func (p PossessionPhase) String() string {
	if h, ok := possessionPhases[p]; ok {
		return h.name
	}
	return "unknown"
}

type possessionPhase struct {
	name   string
	update func(s *PossessionSystem, w *ecs.World, dt float64)
}

// possessionPhases maps each phase to its handler.
var possessionPhases map[PossessionPhase]possessionPhase

func init() {
	possessionPhases = map[PossessionPhase]possessionPhase{
		PhaseIdle:         {name: "idle", update: func(*PossessionSystem, *ecs.World, float64) {}},
		PhaseEnterFadeOut: {name: "enter_fade_out", update: updateEnterFadeOut},
		PhaseEnterFadeIn:  {name: "enter_fade_in", update: updateEnterFadeIn},
		PhasePossessing:   {name: "possessing", update: updatePossessing},
		PhaseExitFadeOut:  {name: "exit_fade_out", update: updateExitFadeOut},
		PhaseExitFadeIn:   {name: "exit_fade_in", update: updateExitFadeIn},
	}
}

func updateEnterFadeOut(s *PossessionSystem, w *ecs.World, dt float64) {
	if !ecs.IsAlive(w, s.target) {
		// Nothing has been touched yet; just bring the sound back.
		s.logger.Warn("viewpoint destroyed before entry", "viewpoint", s.target)
		s.push(w, EventPossessionAborted)
		s.phase = PhaseExitFadeIn
		s.fader.FadeTo(w, s.preLevel, s.cfg.FadeDuration)
		return
	}
	if !s.fader.Step(w, dt) {
		return
	}
	s.applyEntry(w)
	if s.exitRequested {
		// Already silent, so the exit fade-out is skipped.
		s.startExit(w)
		s.fader.Finish(w)
		completeExitFadeOut(s, w)
		return
	}
	s.phase = PhaseEnterFadeIn
	s.fader.FadeTo(w, s.preLevel, s.cfg.FadeDuration)
}

func updateEnterFadeIn(s *PossessionSystem, w *ecs.World, dt float64) {
	if reason := s.stale(w); reason != "" {
		s.logger.Warn("ending possession", "reason", reason)
		s.startExit(w)
		return
	}
	s.rebase(w)
	if s.fader.Step(w, dt) {
		s.phase = PhasePossessing
	}
}

func updatePossessing(s *PossessionSystem, w *ecs.World, _ float64) {
	if reason := s.stale(w); reason != "" {
		s.logger.Warn("ending possession", "reason", reason)
		s.startExit(w)
		return
	}
	s.rebase(w)
}

func updateExitFadeOut(s *PossessionSystem, w *ecs.World, dt float64) {
	if ecs.IsAlive(w, s.target) {
		s.rebase(w)
	}
	if !s.fader.Step(w, dt) {
		return
	}
	completeExitFadeOut(s, w)
}

func completeExitFadeOut(s *PossessionSystem, w *ecs.World) {
	s.applyExit(w)
	s.phase = PhaseExitFadeIn
	s.fader.FadeTo(w, s.preLevel, s.cfg.FadeDuration)
}

func updateExitFadeIn(s *PossessionSystem, w *ecs.World, dt float64) {
	if s.fader.Step(w, dt) {
		s.finish()
	}
}
