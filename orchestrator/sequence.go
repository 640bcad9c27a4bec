// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/rtconfig"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/timing"
)

// State is the Sequence's own state machine (§4.6 step 6).
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateCompleted
	StateStopped
	StateError
)

// LoopMode selects the sequence's looping behavior.
type LoopMode int

const (
	LoopNone LoopMode = iota
	LoopCount
	LoopInfinite
)

// LoopConfig configures looping; Count is consulted only when Mode ==
// LoopCount and counts additional replays after the first play.
type LoopConfig struct {
	Mode  LoopMode
	Count int
}

// StyleWriter is the host binding a Sequence drives. ReadStyle resolves a
// stage's From values on its first frame when the stage config omits them
// (§4.6 step 2: "from, if omitted, is sampled from the live computed
// style"); ApplyStyle receives one batched write per target per tick
// (§4.6 step 4: "writes are batched per target, not per property").
// Exists reports whether target is still live, consulted at each stage's
// own start so a torn-down target degrades into a recoverable skip
// instead of a panic or a stuck sequence.
type StyleWriter interface {
	ReadStyle(target string) PropertySet
	ApplyStyle(target string, props PropertySet)
	Exists(target string) bool
}

// SequenceConfig configures a new Sequence (§6: "createSequence(stages,
// { loop? })").
type SequenceConfig struct {
	ID     string
	Stages []StageConfig `validate:"required,min=1"`
	Loop   LoopConfig
	Writer StyleWriter `validate:"required"`
}

const (
	eventStart       = "sequence:start"
	eventStageChange = "sequence:stageChange"
	eventComplete    = "sequence:complete"
	eventError       = "sequence:error"
)

// Sequence is the C6 declarative orchestrator: a dependency-ordered stage
// DAG driven off a single timing.Provider subscription, generalizing the
// teacher's animation.Animation (one flat list of IChannel, played by
// elapsed time) into named, interdependent stages (§4.6).
type Sequence struct {
	cfg SequenceConfig

	stages []*stageRuntime
	byID   map[string]*stageRuntime
	total  float64 // ms, max over all stage end times

	tp      *timing.Provider
	emitter *events.Emitter
	log     *rtlog.Logger

	state      State
	elapsed    float64
	playsTotal int // 1 + loops done so far

	handle  timing.Handle
	ticking bool
	gen     int // bumped on Stop/Reset; guards against stale async effects
}

// New validates cfg, resolves the stage DAG's start times, and returns a
// Sequence in StateIdle. Graph errors (unknown dependency id, a cycle)
// fail construction; they are unrecoverable and never surface during
// Play (§4.6: "cyclic graph fails construction").
func New(cfg SequenceConfig, tp *timing.Provider, emitter *events.Emitter, log *rtlog.Logger) (*Sequence, error) {

	if err := rtconfig.Validate(cfg); err != nil {
		return nil, &ValidationError{Err: err}
	}

	byID := make(map[string]*stageRuntime, len(cfg.Stages))
	stages := make([]*stageRuntime, len(cfg.Stages))
	for i, sc := range cfg.Stages {
		rt := &stageRuntime{cfg: sc}
		stages[i] = rt
		byID[sc.ID] = rt
	}
	for _, rt := range stages {
		for _, dep := range rt.cfg.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, &GraphError{StageID: rt.cfg.ID, Reason: "depends on unknown stage " + dep}
			}
		}
	}

	if err := computeStartTimes(stages, byID); err != nil {
		return nil, err
	}

	total := 0.0
	for _, rt := range stages {
		if end := rt.endTime(); end > total {
			total = end
		}
	}

	return &Sequence{
		cfg:     cfg,
		stages:  stages,
		byID:    byID,
		total:   total,
		tp:      tp,
		emitter: emitter,
		log:     log,
		state:   StateIdle,
	}, nil
}

// computeStartTimes resolves startTime = max(dep.startTime+dep.duration)
// + delay for every stage (§4.6 step 1), detecting cycles via a
// recursion-in-progress marker.
func computeStartTimes(stages []*stageRuntime, byID map[string]*stageRuntime) error {

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(stages))

	var visit func(rt *stageRuntime) error
	visit = func(rt *stageRuntime) error {
		switch state[rt.cfg.ID] {
		case done:
			return nil
		case visiting:
			return &GraphError{StageID: rt.cfg.ID, Reason: "cyclic dependency"}
		}
		state[rt.cfg.ID] = visiting

		start := 0.0
		for _, depID := range rt.cfg.DependsOn {
			dep := byID[depID]
			if err := visit(dep); err != nil {
				return err
			}
			if end := dep.endTime(); end > start {
				start = end
			}
		}
		rt.startTime = start + rt.cfg.Delay
		state[rt.cfg.ID] = done
		return nil
	}

	for _, rt := range stages {
		if err := visit(rt); err != nil {
			return err
		}
	}
	return nil
}

// OnStart subscribes to the sequence-start event, fired once per Play
// (including the first play of a looped sequence and every subsequent
// loop iteration).
func (s *Sequence) OnStart(cb func()) events.Unsubscribe {
	return s.emitter.On(eventStart, func(interface{}) { cb() })
}

// OnStageChange subscribes to stage-id transitions.
func (s *Sequence) OnStageChange(cb func(stageID string)) events.Unsubscribe {
	return s.emitter.On(eventStageChange, func(p interface{}) { cb(p.(string)) })
}

// OnComplete subscribes to sequence completion (never fired when
// Loop.Mode == LoopInfinite).
func (s *Sequence) OnComplete(cb func()) events.Unsubscribe {
	return s.emitter.On(eventComplete, func(interface{}) { cb() })
}

// OnError subscribes to recoverable stage errors (§4.6: missing targets
// degrade the stage to a skip and notify, rather than aborting the
// sequence).
func (s *Sequence) OnError(cb func(err error)) events.Unsubscribe {
	return s.emitter.On(eventError, func(p interface{}) { cb(p.(error)) })
}

// GetProgress returns elapsed time as a fraction of the sequence's total
// duration, in [0,1].
func (s *Sequence) GetProgress() float64 {
	if s.total <= 0 {
		return 1
	}
	u := s.elapsed / s.total
	if u > 1 {
		u = 1
	}
	return u
}

// GetCurrentStageID returns the id of the last stage to start that has
// not yet completed, or "" if none is active.
func (s *Sequence) GetCurrentStageID() string {
	var current string
	var currentStart = -1.0
	for _, rt := range s.stages {
		if !rt.completed && rt.startTime <= s.elapsed && rt.startTime > currentStart {
			current = rt.cfg.ID
			currentStart = rt.startTime
		}
	}
	return current
}

// Play starts (or resumes from idle/stopped/completed) the sequence.
// Calling Play while already playing is a no-op.
func (s *Sequence) Play() {
	if s.state == StatePlaying {
		return
	}
	if s.state == StateCompleted || s.state == StateStopped || s.state == StateError {
		s.resetRuntimeState()
	}
	s.state = StatePlaying
	s.emitter.Emit(eventStart, nil)
	s.startTicking()
}

// Pause freezes elapsed time; Resume continues from the same point.
func (s *Sequence) Pause() {
	if s.state != StatePlaying {
		return
	}
	s.state = StatePaused
	s.stopTicking()
}

// Resume continues a paused sequence.
func (s *Sequence) Resume() {
	if s.state != StatePaused {
		return
	}
	s.state = StatePlaying
	s.startTicking()
}

// Stop halts the sequence permanently (until the next Play) without
// completing it. No further style writes occur after Stop returns.
func (s *Sequence) Stop() {
	s.gen++
	s.stopTicking()
	s.state = StateStopped
}

// Reset rewinds to t=0 and restores every stage's target to its recorded
// From snapshot. A playing sequence keeps playing from the start; a
// sequence in any other state is left in StateIdle.
func (s *Sequence) Reset() {
	s.gen++
	s.elapsed = 0
	s.playsTotal = 0
	for _, rt := range s.stages {
		rt.completed = false
		rt.skipped = false
		if rt.fromResolved {
			s.cfg.Writer.ApplyStyle(rt.cfg.Target, rt.resolvedFrom)
		}
		rt.fromResolved = false
	}
	if s.state == StatePlaying {
		s.state = StateIdle
		s.Play()
	} else {
		s.state = StateIdle
	}
}

// Restart is Reset immediately followed by Play.
func (s *Sequence) Restart() {
	s.Reset()
	s.Play()
}

// Seek jumps elapsed time to ms (clamped to [0,total]) and applies every
// stage's state at that point without waiting for ticks. Stages that
// start after ms are left at their unresolved From.
func (s *Sequence) Seek(ms float64) {
	if ms < 0 {
		ms = 0
	}
	if ms > s.total {
		ms = s.total
	}
	s.elapsed = ms
	s.applyFrame()
}

func (s *Sequence) resetRuntimeState() {
	s.elapsed = 0
	s.playsTotal = 0
	for _, rt := range s.stages {
		rt.completed = false
		rt.skipped = false
		rt.fromResolved = false
	}
}

func (s *Sequence) startTicking() {
	if s.ticking {
		return
	}
	s.ticking = true
	s.handle = s.tp.Subscribe(func(dt float64, _ int64) {
		s.tick(dt)
	})
}

func (s *Sequence) stopTicking() {
	if !s.ticking {
		return
	}
	s.ticking = false
	s.tp.Unsubscribe(s.handle)
}

func (s *Sequence) tick(dt float64) {

	gen := s.gen
	s.elapsed += dt
	if gen != s.gen {
		return
	}

	s.applyFrame()
	if gen != s.gen {
		return
	}

	if s.elapsed >= s.total {
		s.finishPlay()
	}
}

// applyFrame walks every stage, resolving From lazily at first touch,
// skipping stages whose target has disappeared, and batching one
// ApplyStyle call per target per tick that carries the properties of every
// stage on that target (§4.6 step 4).
func (s *Sequence) applyFrame() {

	prevStageID := s.GetCurrentStageID()

	batch := make(map[string]PropertySet)
	var targets []string

	for _, rt := range s.stages {
		if rt.completed || rt.skipped {
			continue
		}
		if s.elapsed < rt.startTime {
			continue
		}

		if !rt.fromResolved {
			if !s.cfg.Writer.Exists(rt.cfg.Target) {
				rt.skipped = true
				rt.completed = true
				s.emitter.Emit(eventError, &StageRecoveredError{StageID: rt.cfg.ID, Reason: "target no longer exists"})
				continue
			}
			if rt.cfg.From != nil {
				rt.resolvedFrom = rt.cfg.From
			} else {
				rt.resolvedFrom = s.cfg.Writer.ReadStyle(rt.cfg.Target)
			}
			rt.fromResolved = true
		}

		u := 1.0
		if rt.cfg.Duration > 0 {
			u = (s.elapsed - rt.startTime) / rt.cfg.Duration
			if u > 1 {
				u = 1
			} else if u < 0 {
				u = 0
			}
		}
		eased := rt.easing()(u)

		props, ok := batch[rt.cfg.Target]
		if !ok {
			props = make(PropertySet, len(rt.cfg.To))
			batch[rt.cfg.Target] = props
			targets = append(targets, rt.cfg.Target)
		}
		for k, to := range rt.cfg.To {
			from := to
			if v, ok := rt.resolvedFrom[k]; ok {
				from = v
			}
			props[k] = from + (to-from)*eased
		}

		if u >= 1 {
			rt.completed = true
		}
	}

	for _, target := range targets {
		s.cfg.Writer.ApplyStyle(target, batch[target])
	}

	if current := s.GetCurrentStageID(); current != prevStageID && current != "" {
		s.emitter.Emit(eventStageChange, current)
	}
}

// finishPlay handles end-of-timeline bookkeeping: looping or completion.
func (s *Sequence) finishPlay() {

	switch s.cfg.Loop.Mode {
	case LoopInfinite:
		s.replay()
	case LoopCount:
		if s.playsTotal < s.cfg.Loop.Count {
			s.playsTotal++
			s.replay()
			return
		}
		s.stopTicking()
		s.state = StateCompleted
		s.emitter.Emit(eventComplete, nil)
	default:
		s.stopTicking()
		s.state = StateCompleted
		s.emitter.Emit(eventComplete, nil)
	}
}

func (s *Sequence) replay() {
	s.elapsed = 0
	for _, rt := range s.stages {
		rt.completed = false
		rt.skipped = false
		rt.fromResolved = false
	}
	s.emitter.Emit(eventStart, nil)
}

// State returns the sequence's current lifecycle state.
func (s *Sequence) State() State {
	return s.state
}
