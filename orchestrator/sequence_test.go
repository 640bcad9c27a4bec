// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/timing"
)

type manualFrameSource struct {
	tick func()
}

func (m *manualFrameSource) Start(tick func()) (stop func()) {
	m.tick = tick
	return func() { m.tick = nil }
}

func newTestProvider() (*timing.Provider, *manualFrameSource) {
	now := int64(0)
	src := &manualFrameSource{}
	return timing.NewProvider(func() int64 { return now }, src, nil), src
}

// fakeWriter is an in-memory StyleWriter recording every ApplyStyle call's
// final value per target/property, plus an optional missing set to
// exercise the recoverable-skip path.
type fakeWriter struct {
	live    map[string]PropertySet
	missing map[string]bool
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{live: make(map[string]PropertySet), missing: make(map[string]bool)}
}

func (w *fakeWriter) ReadStyle(target string) PropertySet {
	if p, ok := w.live[target]; ok {
		return p
	}
	return PropertySet{}
}

func (w *fakeWriter) ApplyStyle(target string, props PropertySet) {
	w.live[target] = props
}

func (w *fakeWriter) Exists(target string) bool {
	return !w.missing[target]
}

func TestSequencePlaysStagesInDependencyOrder(t *testing.T) {

	Convey("Given a two-stage sequence where stage b depends on stage a", t, func() {

		tp, src := newTestProvider()
		writer := newFakeWriter()

		cfg := SequenceConfig{
			ID: "s1",
			Stages: []StageConfig{
				{ID: "a", Target: "box-a", Duration: 100, To: PropertySet{"x": 10}},
				{ID: "b", Target: "box-b", DependsOn: []string{"a"}, Duration: 100, To: PropertySet{"x": 20}},
			},
			Writer: writer,
		}
		seq, err := New(cfg, tp, events.NewEmitter(nil), nil)
		So(err, ShouldBeNil)

		Convey("stage b does not start until stage a has completed", func() {

			seq.Play()
			for i := 0; i < 50 && src.tick != nil; i++ {
				src.tick()
			}
			_, bTouched := writer.live["box-b"]
			So(bTouched, ShouldBeFalse)

			for i := 0; i < 200 && src.tick != nil; i++ {
				src.tick()
			}
			So(writer.live["box-a"]["x"], ShouldEqual, 10)
			So(writer.live["box-b"]["x"], ShouldEqual, 20)
			So(seq.State(), ShouldEqual, StateCompleted)
		})
	})
}

func TestSequenceCyclicDependencyFailsConstruction(t *testing.T) {

	Convey("Given two stages that depend on each other", t, func() {

		tp, _ := newTestProvider()
		cfg := SequenceConfig{
			ID: "cyclic",
			Stages: []StageConfig{
				{ID: "a", Target: "x", DependsOn: []string{"b"}, To: PropertySet{"x": 1}},
				{ID: "b", Target: "y", DependsOn: []string{"a"}, To: PropertySet{"x": 1}},
			},
			Writer: newFakeWriter(),
		}

		Convey("construction fails with a graph error instead of hanging at play time", func() {
			_, err := New(cfg, tp, events.NewEmitter(nil), nil)
			So(err, ShouldNotBeNil)
			_, ok := err.(*GraphError)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestSequenceRecoversFromMissingStageTarget(t *testing.T) {

	Convey("Given a stage whose target disappears before it starts", t, func() {

		tp, src := newTestProvider()
		writer := newFakeWriter()
		writer.missing["ghost"] = true

		cfg := SequenceConfig{
			Stages: []StageConfig{
				{ID: "a", Target: "ghost", Duration: 50, To: PropertySet{"x": 1}},
				{ID: "b", Target: "real", DependsOn: []string{"a"}, Duration: 50, To: PropertySet{"x": 2}},
			},
			Writer: writer,
		}
		seq, err := New(cfg, tp, events.NewEmitter(nil), nil)
		So(err, ShouldBeNil)

		Convey("the sequence emits a recoverable error, skips it, and dependents still run", func() {

			var recovered error
			seq.OnError(func(err error) { recovered = err })

			seq.Play()
			for i := 0; i < 200 && src.tick != nil; i++ {
				src.tick()
			}

			So(recovered, ShouldNotBeNil)
			So(writer.live["real"]["x"], ShouldEqual, 2)
			So(seq.State(), ShouldEqual, StateCompleted)
		})
	})
}

func TestSequenceLoopCountReplaysThenCompletes(t *testing.T) {

	Convey("Given a sequence configured to loop twice", t, func() {

		tp, src := newTestProvider()
		writer := newFakeWriter()
		cfg := SequenceConfig{
			Stages: []StageConfig{{ID: "a", Target: "x", Duration: 10, To: PropertySet{"v": 1}}},
			Loop:   LoopConfig{Mode: LoopCount, Count: 2},
			Writer: writer,
		}
		seq, err := New(cfg, tp, events.NewEmitter(nil), nil)
		So(err, ShouldBeNil)

		var starts, completes int
		seq.OnStart(func() { starts++ })
		seq.OnComplete(func() { completes++ })

		seq.Play()
		for i := 0; i < 100 && src.tick != nil; i++ {
			src.tick()
		}

		Convey("it plays a total of three times (1 initial + 2 loops) and completes once", func() {
			So(starts, ShouldEqual, 3)
			So(completes, ShouldEqual, 1)
			So(seq.State(), ShouldEqual, StateCompleted)
		})
	})
}

func TestSequenceStopHaltsTicking(t *testing.T) {

	Convey("Given a playing sequence", t, func() {

		tp, src := newTestProvider()
		cfg := SequenceConfig{
			Stages: []StageConfig{{ID: "a", Target: "x", Duration: 1000, To: PropertySet{"v": 1}}},
			Writer: newFakeWriter(),
		}
		seq, err := New(cfg, tp, events.NewEmitter(nil), nil)
		So(err, ShouldBeNil)
		seq.Play()

		Convey("Stop prevents any further ticking", func() {
			seq.Stop()
			So(src.tick, ShouldBeNil)
			So(seq.State(), ShouldEqual, StateStopped)
		})
	})
}

func TestSequenceResetRestoresFromSnapshot(t *testing.T) {

	Convey("Given a sequence that has partially played", t, func() {

		tp, src := newTestProvider()
		writer := newFakeWriter()
		writer.live["x"] = PropertySet{"v": 0}
		cfg := SequenceConfig{
			Stages: []StageConfig{{ID: "a", Target: "x", Duration: 100, To: PropertySet{"v": 100}}},
			Writer: writer,
		}
		seq, err := New(cfg, tp, events.NewEmitter(nil), nil)
		So(err, ShouldBeNil)

		seq.Play()
		for i := 0; i < 30 && src.tick != nil; i++ {
			src.tick()
		}

		Convey("Reset restores the recorded from-value for every stage's target", func() {
			seq.Reset()
			So(writer.live["x"]["v"], ShouldEqual, 0)
			So(seq.GetProgress(), ShouldEqual, 0)
		})
	})
}
