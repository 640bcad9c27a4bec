// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runtime is the public facade (C9 in the design): the thin
// adapter layer that memoizes engine/orchestrator/spring/interaction
// handles per UI element and wires their lifecycle to element
// mount/unmount, plus the top-level CreateEngine/CreateSequence/
// CreateSpring/CreateInteraction constructors; all of them except
// CreateEngine run their request through the accessibility gate first.
// It generalizes the teacher's
// top-level app.Application (the one object a host program constructs
// and everything else hangs off of) into a library entry point with no
// window/render loop of its own.
package runtime

import (
	"github.com/galileo-glass/runtime/quality"
	"github.com/galileo-glass/runtime/rtconfig"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/timing"
)

// Environment bundles every host-supplied input the runtime needs so it
// never reaches for wall-clock time, a frame loop, or storage itself
// (§6: "injected, not sniffed globally").
type Environment struct {
	NowProvider          timing.NowFunc
	FrameSource          timing.FrameSource
	Storage              rtconfig.Store
	PrefersReducedMotion func() bool
	Probe                quality.Probe
}
