// Package drops renders Sakura Drops: a field of glowing circular rings that
// pack themselves around the canvas center, spin when the pointer passes
// over them, and pulse in ripples that travel from drop to touching drop.
//
// The package is drawing-backend agnostic. A drop strokes itself onto any
// [Surface]; the canvas subpackage provides a gg-backed offscreen [Canvas]
// for headless rendering and an Ebitengine window for interactive use.
//
// # Quick start
//
// The simplest way to run the scene is canvas.Run, which opens a window and
// drives the frame loop for you:
//
//	cfg := drops.DefaultConfig()
//	w := canvas.NewWindow(cfg)
//	if err := canvas.Run(w); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, own the [Scheduler] and the [Manager] yourself and
// advance them once per frame, scheduler first:
//
//	sched := drops.NewScheduler()
//	m := drops.NewManager(cfg, surface, sched)
//
//	// every frame
//	sched.Update(dt)
//	m.Update()
//
// # Drops
//
// A [Drop] is a ring with a luck value that decides its decoration: outer
// segments, an inner ring bridged to the outer one, and inner segments.
// Named animations (spin and pulse) run on the [Animator]; a drop is awake
// while at least one is running and emits Woke and Slept on the transitions.
//
// # Packing and ripples
//
// Until the [Packer] settles the manager ignores pointer input. After that a
// pointer move wakes the drop under it and a click starts a [Ripple]: a
// one-shot pulse that, as it completes on a drop, is dispatched to a capped
// number of its unaffected neighbors from the adjacency [Index].
//
// # Scripts
//
// [LoadScript] parses a YAML or JSON list of pointer, pulse, wait, and
// snapshot steps. Attached with [Manager.SetScript], a script drives the
// scene one step per frame, which makes recorded sessions reproducible in
// both the window and the headless renderer.
package drops
