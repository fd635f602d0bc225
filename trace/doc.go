// Package trace provides the step-by-step snapshot sequence shared by every
// structure engine in structviz.
//
// What
//
//   - Step[S,K]: one animation frame, carrying a state snapshot S, the set of
//     highlighted element keys K (indices or node ids), a short Note and an
//     optional scalar Result.
//   - Trace[S,K]: a finite, restartable, ordered sequence of Steps. Every
//     call to All or Cursor starts again from the first step.
//   - Recorder[S,K]: collects Steps while an engine runs an operation.
//   - Cursor[S,K]: pulls steps one at a time (Next) or drains the rest
//     (RunToCompletion).
//   - Play: drives a Trace to completion, pausing between steps according to
//     a Pacer and handing each Step to a display callback.
//   - Gate: admits at most one in-flight trace per engine instance.
//
// Why
//
//	Engines mutate their state eagerly and record what happened; display
//	surfaces replay the record at their own cadence. Keeping the replay
//	independent of any rendering technology lets the same trace drive a
//	terminal, an HTTP client or a test.
//
// Complexity
//
//   - Recording: O(1) amortized per Emit (the snapshot is whatever the engine passes).
//   - Replay:    O(steps).
//
// Usage
//
//	rec := trace.NewRecorder[[]int, int]()
//	rec.Emit(heap, "swap", 3, 1)
//	tr := rec.Trace()
//
//	err := trace.Play(ctx, tr, trace.FixedPacer(400*time.Millisecond),
//	    func(s trace.Step[[]int, int]) error { return surface.Show(s) })
//
// Errors
//
//   - ErrBusy      if a Gate is already held by another trace.
//   - ctx.Err()    if Play's context is cancelled between steps.
//   - any error returned by the display callback.
package trace
