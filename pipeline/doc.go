// Package pipeline coordinates one run from raw inputs to a ready render
// view.
//
// A run moves through a fixed sequence of states:
//
//	Idle -> AwaitingInputs -> Parsed -> Justified -> AwaitingPartition -> Ready
//
// The dataset and the font are fetched concurrently and each is decoded as
// soon as it arrives. Layout starts only when both are ready. All glyphs are
// submitted to the partitioner as one batch; attributes are built from the
// partitioned result and uploaded before the geometry is attached. Once
// ready, every camera change pushes a fresh transform and a redraw request
// to the view.
//
// Any failure is terminal: the run moves to Failed, nothing further is
// handed to the view and the error carries a monument error kind. A
// canceled context fails the run with monument.ErrCanceled wrapping the
// context error, whichever stage was waiting.
package pipeline
