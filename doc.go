// Package pitchfilter implements the adaptive pitch pre- and post-filter of
// the iSAC speech codec in pure Go.
//
// The encoder pre-filter removes the periodic (pitch) component of a
// speech frame so the residual is cheaper to code. The decoder post-filter
// is its inverse, optionally enhanced to make voiced speech more periodic.
// Pitch lags may be fractional; sub-sample delays are realized by a table
// of 8 interpolation filters and smoothed by a 5-tap damping filter.
//
// # Frames
//
// Audio is processed in frames of [FrameLength] samples (30 ms at 8 kHz),
// each split into [SubFrames] sub-frames with their own lag and gain.
// Inside a frame, lag and gain move linearly from the previous sub-frame's
// target to the current one in [StepsPerSubFrame] steps, except when the
// first lag jumps by more than a factor of 1.5 up or 0.67 down.
//
// # Quick Start
//
// Frame-level filtering with explicit state:
//
//	enc := pitchfilter.NewState()
//	dec := pitchfilter.NewState()
//	residual := make([]float64, pitchfilter.FrameLength)
//	decoded := make([]float64, pitchfilter.FrameLength)
//
//	for frame := range frames {
//	    if err := pitchfilter.PreFilter(frame, residual, enc, lags, gains); err != nil {
//	        log.Fatal(err)
//	    }
//	    // ... code residual, transmit lags and gains ...
//	    if err := pitchfilter.PostFilter(residual, decoded, dec, lags, gains); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Streaming over chunks of any size:
//
//	s, err := pitchfilter.NewStream(&pitchfilter.Config{
//	    Mode:     pitchfilter.ModePre,
//	    Channels: 1,
//	    Params:   pitchfilter.ConstantParams(pitchfilter.UniformParams(60, 0.3)),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := s.Process(chunk)
//
// # Modes
//
//   - [PreFilter]: encoder pre-filter over one frame.
//   - [PreFilterWithLookahead]: pre-filter over one frame and the
//     [LookaheadLength] samples that follow it. Only the frame advances
//     the state.
//   - [PreFilterGainSearch]: like the lookahead variant, additionally
//     writing per sub-frame gain derivatives to [TrialOutputs]. The state
//     is not modified. [RefineGains] turns the derivatives into improved
//     gains.
//   - [PostFilter]: decoder post-filter. The gains are scaled by -1.3
//     internally; the caller's values are not modified.
//
// # Thread Safety
//
// A [State] belongs to one stream and must not be shared by concurrent
// calls. Different states may be filtered concurrently. [Stream] is not
// safe for concurrent use, but [Stream.ProcessMulti] filters its channels
// in parallel when [Config.EnableParallel] is set.
package pitchfilter
