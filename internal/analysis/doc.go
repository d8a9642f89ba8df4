// Package analysis compares rendered frames and summarises strip layouts.
//
//   - [Compare]: per-pixel diff with a channel threshold, bounding box and
//     per-region breakdown
//   - [Overlay]: copy of the first image with differing pixels painted red
//   - [Summarize]: width and speed statistics of a generated strip layout
//
// # Regression checks
//
// Two renders of the same seed should be identical:
//
//	res := analysis.Compare(a, b, analysis.DefaultThreshold)
//	if res.Count > 0 {
//	    // frames diverged inside res.Bounds
//	}
package analysis
