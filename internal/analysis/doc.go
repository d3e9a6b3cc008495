// Package analysis inspects recorded traces.
//
//   - [DominantFrequency]: strongest non-DC frequency of a sampled signal
//   - [FindPeaks] and [EstimatePeriod]: oscillation peaks and mean period
//   - [Decaying]: whether a peak envelope never grows
//   - [NewPhasePortrait]: position against velocity for ASCII plotting
//   - [Sweep]: one headless run per parameter value
//
// A pendulum trace can be checked against its closed-form figures:
//
//	f := analysis.DominantFrequency(trace.Rotations(), trace.Timestep)
//	period, frequency, _ := kinematics.PendulumFigures(length)
package analysis
