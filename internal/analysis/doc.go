// Package analysis provides frequency analysis of recorded trajectories.
//
// [PowerSpectrum] computes the magnitude spectrum of a signal such as a
// body's height over time, and [DominantFrequency] extracts its strongest
// oscillation. Useful for characterizing bouncing and settling behavior.
package analysis
