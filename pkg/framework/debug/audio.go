package debug

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// AudioAnalyzer measures level statistics of sample buffers.
type AudioAnalyzer struct {
	ClipThreshold    float64
	DCThreshold      float64
	SilenceThreshold float64
}

// NewAudioAnalyzer returns an analyzer with the usual full-scale thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClipThreshold:    0.99,
		DCThreshold:      0.01,
		SilenceThreshold: 0.0001,
	}
}

// BufferStats is the result of analyzing one buffer. NaN samples are counted
// and otherwise skipped.
type BufferStats struct {
	Samples        int
	Peak           float64
	RMS            float64
	DC             float64
	ClippedSamples int
	NaNCount       int
	ZeroCrossings  int
	Silent         bool

	dcThreshold float64
}

// Analyze computes statistics for buffer.
func (a *AudioAnalyzer) Analyze(buffer []float64) BufferStats {
	stats := BufferStats{Samples: len(buffer), dcThreshold: a.DCThreshold}
	if len(buffer) == 0 {
		return stats
	}

	var sum, sumSquares float64
	var last float64
	seen := false
	for _, s := range buffer {
		if math.IsNaN(s) {
			stats.NaNCount++
			continue
		}
		abs := math.Abs(s)
		stats.Peak = max(stats.Peak, abs)
		if abs >= a.ClipThreshold {
			stats.ClippedSamples++
		}
		sum += s
		sumSquares += s * s
		if seen && (last < 0) != (s < 0) {
			stats.ZeroCrossings++
		}
		last, seen = s, true
	}

	n := float64(len(buffer) - stats.NaNCount)
	if n > 0 {
		stats.RMS = math.Sqrt(sumSquares / n)
		stats.DC = sum / n
	}
	stats.Silent = stats.RMS < a.SilenceThreshold
	return stats
}

// Issues lists the problems worth reporting about a buffer.
func (s BufferStats) Issues() []string {
	var issues []string
	if s.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%d NaN samples", s.NaNCount))
	}
	if s.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%d clipped samples", s.ClippedSamples))
	}
	if math.Abs(s.DC) > s.dcThreshold {
		issues = append(issues, fmt.Sprintf("DC offset %.3f", s.DC))
	}
	if s.Peak > 1 {
		issues = append(issues, fmt.Sprintf("peak %.3f exceeds full scale", s.Peak))
	}
	return issues
}

// Fields returns the statistics as structured log fields.
func (s BufferStats) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("samples", s.Samples),
		zap.Float64("peak", s.Peak),
		zap.Float64("rms", s.RMS),
		zap.Float64("dc", s.DC),
		zap.Int("clipped", s.ClippedSamples),
		zap.Bool("silent", s.Silent),
	}
}

// LogBufferStats analyzes buffer and logs the result, with a warning per issue.
func LogBufferStats(log *zap.Logger, name string, buffer []float64) BufferStats {
	stats := NewAudioAnalyzer().Analyze(buffer)
	log.Debug("buffer stats", append([]zap.Field{zap.String("buffer", name)}, stats.Fields()...)...)
	for _, issue := range stats.Issues() {
		log.Warn("buffer issue", zap.String("buffer", name), zap.String("issue", issue))
	}
	return stats
}

// BufferDifference summarizes how two equal-length buffers differ.
type BufferDifference struct {
	MaxDiff   float64
	MaxIndex  int
	Differing int
}

// CompareBuffers reports the samples of a and b that differ by more than tolerance.
func CompareBuffers(a, b []float64, tolerance float64) (BufferDifference, error) {
	if len(a) != len(b) {
		return BufferDifference{}, fmt.Errorf("buffer length mismatch: %d vs %d", len(a), len(b))
	}
	var d BufferDifference
	if len(a) == 0 {
		return d, nil
	}

	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	for i, v := range diff {
		diff[i] = math.Abs(v)
		if diff[i] > tolerance {
			d.Differing++
		}
	}
	d.MaxIndex = floats.MaxIdx(diff)
	d.MaxDiff = diff[d.MaxIndex]
	return d, nil
}
