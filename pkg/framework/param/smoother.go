package param

import (
	"math"
)

// SmoothingType selects how a Smoother moves toward its target.
type SmoothingType int

const (
	// LinearSmoothing steps a fixed amount per sample; rate is the number of samples.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole filter; rate is the pole (0.9-0.999).
	ExponentialSmoothing
	// LogarithmicSmoothing steps linearly in log space; suits frequencies.
	LogarithmicSmoothing
)

const logSmoothingFloor = 0.001

// Smoother ramps a control value toward a target to avoid zipper noise.
// It belongs to the audio thread and is not safe for concurrent use.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rate          float64
	threshold     float64
	active        bool
	step          float64
	logCurrent    float64
	logTarget     float64
}

// NewSmoother creates a smoother resting at zero.
func NewSmoother(smoothingType SmoothingType, rate float64) *Smoother {
	return &Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     0.0001,
	}
}

// SetTarget starts a ramp from the current value. Moves smaller than the threshold are ignored.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}
	s.target = target
	s.active = true

	switch s.smoothingType {
	case LinearSmoothing:
		if s.rate > 0 {
			s.step = (target - s.current) / s.rate
		} else {
			s.Reset(target)
		}
	case LogarithmicSmoothing:
		s.logCurrent = math.Log(max(s.current, logSmoothingFloor))
		s.logTarget = math.Log(max(target, logSmoothingFloor))
		if s.rate > 0 {
			s.step = (s.logTarget - s.logCurrent) / s.rate
		} else {
			s.Reset(target)
		}
	}
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if !s.active {
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.Reset(s.target)
		}
	case LinearSmoothing:
		s.current += s.step
		if (s.step > 0 && s.current >= s.target) || (s.step <= 0 && s.current <= s.target) {
			s.Reset(s.target)
		}
	case LogarithmicSmoothing:
		s.logCurrent += s.step
		if (s.step > 0 && s.logCurrent >= s.logTarget) || (s.step <= 0 && s.logCurrent <= s.logTarget) {
			s.Reset(s.target)
		} else {
			s.current = math.Exp(s.logCurrent)
		}
	}
	return s.current
}

// Fill writes successive smoothed values into dst.
func (s *Smoother) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.Next()
	}
}

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.active }

// Current returns the last value produced without advancing.
func (s *Smoother) Current() float64 { return s.current }

// Reset jumps to value and stops any ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.active = false
}

func (s *Smoother) SetRate(rate float64) { s.rate = rate }

func (s *Smoother) SetThreshold(threshold float64) { s.threshold = threshold }

// SmoothedParameter follows a Parameter's float value through a Smoother.
// The Parameter may be set from any thread; Sync and Next run on the audio thread.
type SmoothedParameter struct {
	param    *Parameter
	smoother *Smoother
	enabled  bool
}

// NewSmoothedParameter creates a smoother resting at the parameter's current value.
func NewSmoothedParameter(p *Parameter, smoothingType SmoothingType, rate float64) *SmoothedParameter {
	sp := &SmoothedParameter{
		param:    p,
		smoother: NewSmoother(smoothingType, rate),
		enabled:  true,
	}
	sp.smoother.Reset(p.GetFloat())
	return sp
}

// Parameter returns the followed parameter.
func (sp *SmoothedParameter) Parameter() *Parameter { return sp.param }

// Sync retargets the smoother to the parameter's current value. Call once per block.
func (sp *SmoothedParameter) Sync() {
	if !sp.enabled {
		sp.smoother.Reset(sp.param.GetFloat())
		return
	}
	sp.smoother.SetTarget(sp.param.GetFloat())
}

// Next returns the next smoothed sample value.
func (sp *SmoothedParameter) Next() float64 {
	if !sp.enabled {
		return sp.param.GetFloat()
	}
	return sp.smoother.Next()
}

// IsSmoothing reports whether the value is still ramping toward the parameter.
func (sp *SmoothedParameter) IsSmoothing() bool {
	return sp.enabled && sp.smoother.IsSmoothing()
}

// Snap jumps straight to the parameter's current value.
func (sp *SmoothedParameter) Snap() {
	sp.smoother.Reset(sp.param.GetFloat())
}

// SetSmoothing enables or disables smoothing. Disabling jumps to the current value.
func (sp *SmoothedParameter) SetSmoothing(enabled bool) {
	sp.enabled = enabled
	if !enabled {
		sp.smoother.Reset(sp.param.GetFloat())
	}
}

// UpdateSampleRate sets the rate so a ramp takes about targetTimeMs.
func (sp *SmoothedParameter) UpdateSampleRate(sampleRate, targetTimeMs float64) {
	samples := sampleRate * targetTimeMs / 1000
	switch sp.smoother.smoothingType {
	case LinearSmoothing, LogarithmicSmoothing:
		sp.smoother.SetRate(samples)
	case ExponentialSmoothing:
		// -60 dB after targetTimeMs
		sp.smoother.SetRate(math.Exp(-6.908 / samples))
	}
}
