package prelude

import "math"

type envelopeMode int

const (
	envHold envelopeMode = iota
	envApproach
	envRamp
)

// envelope is a per-sample gain curve.
type envelope struct {
	mode      envelopeMode
	value     float64
	target    float64
	coeff     float64
	remaining int64
}

func (e *envelope) hold(v float64) {
	e.mode = envHold
	e.value = v
}

// setTarget approaches target exponentially with time constant tau seconds.
func (e *envelope) setTarget(target, tau float64, sampleRate int) {
	if tau <= 0 {
		e.hold(target)
		return
	}
	e.mode = envApproach
	e.target = target
	e.coeff = 1 - math.Exp(-1/(tau*float64(sampleRate)))
}

// rampTo reaches target after d seconds along an exponential curve. Both the
// current value and target must be positive.
func (e *envelope) rampTo(target, d float64, sampleRate int) {
	n := int64(d * float64(sampleRate))
	if n < 1 || e.value <= 0 || target <= 0 {
		e.hold(target)
		return
	}
	e.mode = envRamp
	e.target = target
	e.coeff = math.Pow(target/e.value, 1/float64(n))
	e.remaining = n
}

func (e *envelope) next() float64 {
	switch e.mode {
	case envApproach:
		e.value += (e.target - e.value) * e.coeff
	case envRamp:
		e.value *= e.coeff
		e.remaining--
		if e.remaining <= 0 {
			e.hold(e.target)
		}
	}
	return e.value
}
