package passing

import "math"

const (
	gradientApproxStep = 1e-5
	beta1              = 0.9
	beta2              = 0.999
	adamEpsilon        = 1e-8
)

// GradientAscent is an Adam-style optimizer over a fixed size parameter
// vector. The gradient is approximated by forward differences, so the
// objective may be non-smooth; nothing assumes convexity.
type GradientAscent struct {
	// weights roughly equal the distance moved per step in each dimension.
	weights [NumParams]float64
}

func NewGradientAscent(stepSize float64) GradientAscent {
	var w [NumParams]float64
	for i := range w {
		w[i] = stepSize
	}
	return GradientAscent{weights: w}
}

// Maximize runs steps iterations from start and returns the final point.
func (g GradientAscent) Maximize(f func([NumParams]float64) float64, start [NumParams]float64, steps int) [NumParams]float64 {
	params := start
	var m, v [NumParams]float64

	for i := 1; i <= steps; i++ {
		grad := g.approximateGradient(f, params)

		b1 := 1 - math.Pow(beta1, float64(i))
		b2 := 1 - math.Pow(beta2, float64(i))
		for j := range params {
			m[j] = beta1*m[j] + (1-beta1)*grad[j]
			v[j] = beta2*v[j] + (1-beta2)*grad[j]*grad[j]
			mHat := m[j] / b1
			vHat := v[j] / b2
			params[j] += g.weights[j] * mHat / (math.Sqrt(vHat) + adamEpsilon)
		}
	}
	return params
}

func (g GradientAscent) approximateGradient(f func([NumParams]float64) float64, params [NumParams]float64) [NumParams]float64 {
	var grad [NumParams]float64
	base := f(params)
	for i := range params {
		shifted := params
		shifted[i] += gradientApproxStep
		grad[i] = (f(shifted) - base) / gradientApproxStep
	}
	return grad
}
