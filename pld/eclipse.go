package pld

import "math"

// EclipseParams describes a trapezoid-like secondary eclipse: a uniform
// occultation with linear-in-time ingress and egress ramps of the occulting
// disk radius.
type EclipseParams struct {
	Midpoint float64 // phase of mid-eclipse
	Width    float64 // first to fourth contact
	Depth    float64 // fractional flux deficit at full occultation
	T12      float64 // ingress duration
	T34      float64 // egress duration
	FluxNorm float64 // system flux scale applied by the composite model
}

// Eclipse returns the normalized eclipse light curve evaluated at each phase
// value in t. Out-of-eclipse flux is 1 and the floor of the eclipse is
// 1 - Depth. A negative Depth produces an inverted (brightening) event, which
// lets a fitter wander through zero without a discontinuity.
func Eclipse(t []float64, ep EclipseParams) []float64 {
	y := make([]float64, len(t))
	if ep.Depth == 0 {
		for i := range y {
			y[i] = 1
		}
		return y
	}

	// Contact points. Ingress/egress durations longer than half the event
	// are truncated at mid-eclipse.
	t1 := ep.Midpoint - ep.Width/2
	t2 := ep.Midpoint
	if t1+ep.T12 < ep.Midpoint {
		t2 = t1 + ep.T12
	}
	t4 := ep.Midpoint + ep.Width/2
	t3 := ep.Midpoint
	if t4-ep.T34 > ep.Midpoint {
		t3 = t4 - ep.T34
	}

	sign := 1.0
	if ep.Depth < 0 {
		sign = -1.0
	}
	p := sign * math.Sqrt(math.Abs(ep.Depth))

	for i, ti := range t {
		switch {
		case ti >= t2 && ti <= t3:
			y[i] = 1 - ep.Depth
		case ti >= t1 && ti <= t2:
			z := -2*p*(ti-t1)/ep.T12 + 1 + p
			y[i] = occultFlux(p, z, sign)
		case ti > t3 && ti < t4:
			z := 2*p*(ti-t3)/ep.T34 + 1 - p
			y[i] = occultFlux(p, z, sign)
		default:
			y[i] = 1
		}
	}
	return y
}

// occultFlux gives the flux from a uniform source partially occulted by a
// disk of radius ratio p at center-to-center separation z (Mandel & Agol).
// Near the contact points roundoff can push the arccos and sqrt arguments
// slightly outside their domains, so they are clamped instead of going NaN.
func occultFlux(p, z, sign float64) float64 {
	k0 := math.Acos(clampUnit((p*p + z*z - 1) / (2 * p * z)))
	k1 := math.Acos(clampUnit((1 - p*p + z*z) / (2 * z)))
	s := (4*z*z - square(1+z*z-p*p)) / 4
	if s < 0 {
		s = 0
	}
	return 1 - sign/math.Pi*(p*p*k0+k1-math.Sqrt(s))
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func square(v float64) float64 { return v * v }
