package frame

import (
	"sort"
	"time"
)

// InterpolationMethod selects how a value between two adjacent samples is
// computed.
type InterpolationMethod int

const (
	// InterpolationStep holds the value of the preceding sample until the
	// next sample's timestamp.
	InterpolationStep InterpolationMethod = iota
	// InterpolationLinear linearly blends translation and spherically
	// blends rotation between the two bracketing samples.
	InterpolationLinear
)

// ExtrapolationMethod selects how a query before the first sample or after
// the last sample is resolved.
type ExtrapolationMethod int

const (
	// ExtrapolationConstant clamps to the nearest boundary sample.
	ExtrapolationConstant ExtrapolationMethod = iota
	// ExtrapolationLinear extends the trend of the two boundary samples,
	// allowing the interpolation factor to fall outside [0,1].
	ExtrapolationLinear
)

func (m InterpolationMethod) String() string {
	switch m {
	case InterpolationStep:
		return "step"
	case InterpolationLinear:
		return "linear"
	default:
		return "unknown"
	}
}

func (m ExtrapolationMethod) String() string {
	switch m {
	case ExtrapolationConstant:
		return "constant"
	case ExtrapolationLinear:
		return "linear"
	default:
		return "unknown"
	}
}

func sortedAscending(samples []TimedTransform) bool {
	for i := 1; i < len(samples); i++ {
		if !samples[i-1].Timestamp.Before(samples[i].Timestamp) {
			return false
		}
	}
	return true
}

// alphaBetween computes the fractional position of t between lo and hi in
// nanosecond precision; lo and hi need not bracket t (extrapolation yields
// alpha outside [0,1]).
func alphaBetween(lo, hi, t time.Time) float64 {
	span := hi.Sub(lo)
	if span <= 0 {
		return 0
	}
	return float64(t.Sub(lo)) / float64(span)
}

func blendTransform(a, b Transform, alpha float64) Transform {
	return Transform{
		Translation: a.Translation.Mul(1 - alpha).Add(b.Translation.Mul(alpha)),
		Rotation:    Slerp(a.Rotation, b.Rotation, alpha),
	}
}

// interpolate resolves the transform sequence samples at t, honoring the
// given interpolation/extrapolation methods. samples must be non-empty and
// sorted ascending by timestamp with unique timestamps; violating this is a
// programmer error in the caller (both TransformEdge and ReferenceFrames
// normalize their sample sequences on construction).
func interpolate(samples []TimedTransform, t time.Time, interp InterpolationMethod, extrap ExtrapolationMethod) (Transform, error) {
	if len(samples) == 0 {
		return Transform{}, ErrNoTransforms
	}
	if len(samples) == 1 {
		return samples[0].Transform, nil
	}

	first, last := samples[0], samples[len(samples)-1]
	if t.Before(first.Timestamp) {
		return extrapolate(first, samples[1], t, extrap), nil
	}
	if t.After(last.Timestamp) {
		return extrapolate(samples[len(samples)-2], last, t, extrap), nil
	}

	idx := sort.Search(len(samples), func(i int) bool {
		return samples[i].Timestamp.After(t)
	}) - 1
	if idx < 0 {
		idx = 0
	}
	if samples[idx].Timestamp.Equal(t) || idx == len(samples)-1 {
		return samples[idx].Transform, nil
	}

	switch interp {
	case InterpolationStep:
		return samples[idx].Transform, nil
	case InterpolationLinear:
		lo, hi := samples[idx], samples[idx+1]
		return blendTransform(lo.Transform, hi.Transform, alphaBetween(lo.Timestamp, hi.Timestamp, t)), nil
	default:
		return samples[idx].Transform, nil
	}
}

// extrapolate resolves a query outside the sample range using the two
// boundary samples nearest the query (lo,hi are oriented consistently: lo
// before hi, both inside the sample range, and t outside it).
func extrapolate(lo, hi TimedTransform, t time.Time, method ExtrapolationMethod) Transform {
	switch method {
	case ExtrapolationConstant:
		if t.Before(lo.Timestamp) {
			return lo.Transform
		}
		return hi.Transform
	case ExtrapolationLinear:
		return blendTransform(lo.Transform, hi.Transform, alphaBetween(lo.Timestamp, hi.Timestamp, t))
	default:
		if t.Before(lo.Timestamp) {
			return lo.Transform
		}
		return hi.Transform
	}
}
