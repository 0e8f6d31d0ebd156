package stats

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Average, minimum and maximum of a series
type Summary struct {
	Count   int
	Average float64
	Min     float64
	Max     float64
}

// Empty series yields a zero summary with Count 0
func Summarize[T Number](values []T) (out Summary) {
	if len(values) == 0 {
		return
	}

	out.Count = len(values)
	out.Min = float64(values[0])
	out.Max = float64(values[0])

	for _, v := range values {
		f := float64(v)
		if f < out.Min {
			out.Min = f
		}
		if f > out.Max {
			out.Max = f
		}
	}
	out.Average = float64(Sum(values)) / float64(len(values))
	return
}

func (self Summary) IsEmpty() bool {
	return self.Count == 0
}

func Sum[T Number](values []T) (out T) {
	for _, v := range values {
		out += v
	}
	return
}

// Division returning 0 when the divisor is 0
func Ratio[A, B Number](a A, b B) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
