package value

import "math"

// Number is the tagged numeric variant carried by a NumericScalar point: it
// is either a signed 64-bit integer or an IEEE-754 double, with a one-bit
// tag distinguishing the two and no implicit coercion at this level
// (spec.md §3).
type Number struct {
	floating bool
	i        int64
	f        float64
}

// Int wraps an integral value.
func Int(v int64) Number { return Number{i: v} }

// Float wraps a floating value.
func Float(v float64) Number { return Number{floating: true, f: v} }

// IsFloat reports whether the number is tagged floating.
func (n Number) IsFloat() bool { return n.floating }

// Int64 returns the raw integral value; valid only when !IsFloat().
func (n Number) Int64() int64 { return n.i }

// Float64 returns the raw floating value; valid only when IsFloat().
func (n Number) Float64() float64 { return n.f }

// AsFloat returns n's value as a float64 regardless of its tag, the
// operation that drives integral-to-floating promotion throughout the
// pipeline.
func (n Number) AsFloat() float64 {
	if n.floating {
		return n.f
	}
	return float64(n.i)
}

// IsNaN reports whether n is a floating NaN. Integral numbers are never NaN.
func (n Number) IsNaN() bool {
	return n.floating && math.IsNaN(n.f)
}

// Promote returns n re-tagged as floating, converting an integral value
// losslessly within float64's 53-bit mantissa range. Promotion is monotonic:
// promoting an already-floating number is a no-op.
func (n Number) Promote() Number {
	if n.floating {
		return n
	}
	return Float(float64(n.i))
}

// Add returns a+b, promoting to floating if either operand is floating.
func Add(a, b Number) Number {
	if a.floating || b.floating {
		return Float(a.AsFloat() + b.AsFloat())
	}
	return Int(a.i + b.i)
}

// Max returns the larger of a and b, promoting to floating if either
// operand is floating.
func Max(a, b Number) Number {
	if a.floating || b.floating {
		if a.AsFloat() >= b.AsFloat() {
			return a.Promote()
		}
		return b.Promote()
	}
	if a.i >= b.i {
		return a
	}
	return b
}

// Min returns the smaller of a and b, promoting to floating if either
// operand is floating.
func Min(a, b Number) Number {
	if a.floating || b.floating {
		if a.AsFloat() <= b.AsFloat() {
			return a.Promote()
		}
		return b.Promote()
	}
	if a.i <= b.i {
		return a
	}
	return b
}
