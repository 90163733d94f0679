package pixel

// MixedVector is a vector whose first coordinate lives in G2 and whose
// remaining coordinates live in G1, the shape every subkey and signature
// in this scheme share. Representing the head and tail as distinct typed
// fields (rather than a single slice of a union type) keeps the group of
// every coordinate part of its static shape.
type MixedVector struct {
	Head G2
	Tail []G1
}

// Add returns the coordinate-wise sum of a and b. Both vectors must have
// equal tail length; a mismatch indicates a programming error in the
// caller, not a malformed input, so it is reported rather than silently
// truncated.
func (a MixedVector) Add(b MixedVector) (MixedVector, error) {
	if len(a.Tail) != len(b.Tail) {
		return MixedVector{}, errorf("mixed vector add: tail length mismatch (%d vs %d)", len(a.Tail), len(b.Tail))
	}
	tail := make([]G1, len(a.Tail))
	for i := range tail {
		tail[i] = a.Tail[i].Add(b.Tail[i])
	}
	return MixedVector{Head: a.Head.Add(b.Head), Tail: tail}, nil
}

// ScalarMul returns a scaled by s, coordinate-wise.
func (a MixedVector) ScalarMul(s Scalar) MixedVector {
	tail := make([]G1, len(a.Tail))
	for i := range tail {
		tail[i] = a.Tail[i].Mul(s)
	}
	return MixedVector{Head: a.Head.Mul(s), Tail: tail}
}

// InnerProductG1 computes sum_i points[i] * scalars[i], a G1 element.
// Both the label polynomial hw and the delegation correction term are
// instances of this all-G1 inner product; the mixed-group general form
// is never actually needed, since every basis used here is all-G1.
func InnerProductG1(points []G1, scalars []Scalar) G1 {
	var acc G1 // identity
	for i := range points {
		acc = acc.Add(points[i].Mul(scalars[i]))
	}
	return acc
}
