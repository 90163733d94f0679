package pixel

// Subkey is tsk_w for some node w of length Depth: a G2 witness A and a
// G1 body of length D-Depth+1, Body[0] being the signing coordinate b
// and Body[1:] being the tail c_{Depth+1}, ..., c_D. Storing Depth
// alongside the body (rather than inferring it from context) lets every
// primitive below check its own length arithmetic instead of trusting
// the caller.
type Subkey struct {
	Depth uint32
	A     G2
	Body  []G1
}

// hwScalars evaluates the label polynomial h0 * prod_j hv[j+1]^coeffs[j]
// for an arbitrary coefficient vector. HW is the {1,2}-symbol
// specialization used for actual tree nodes; sign uses this general form
// directly, since tmv(tv, M) mixes tree symbols with zero padding and an
// arbitrary message scalar.
func hwScalars(pp *Params, coeffs []Scalar) G1 {
	acc := pp.HV[0]
	if len(coeffs) == 0 {
		return acc
	}
	return acc.Add(InnerProductG1(pp.HV[1:len(coeffs)+1], coeffs))
}

// HW evaluates the label polynomial hw(w) for a tree node w.
func HW(pp *Params, w TimeVector) G1 {
	return hwScalars(pp, scalarsFromTimeVector(w))
}

// delegateScalars implements delegate's algebra for an arbitrary
// coefficient suffix: coeffs need not be {1,2} tree symbols, e.g. the
// zero-padding and message scalar used by sign.
func delegateScalars(tsk *Subkey, coeffs []Scalar) (*Subkey, error) {
	m := len(coeffs)
	if m > len(tsk.Body)-1 {
		return nil, errorf("delegate: suffix of length %d exceeds remaining tail of length %d", m, len(tsk.Body)-1)
	}
	corr := InnerProductG1(tsk.Body[1:m+1], coeffs)
	body := make([]G1, len(tsk.Body)-m)
	body[0] = tsk.Body[0].Add(corr)
	copy(body[1:], tsk.Body[m+1:])
	return &Subkey{Depth: tsk.Depth + uint32(m), A: tsk.A, Body: body}, nil
}

// Delegate extends w (the node tsk is a subkey for) by suffix without
// adding fresh randomness. w is only used to check tsk's depth matches
// its stated node label; the algebra itself only touches tsk and suffix.
func Delegate(tsk *Subkey, w, suffix TimeVector) (*Subkey, error) {
	if int(tsk.Depth) != len(w) {
		return nil, errorf("delegate: node label length %d does not match subkey depth %d", len(w), tsk.Depth)
	}
	return delegateScalars(tsk, scalarsFromTimeVector(suffix))
}

// randomizeScalars re-randomizes tsk, whose node label is given directly
// as a coefficient vector (see hwScalars). Used by both Randomize (tree
// nodes) and Sign (the generalized tmv label).
func randomizeScalars(pp *Params, tsk *Subkey, coeffs []Scalar, r *Scalar) (*Subkey, error) {
	if len(coeffs) != int(tsk.Depth) {
		return nil, errorf("randomize: label length %d does not match subkey depth %d", len(coeffs), tsk.Depth)
	}
	var rr Scalar
	if r != nil {
		rr = *r
	} else {
		var err error
		rr, err = RandomNonZeroScalar()
		if err != nil {
			return nil, wrapErrorf(err, "drawing randomizer")
		}
	}

	corrTail := make([]G1, len(tsk.Body))
	corrTail[0] = hwScalars(pp, coeffs)
	copy(corrTail[1:], pp.HV[tsk.Depth+1:tsk.Depth+uint32(len(tsk.Body))])
	corr := MixedVector{Head: G2Generator(), Tail: corrTail}.ScalarMul(rr)
	rr.zero()

	sum, err := (MixedVector{Head: tsk.A, Tail: tsk.Body}).Add(corr)
	if err != nil {
		return nil, wrapErrorf(err, "randomize: combining witness with correction")
	}
	return &Subkey{Depth: tsk.Depth, A: sum.Head, Body: sum.Tail}, nil
}

// Randomize returns a fresh subkey for the same node w with re-
// randomized witness. If r is nil, a fresh randomizer is drawn
// uniformly from {1, ..., q-1}. Never mutates tsk.
func Randomize(pp *Params, tsk *Subkey, w TimeVector, r *Scalar) (*Subkey, error) {
	if int(tsk.Depth) != len(w) {
		return nil, errorf("randomize: node label length %d does not match subkey depth %d", len(w), tsk.Depth)
	}
	return randomizeScalars(pp, tsk, scalarsFromTimeVector(w), r)
}

// WellFormed checks e(skv[i][1], g2) = e(h, PK) * e(hw(w), skv[i][0])
// without using x or r, so a subkey slot can be validated independently
// of sign/verify.
func (s *Subkey) WellFormed(pp *Params, pk *PublicKey, w TimeVector) bool {
	if int(s.Depth) != len(w) {
		return false
	}
	ok, err := PairingProductIsIdentity(
		[]G1{s.Body[0], pp.H, HW(pp, w)},
		[]G2{G2Generator().Neg(), pk.PK, s.A},
	)
	return err == nil && ok
}

// erase overwrites s's coordinates in place. Called on every subkey slot
// that is superseded or cleared; forward secrecy depends entirely on
// this actually happening at every such point, not on any property of
// sign or verify.
func (s *Subkey) erase() {
	if s == nil {
		return
	}
	s.A = G2{}
	for i := range s.Body {
		s.Body[i] = G1{}
	}
	s.Depth = 0
	s.Body = nil
}
