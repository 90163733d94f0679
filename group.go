package pixel

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Scalar is an element of Z_q, the scalar field shared by G1, G2 and GT.
type Scalar struct {
	v fr.Element
}

// RandomScalar draws uniformly from {0, ..., q-1} using a cryptographically
// secure source.
func RandomScalar() (Scalar, error) {
	var s Scalar
	_, err := s.v.SetRandom()
	if err != nil {
		return Scalar{}, wrapErrorf(err, "drawing random scalar")
	}
	return s, nil
}

// RandomNonZeroScalar draws uniformly from {1, ..., q-1}.
func RandomNonZeroScalar() (Scalar, error) {
	for {
		s, err := RandomScalar()
		if err != nil {
			return Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// ScalarFromUint64 embeds a small non-negative integer into Z_q.
func ScalarFromUint64(x uint64) Scalar {
	var s Scalar
	s.v.SetUint64(x)
	return s
}

// ScalarFromBigInt reduces x modulo q.
func ScalarFromBigInt(x *big.Int) Scalar {
	var s Scalar
	s.v.SetBigInt(x)
	return s
}

func (s Scalar) IsZero() bool { return s.v.IsZero() }

// BigInt returns the canonical representative of s in [0, q).
func (s Scalar) BigInt() *big.Int {
	var out big.Int
	s.v.BigInt(&out)
	return &out
}

// zero overwrites the scalar's backing field element. Called on every
// ephemeral randomizer once the group elements it blinds are computed.
func (s *Scalar) zero() {
	s.v.SetZero()
}

// G1 is an element of the first pairing source group, represented in
// affine form. The zero value is the point at infinity (the identity).
type G1 struct {
	p bls12381.G1Affine
}

// G2 is an element of the second pairing source group, represented in
// affine form. The zero value is the point at infinity (the identity).
type G2 struct {
	p bls12381.G2Affine
}

// G1Generator returns the fixed generator of G1 shared by every Params.
func G1Generator() G1 {
	_, _, g1aff, _ := bls12381.Generators()
	return G1{p: g1aff}
}

// G2Generator returns the fixed generator of G2 shared by every Params.
func G2Generator() G2 {
	_, _, _, g2aff := bls12381.Generators()
	return G2{p: g2aff}
}

// RandomG1 draws a uniform element of G1 by scalar-multiplying the
// generator with a uniform scalar; since G1 has prime order this is
// uniform over the whole group.
func RandomG1() (G1, error) {
	s, err := RandomScalar()
	if err != nil {
		return G1{}, err
	}
	return G1Generator().Mul(s), nil
}

func (a G1) Add(b G1) G1 {
	var aj, bj bls12381.G1Jac
	aj.FromAffine(&a.p)
	bj.FromAffine(&b.p)
	aj.AddAssign(&bj)
	var res G1
	res.p.FromJacobian(&aj)
	return res
}

func (a G1) Mul(s Scalar) G1 {
	var res G1
	res.p.ScalarMultiplication(&a.p, s.BigInt())
	return res
}

func (a G1) Neg() G1 {
	var res G1
	res.p.Neg(&a.p)
	return res
}

func (a G1) IsIdentity() bool { return a.p.IsInfinity() }

// InSubgroup reports whether a lies in the prime-order subgroup (and on
// the curve at all). The verifier MUST check this before pairing.
func (a G1) InSubgroup() bool {
	return a.p.IsOnCurve() && a.p.IsInSubGroup()
}

// Bytes returns the compressed encoding of a.
func (a G1) Bytes() []byte {
	b := a.p.Bytes()
	return b[:]
}

// SetG1Bytes decodes a compressed G1 point.
func SetG1Bytes(buf []byte) (G1, error) {
	var g G1
	_, err := g.p.SetBytes(buf)
	if err != nil {
		return G1{}, invalidGroupElementErrorf("decoding G1 element: %s", err)
	}
	return g, nil
}

func (a G2) Add(b G2) G2 {
	var aj, bj bls12381.G2Jac
	aj.FromAffine(&a.p)
	bj.FromAffine(&b.p)
	aj.AddAssign(&bj)
	var res G2
	res.p.FromJacobian(&aj)
	return res
}

func (a G2) Mul(s Scalar) G2 {
	var res G2
	res.p.ScalarMultiplication(&a.p, s.BigInt())
	return res
}

func (a G2) Neg() G2 {
	var res G2
	res.p.Neg(&a.p)
	return res
}

func (a G2) IsIdentity() bool { return a.p.IsInfinity() }

func (a G2) InSubgroup() bool {
	return a.p.IsOnCurve() && a.p.IsInSubGroup()
}

// Bytes returns the compressed encoding of a.
func (a G2) Bytes() []byte {
	b := a.p.Bytes()
	return b[:]
}

// SetG2Bytes decodes a compressed G2 point.
func SetG2Bytes(buf []byte) (G2, error) {
	var g G2
	_, err := g.p.SetBytes(buf)
	if err != nil {
		return G2{}, invalidGroupElementErrorf("decoding G2 element: %s", err)
	}
	return g, nil
}

// PairingProductIsIdentity computes prod_i e(g1s[i], g2s[i]) and reports
// whether it equals 1_GT, using a single Miller loop plus final
// exponentiation over every pair. It backs both Verify and
// Subkey.WellFormed.
func PairingProductIsIdentity(g1s []G1, g2s []G2) (bool, error) {
	if len(g1s) != len(g2s) {
		return false, errorf("pairing product: mismatched vector lengths")
	}
	p := make([]bls12381.G1Affine, len(g1s))
	q := make([]bls12381.G2Affine, len(g2s))
	for i := range g1s {
		p[i] = g1s[i].p
	}
	for i := range g2s {
		q[i] = g2s[i].p
	}
	ok, err := bls12381.PairingCheck(p, q)
	if err != nil {
		return false, wrapErrorf(err, "evaluating pairing product")
	}
	return ok, nil
}
