package pixel

import "testing"

func TestInnerProductG1Empty(t *testing.T) {
	acc := InnerProductG1(nil, nil)
	if !acc.IsIdentity() {
		t.Error("empty inner product should be the identity")
	}
}

func TestInnerProductG1MatchesRepeatedAdd(t *testing.T) {
	g := G1Generator()
	points := []G1{g, g, g}
	scalars := []Scalar{ScalarFromUint64(2), ScalarFromUint64(3), ScalarFromUint64(4)}
	got := InnerProductG1(points, scalars)
	want := g.Mul(ScalarFromUint64(9)) // 2+3+4
	if !bytesEqualG1(got, want) {
		t.Error("inner product of (g,g,g) with (2,3,4) should equal g*9")
	}
}

func TestMixedVectorAddLengthMismatch(t *testing.T) {
	a := MixedVector{Head: G2Generator(), Tail: []G1{G1Generator()}}
	b := MixedVector{Head: G2Generator(), Tail: []G1{G1Generator(), G1Generator()}}
	if _, err := a.Add(b); err == nil {
		t.Error("mismatched tail lengths should error")
	}
}

func TestMixedVectorScalarMulByZero(t *testing.T) {
	v := MixedVector{Head: G2Generator(), Tail: []G1{G1Generator(), G1Generator()}}
	zeroed := v.ScalarMul(ScalarFromUint64(0))
	if !zeroed.Head.IsIdentity() {
		t.Error("scalar-mul by zero should zero the head")
	}
	for i, p := range zeroed.Tail {
		if !p.IsIdentity() {
			t.Errorf("scalar-mul by zero should zero tail[%d]", i)
		}
	}
}
