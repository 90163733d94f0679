package pixel

import "testing"

func testParams(t *testing.T) *Params {
	t.Helper()
	pp, err := Setup(4, ModeTest)
	if err != nil {
		t.Fatalf("Setup: %s", err)
	}
	return pp
}

func rootBase(pp *Params, x Scalar) *Subkey {
	base := &Subkey{Depth: 0, A: G2{}, Body: make([]G1, pp.D+1)}
	base.Body[0] = pp.H.Mul(x)
	return base
}

func TestDelegationComposition(t *testing.T) {
	pp := testParams(t)
	root := rootBase(pp, ScalarFromUint64(3))

	direct, err := Delegate(root, TimeVector{}, TimeVector{1, 1})
	if err != nil {
		t.Fatalf("Delegate(root, [], [1,1]): %s", err)
	}

	step1, err := Delegate(root, TimeVector{}, TimeVector{1})
	if err != nil {
		t.Fatalf("Delegate(root, [], [1]): %s", err)
	}
	stepwise, err := Delegate(step1, TimeVector{1}, TimeVector{1})
	if err != nil {
		t.Fatalf("Delegate(step1, [1], [1]): %s", err)
	}

	if direct.Depth != stepwise.Depth {
		t.Fatalf("depth mismatch: %d vs %d", direct.Depth, stepwise.Depth)
	}
	if !bytesEqualG1(direct.Body[0], stepwise.Body[0]) {
		t.Error("delegate(delegate(tsk,w,u),w||u,v) != delegate(tsk,w,u||v)")
	}
}

func TestRandomizeIdentityWithZeroWitness(t *testing.T) {
	pp := testParams(t)
	root := rootBase(pp, ScalarFromUint64(3))
	zero := ScalarFromUint64(0)
	got, err := Randomize(pp, root, TimeVector{}, &zero)
	if err != nil {
		t.Fatal(err)
	}
	if !bytesEqualG1(got.Body[0], root.Body[0]) {
		t.Error("randomize(tsk, w, 0) should leave the subkey unchanged")
	}
	if got.A != root.A {
		t.Error("randomize(tsk, w, 0) should leave A unchanged")
	}
}

func TestRandomizeFreshness(t *testing.T) {
	pp := testParams(t)
	root := rootBase(pp, ScalarFromUint64(3))
	a, err := Randomize(pp, root, TimeVector{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Randomize(pp, root, TimeVector{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytesEqualG1(a.Body[0], b.Body[0]) {
		t.Error("two independent randomizations collided (probability ~0)")
	}
}

func TestSubkeyWellFormed(t *testing.T) {
	pp := testParams(t)
	x := ScalarFromUint64(3)
	pk := &PublicKey{PK: G2Generator().Mul(x)}
	root := rootBase(pp, x)
	randomized, err := Randomize(pp, root, TimeVector{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !randomized.WellFormed(pp, pk, TimeVector{}) {
		t.Error("freshly randomized root subkey should be well-formed")
	}

	left, err := Delegate(randomized, TimeVector{}, TimeVector{1})
	if err != nil {
		t.Fatal(err)
	}
	if !left.WellFormed(pp, pk, TimeVector{1}) {
		t.Error("delegated subkey should be well-formed")
	}
}
