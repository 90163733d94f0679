package pixel

import "testing"

func TestKeygenProducesWellFormedRoot(t *testing.T) {
	pp := testParams(t)
	x := ScalarFromUint64(3)
	pk, sk, err := Keygen(pp, &x)
	if err != nil {
		t.Fatal(err)
	}
	if !sk.skv[0].WellFormed(pp, pk, TimeVector{}) {
		t.Error("freshly generated root subkey should be well-formed")
	}
}

func TestUpdateTraversalOrder(t *testing.T) {
	pp := testParams(t)
	_, sk, err := Keygen(pp, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []TimeVector{
		{1}, {1, 1}, {1, 1, 1}, {1, 1, 2}, {1, 2}, {1, 2, 1}, {1, 2, 2},
		{2}, {2, 1}, {2, 1, 1}, {2, 1, 2}, {2, 2}, {2, 2, 1}, {2, 2, 2},
	}
	for i, tv := range want {
		if err := sk.Update(); err != nil {
			t.Fatalf("Update #%d: %s", i+1, err)
		}
		got := sk.TimeVector()
		if !timeVectorsEqual(got, tv) {
			t.Fatalf("after Update #%d: tv=%v, want %v", i+1, got, tv)
		}
	}

	if err := sk.Update(); err == nil {
		t.Fatal("15th update should fail with KeyExhausted")
	} else if !isErrKind(err, ErrKeyExhausted) {
		t.Fatalf("15th update failed with %s, want KeyExhausted", err)
	}
}

func TestFastUpdateMatchesStepwiseUpdate(t *testing.T) {
	pp := testParams(t)
	x := ScalarFromUint64(3)
	pk, fast, err := Keygen(pp, &x)
	if err != nil {
		t.Fatal(err)
	}
	_, slow, err := Keygen(pp, &x)
	if err != nil {
		t.Fatal(err)
	}

	targets := []TimeVector{{1, 2}, {2}, {2, 1, 2}, {2, 2}, {2, 2, 1}, {2, 2, 2}}
	for _, target := range targets {
		if err := fast.FastUpdate(target); err != nil {
			t.Fatalf("FastUpdate(%v): %s", target, err)
		}
		for !timeVectorsEqual(slow.TimeVector(), target) {
			if err := slow.Update(); err != nil {
				t.Fatalf("stepwise Update toward %v: %s", target, err)
			}
		}

		msg := ScalarMessage(ScalarFromUint64(7))
		sigFast, err := fast.Sign(msg)
		if err != nil {
			t.Fatalf("fast.Sign at %v: %s", target, err)
		}
		if !Verify(pp, pk, target, msg, sigFast) {
			t.Errorf("signature after FastUpdate(%v) does not verify", target)
		}
		sigSlow, err := slow.Sign(msg)
		if err != nil {
			t.Fatalf("slow.Sign at %v: %s", target, err)
		}
		if !Verify(pp, pk, target, msg, sigSlow) {
			t.Errorf("signature after stepwise update to %v does not verify", target)
		}
	}
}

func TestFastUpdateRejectsNonIncreasingTarget(t *testing.T) {
	pp := testParams(t)
	_, sk, err := Keygen(pp, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sk.Update(); err != nil {
		t.Fatal(err)
	}
	if err := sk.FastUpdate(TimeVector{}); err == nil {
		t.Error("fast update to a non-increasing target should fail")
	} else if !isErrKind(err, ErrInvalidTime) {
		t.Errorf("fast update to non-increasing target failed with %s, want InvalidTime", err)
	}
}

func timeVectorsEqual(a, b TimeVector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isErrKind(err error, kind Error) bool {
	impl, ok := err.(*errorImpl)
	if !ok {
		return false
	}
	target, ok := kind.(*errorImpl)
	return ok && impl.Is(target)
}
