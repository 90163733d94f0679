package pixel

import "testing"

func TestHashToScalarDeterministic(t *testing.T) {
	pp := testParams(t)
	msg := []byte("pixel signature scheme")

	a, err := HashToScalar(HashSHA256, msg, pp.Q)
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashToScalar(HashSHA256, msg, pp.Q)
	if err != nil {
		t.Fatal(err)
	}
	if a.BigInt().Cmp(b.BigInt()) != 0 {
		t.Error("hashing the same message twice should give the same scalar")
	}
}

func TestHashToScalarDiffersByKind(t *testing.T) {
	pp := testParams(t)
	msg := []byte("pixel signature scheme")

	sha, err := HashToScalar(HashSHA256, msg, pp.Q)
	if err != nil {
		t.Fatal(err)
	}
	shake, err := HashToScalar(HashSHAKE256, msg, pp.Q)
	if err != nil {
		t.Fatal(err)
	}
	if sha.BigInt().Cmp(shake.BigInt()) == 0 {
		t.Error("SHA-256 and SHAKE256 paths collided on the same input (probability ~0)")
	}
}

func TestHashToScalarWithinRange(t *testing.T) {
	pp := testParams(t)
	s, err := HashToScalar(HashSHA256, []byte("x"), pp.Q)
	if err != nil {
		t.Fatal(err)
	}
	if s.BigInt().Cmp(pp.Q) >= 0 {
		t.Error("hashed scalar should be reduced modulo q")
	}
}
