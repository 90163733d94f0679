package pixel

import "github.com/hashicorp/go-multierror"

// Message is either a scalar already in Z_q or a raw byte string to be
// hashed to one at sign/verify time.
type Message struct {
	isScalar bool
	scalar   Scalar
	bytes    []byte
}

// ScalarMessage wraps a scalar already reduced mod q.
func ScalarMessage(s Scalar) Message {
	return Message{isScalar: true, scalar: s}
}

// BytesMessage wraps a byte string; sign and verify hash it to a scalar
// with HashSHA256 before using it.
func BytesMessage(b []byte) Message {
	return Message{bytes: b}
}

func (m Message) resolve(q *Params) (Scalar, error) {
	if m.isScalar {
		return m.scalar, nil
	}
	return HashToScalar(HashSHA256, m.bytes, q.Q)
}

// Signature is (sigma0, sigma1) = (g2^r, h^x * hw(tmv(tv,M))^r).
type Signature struct {
	Sigma0 G2
	Sigma1 G1
}

// Sign produces a signature on msg under sk's current time period.
func (sk *SecretKey) Sign(msg Message) (*Signature, error) {
	sk.mu.Lock()
	defer sk.mu.Unlock()

	pp := sk.pp
	mScalar, err := msg.resolve(pp)
	if err != nil {
		return nil, wrapErrorf(err, "resolving message to scalar")
	}

	tv := sk.tv
	padLen := int(pp.D) - len(tv) - 1
	if padLen < 0 {
		return nil, errorf("sign: current time vector exceeds scheme depth")
	}

	coeffs := make([]Scalar, padLen+1)
	coeffs[padLen] = mScalar

	delegated, err := delegateScalars(sk.skv[0], coeffs)
	if err != nil {
		return nil, wrapErrorf(err, "delegating to signing label")
	}

	tmvCoeffs := append(scalarsFromTimeVector(tv), coeffs...)
	sigma, err := randomizeScalars(pp, delegated, tmvCoeffs, nil)
	if err != nil {
		return nil, wrapErrorf(err, "randomizing signature")
	}
	delegated.erase()

	sig := &Signature{Sigma0: sigma.A, Sigma1: sigma.Body[0]}
	sigma.erase()
	return sig, nil
}

// Verify reports whether sig is a valid signature on msg under pk at
// time period tv. It performs the subgroup-membership checks on sig's
// coordinates before evaluating the pairing equation, as required.
func Verify(pp *Params, pk *PublicKey, tv TimeVector, msg Message, sig *Signature) bool {
	if !sig.Sigma0.InSubgroup() || !sig.Sigma1.InSubgroup() {
		return false
	}
	mScalar, err := msg.resolve(pp)
	if err != nil {
		return false
	}

	padLen := int(pp.D) - len(tv) - 1
	if padLen < 0 {
		return false
	}
	coeffs := make([]Scalar, 0, int(pp.D))
	coeffs = append(coeffs, scalarsFromTimeVector(tv)...)
	coeffs = append(coeffs, make([]Scalar, padLen)...)
	coeffs = append(coeffs, mScalar)

	hw := hwScalars(pp, coeffs)
	ok, err := PairingProductIsIdentity(
		[]G1{sig.Sigma1, pp.H, hw},
		[]G2{G2Generator().Neg(), pk.PK, sig.Sigma0},
	)
	return err == nil && ok
}

// VerifyItem is one tuple to check in VerifyBatch.
type VerifyItem struct {
	Label string
	PK    *PublicKey
	TV    TimeVector
	Msg   Message
	Sig   *Signature
}

// VerifyBatch checks every item independently and reports every failure
// rather than stopping at the first: useful for exercising the list of
// testable properties over a key's whole history in one pass.
func VerifyBatch(pp *Params, items []VerifyItem) []error {
	var result *multierror.Error
	for _, item := range items {
		if !Verify(pp, item.PK, item.TV, item.Msg, item.Sig) {
			label := item.Label
			if label == "" {
				label = "(unlabeled)"
			}
			result = multierror.Append(result, errorf("verification failed for %s", label))
		}
	}
	if result == nil {
		return nil
	}
	return result.Errors
}
