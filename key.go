package pixel

import "sync"

// PublicKey is PK = g2^x.
type PublicKey struct {
	PK G2
}

// SecretKey is the pair (tv, skv): the current time vector and the
// sequence of subkeys that makes up the scheme's forward-secure state.
// skv[0] is the current signing subkey; skv[i] for i >= 1 is either nil
// (no pending right-sibling subkey at that depth) or the subkey that
// lets the holder jump into the right-sibling subtree at depth i.
//
// A SecretKey is a single-threaded, exclusively-owned mutable resource:
// every exported method takes mu, but that only serializes concurrent
// calls against each other; it does not make concurrent use of the same
// key meaningful; callers still must not race an Update against a Sign
// they expect to observe the prior tv.
type SecretKey struct {
	mu  sync.Mutex
	pp  *Params
	tv  TimeVector
	skv []*Subkey
}

// Keygen draws a fresh master secret x (or uses the one supplied) and
// derives (PK, SK). The working copy of x is zeroed once PK and the
// root subkey's h^x coordinate are derived from it; a caller-supplied x
// is copied and left unchanged.
func Keygen(pp *Params, x *Scalar) (*PublicKey, *SecretKey, error) {
	var xx Scalar
	if x != nil {
		xx = *x
	} else {
		var err error
		xx, err = RandomScalar()
		if err != nil {
			return nil, nil, wrapErrorf(err, "drawing master secret")
		}
	}

	pk := &PublicKey{PK: G2Generator().Mul(xx)}

	base := &Subkey{Depth: 0, A: G2{}, Body: make([]G1, pp.D+1)}
	base.Body[0] = pp.H.Mul(xx)
	xx.zero()

	root, err := Randomize(pp, base, TimeVector{}, nil)
	if err != nil {
		return nil, nil, wrapErrorf(err, "randomizing root subkey")
	}
	base.erase()

	skv := make([]*Subkey, pp.D)
	skv[0] = root

	sk := &SecretKey{pp: pp, tv: TimeVector{}, skv: skv}
	return pk, sk, nil
}

// TimeVector returns the current time vector. The returned slice is a
// copy; mutating it does not affect sk.
func (sk *SecretKey) TimeVector() TimeVector {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	return cloneTimeVector(sk.tv)
}

// Update advances sk to the next time period in traversal order.
// Returns ErrKeyExhausted once all 2^D-2 legal updates from genesis
// have been consumed.
func (sk *SecretKey) Update() error {
	sk.mu.Lock()
	defer sk.mu.Unlock()

	D := sk.pp.D
	if uint32(len(sk.tv)) < D-1 {
		return sk.updateInternal()
	}
	return sk.updateLeaf()
}

// updateInternal handles the case |tv| < D-1: tv has at least one
// untaken child, so the next period is tv||[1].
func (sk *SecretKey) updateInternal() error {
	left, err := Delegate(sk.skv[0], sk.tv, TimeVector{1})
	if err != nil {
		return wrapErrorf(err, "delegating left child")
	}

	newTv := append(cloneTimeVector(sk.tv), 2)
	rightDelegated, err := Delegate(sk.skv[0], sk.tv, TimeVector{2})
	if err != nil {
		return wrapErrorf(err, "delegating right sibling")
	}
	right, err := Randomize(sk.pp, rightDelegated, newTv, nil)
	if err != nil {
		return wrapErrorf(err, "randomizing right sibling")
	}

	idx := len(sk.tv) + 1
	sk.skv[0].erase()
	sk.skv[0] = left
	sk.skv[idx].erase()
	sk.skv[idx] = right
	sk.tv = append(cloneTimeVector(sk.tv), 1)
	return nil
}

// updateLeaf handles the case |tv| == D-1: advance by finding the last
// "1" on the path and turning it into a "2", reusing the subkey that was
// waiting for exactly this transition.
func (sk *SecretKey) updateLeaf() error {
	l := -1
	for i := len(sk.tv) - 1; i >= 0; i-- {
		if sk.tv[i] == 1 {
			l = i
			break
		}
	}
	if l == -1 {
		log.Logf("pixel: key exhausted at tv=%v", sk.tv)
		return keyExhaustedErrorf("no further time periods after %v", sk.tv)
	}

	rightSibling := sk.skv[l+1]
	oldCurrent := sk.skv[0]

	// rightSibling's ownership transfers into skv[0]; it is not erased.
	sk.skv[0] = rightSibling
	sk.skv[l+1] = nil

	for j := l + 2; j < int(sk.pp.D); j++ {
		sk.skv[j].erase()
		sk.skv[j] = nil
	}
	oldCurrent.erase()

	newTv := cloneTimeVector(sk.tv[:l+1])
	newTv[l] = 2
	sk.tv = newTv
	return nil
}

// FastUpdate skips forward from the current time to tvNew directly,
// without replaying every intermediate keyupdate. tvNew must strictly
// exceed the current time vector in traversal order.
func (sk *SecretKey) FastUpdate(tvNew TimeVector) error {
	sk.mu.Lock()
	defer sk.mu.Unlock()

	if !Less(sk.tv, tvNew) {
		return invalidTimeErrorf("fast update target %v does not strictly exceed current time %v", tvNew, sk.tv)
	}
	if uint32(len(tvNew)) > sk.pp.D-1 {
		return invalidTimeErrorf("fast update target %v exceeds scheme depth", tvNew)
	}

	tv := sk.tv
	split := 0
	for split < len(tv) && split < len(tvNew) && tv[split] == tvNew[split] {
		split++
	}

	var tskf *Subkey
	var prefix TimeVector
	if split == len(tv) {
		tskf = sk.skv[0]
		prefix = cloneTimeVector(tv)
		split--
	} else {
		if tv[split] != 1 || tvNew[split] != 2 {
			return invalidTimeErrorf("illegal fast update transition at depth %d", split)
		}
		tskf = sk.skv[split+1]
		prefix = cloneTimeVector(tvNew[:split+1])
		sk.skv[split+1] = nil // ownership transfers into tskf; not erased here
	}

	suffix := tvNew[len(prefix):]
	delegated, err := Delegate(tskf, prefix, suffix)
	if err != nil {
		return wrapErrorf(err, "delegating fast update target")
	}
	// Re-randomization of the fast-forwarded subkey is optional for
	// correctness but always performed here, conservatively, so a fast
	// update never leaves behind a less-fresh witness than a stepwise one.
	fresh, err := Randomize(sk.pp, delegated, tvNew, nil)
	if err != nil {
		return wrapErrorf(err, "randomizing fast update target")
	}
	delegated.erase()

	// tskf is still needed below to delegate every sibling witness
	// along the new path; oldCurrent (which may be the very same
	// object as tskf, when the fast update stays under the current
	// node) is only erased once the loop is done with it.
	oldCurrent := sk.skv[0]
	sk.skv[0] = fresh

	for j := split + 1; j < len(tvNew); j++ {
		switch tvNew[j] {
		case 2:
			sk.skv[j+1].erase()
			sk.skv[j+1] = nil
		case 1:
			siblingSuffix := append(cloneTimeVector(tvNew[len(prefix):j]), 2)
			tmp, err := Delegate(tskf, prefix, siblingSuffix)
			if err != nil {
				return wrapErrorf(err, "delegating sibling witness at depth %d", j)
			}
			siblingLabel := append(cloneTimeVector(tvNew[:j]), 2)
			randomized, err := Randomize(sk.pp, tmp, siblingLabel, nil)
			if err != nil {
				return wrapErrorf(err, "randomizing sibling witness at depth %d", j)
			}
			tmp.erase()
			sk.skv[j+1].erase()
			sk.skv[j+1] = randomized
		default:
			return invalidTimeErrorf("time vector element %d out of range", tvNew[j])
		}
	}
	for j := len(tvNew); j < int(sk.pp.D)-1; j++ {
		sk.skv[j+1].erase()
		sk.skv[j+1] = nil
	}

	if tskf != oldCurrent {
		tskf.erase()
	}
	oldCurrent.erase()

	sk.tv = cloneTimeVector(tvNew)
	return nil
}
