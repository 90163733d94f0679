package pixel

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/hashicorp/go-multierror"
)

// SetupMode selects how a Params' group elements are derived.
type SetupMode uint8

const (
	// ModeTest derives h and hv deterministically (h = g1, hv[i] =
	// g1*(i+1)). Insecure — the discrete logs are public — and only
	// meant for reproducible test fixtures.
	ModeTest SetupMode = iota

	// ModeProduction draws h and hv uniformly at random, so their
	// discrete logs with respect to the generator are unknown to
	// everyone, including whoever ran setup.
	ModeProduction
)

func (m SetupMode) String() string {
	switch m {
	case ModeTest:
		return "test"
	case ModeProduction:
		return "production"
	default:
		return fmt.Sprintf("SetupMode(%d)", uint8(m))
	}
}

// Params are the public parameters PP shared by every key holder under a
// given depth D: the scalar field order Q, and the generators h, hv
// used throughout the subkey algebra.
type Params struct {
	D    uint32
	Mode SetupMode
	H    G1
	HV   []G1 // length D+1: h0, ..., hD
	Q    *big.Int
}

func (pp *Params) String() string {
	if pp.Mode == ModeTest {
		return fmt.Sprintf("Pixel-D%d-test", pp.D)
	}
	return fmt.Sprintf("Pixel-D%d", pp.D)
}

// Setup produces fresh public parameters for the given depth and mode.
func Setup(D uint32, mode SetupMode) (*Params, error) {
	if D < 1 {
		return nil, invalidParametersErrorf("depth must be at least 1, got %d", D)
	}

	hv := make([]G1, D+1)
	var h G1
	switch mode {
	case ModeTest:
		h = G1Generator()
		for i := range hv {
			hv[i] = G1Generator().Mul(ScalarFromUint64(uint64(i + 1)))
		}
	case ModeProduction:
		var err error
		h, err = RandomG1()
		if err != nil {
			return nil, wrapErrorf(err, "sampling h")
		}
		for i := range hv {
			hv[i], err = RandomG1()
			if err != nil {
				return nil, wrapErrorf(err, "sampling hv[%d]", i)
			}
		}
	default:
		return nil, invalidParametersErrorf("unknown setup mode %s", mode)
	}

	return &Params{D: D, Mode: mode, H: h, HV: hv, Q: fr.Modulus()}, nil
}

// Setup16, Setup20, Setup24 and Setup32 are convenience constructors for
// the depths most commonly used in practice and in this package's tests.
func Setup16(mode SetupMode) (*Params, error) { return Setup(16, mode) }
func Setup20(mode SetupMode) (*Params, error) { return Setup(20, mode) }
func Setup24(mode SetupMode) (*Params, error) { return Setup(24, mode) }
func Setup32(mode SetupMode) (*Params, error) { return Setup(32, mode) }

// Validate reports every way in which pp is malformed, rather than just
// the first: a production Params can have many independently-wrong hv
// entries, and a caller auditing a received parameter set wants to see
// all of them in one pass.
func (pp *Params) Validate() error {
	var result *multierror.Error
	if pp.D == 0 {
		result = multierror.Append(result, invalidParametersErrorf("depth is zero"))
	}
	if uint32(len(pp.HV)) != pp.D+1 {
		result = multierror.Append(result, invalidParametersErrorf(
			"hv has length %d, want %d", len(pp.HV), pp.D+1))
	}
	if pp.Q == nil || pp.Q.Sign() <= 0 {
		result = multierror.Append(result, invalidParametersErrorf("scalar field order is unset"))
	}
	if !pp.H.InSubgroup() {
		result = multierror.Append(result, invalidGroupElementErrorf("h is not in the prime-order subgroup"))
	}
	for i, e := range pp.HV {
		if !e.InSubgroup() {
			result = multierror.Append(result, invalidGroupElementErrorf("hv[%d] is not in the prime-order subgroup", i))
		}
	}
	return result.ErrorOrNil()
}
