package pixel

import (
	"encoding/binary"
	"io"

	"github.com/bwesterb/byteswriter"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Byte (de)serialization of Params/PublicKey/SecretKey/Signature,
// composed from the constituent group-element encodings gnark-crypto
// already provides plus a short encoding of the time vector. This is
// explicitly not a persistence format: it defines no file layout,
// locking, or versioning, just a byte array a caller may choose to
// store however it likes.

const (
	g1Size = 48 // SizeOfG1AffineCompressed
	g2Size = 96 // SizeOfG2AffineCompressed
)

// MarshalBinary encodes pp as D (4 bytes, big endian), mode (1 byte), h,
// then hv[0..D].
func (pp *Params) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 4+1+g1Size*(len(pp.HV)+1))
	w := byteswriter.NewWriter(buf)
	if err := binary.Write(w, binary.BigEndian, pp.D); err != nil {
		return nil, wrapErrorf(err, "writing depth")
	}
	if err := binary.Write(w, binary.BigEndian, uint8(pp.Mode)); err != nil {
		return nil, wrapErrorf(err, "writing mode")
	}
	if _, err := w.Write(pp.H.Bytes()); err != nil {
		return nil, wrapErrorf(err, "writing h")
	}
	for i, e := range pp.HV {
		if _, err := w.Write(e.Bytes()); err != nil {
			return nil, wrapErrorf(err, "writing hv[%d]", i)
		}
	}
	return buf, nil
}

// UnmarshalParams decodes a Params previously produced by MarshalBinary.
func UnmarshalParams(buf []byte) (*Params, error) {
	if len(buf) < 5 {
		return nil, invalidParametersErrorf("truncated params encoding")
	}
	D := binary.BigEndian.Uint32(buf[0:4])
	mode := SetupMode(buf[4])
	off := 5

	want := off + g1Size*(int(D)+2)
	if len(buf) != want {
		return nil, invalidParametersErrorf("params encoding has length %d, want %d", len(buf), want)
	}

	h, err := SetG1Bytes(buf[off : off+g1Size])
	if err != nil {
		return nil, wrapErrorf(err, "decoding h")
	}
	off += g1Size

	hv := make([]G1, D+1)
	for i := range hv {
		hv[i], err = SetG1Bytes(buf[off : off+g1Size])
		if err != nil {
			return nil, wrapErrorf(err, "decoding hv[%d]", i)
		}
		off += g1Size
	}

	return &Params{D: D, Mode: mode, H: h, HV: hv, Q: fr.Modulus()}, nil
}

// MarshalBinary encodes pk as its single G2 element.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.PK.Bytes(), nil
}

// UnmarshalPublicKey decodes a PublicKey previously produced by
// MarshalBinary.
func UnmarshalPublicKey(buf []byte) (*PublicKey, error) {
	if len(buf) != g2Size {
		return nil, invalidParametersErrorf("public key encoding has length %d, want %d", len(buf), g2Size)
	}
	pk, err := SetG2Bytes(buf)
	if err != nil {
		return nil, wrapErrorf(err, "decoding public key")
	}
	return &PublicKey{PK: pk}, nil
}

// MarshalBinary encodes sig as sigma0 (G2) followed by sigma1 (G1).
func (sig *Signature) MarshalBinary() ([]byte, error) {
	buf := make([]byte, g2Size+g1Size)
	w := byteswriter.NewWriter(buf)
	if _, err := w.Write(sig.Sigma0.Bytes()); err != nil {
		return nil, wrapErrorf(err, "writing sigma0")
	}
	if _, err := w.Write(sig.Sigma1.Bytes()); err != nil {
		return nil, wrapErrorf(err, "writing sigma1")
	}
	return buf, nil
}

// UnmarshalSignature decodes a Signature previously produced by
// MarshalBinary.
func UnmarshalSignature(buf []byte) (*Signature, error) {
	if len(buf) != g2Size+g1Size {
		return nil, invalidParametersErrorf("signature encoding has length %d, want %d", len(buf), g2Size+g1Size)
	}
	sigma0, err := SetG2Bytes(buf[:g2Size])
	if err != nil {
		return nil, wrapErrorf(err, "decoding sigma0")
	}
	sigma1, err := SetG1Bytes(buf[g2Size:])
	if err != nil {
		return nil, wrapErrorf(err, "decoding sigma1")
	}
	return &Signature{Sigma0: sigma0, Sigma1: sigma1}, nil
}

// marshalSubkey encodes tsk as Depth (4 bytes), A (G2), then Body's
// length (4 bytes) followed by Body's elements.
func marshalSubkey(w io.Writer, tsk *Subkey) error {
	if err := binary.Write(w, binary.BigEndian, tsk.Depth); err != nil {
		return wrapErrorf(err, "writing subkey depth")
	}
	if _, err := w.Write(tsk.A.Bytes()); err != nil {
		return wrapErrorf(err, "writing subkey A")
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(tsk.Body))); err != nil {
		return wrapErrorf(err, "writing subkey body length")
	}
	for i, e := range tsk.Body {
		if _, err := w.Write(e.Bytes()); err != nil {
			return wrapErrorf(err, "writing subkey body[%d]", i)
		}
	}
	return nil
}

func subkeySize(bodyLen int) int {
	return 4 + g2Size + 4 + g1Size*bodyLen
}

// unmarshalSubkey decodes a subkey previously written by marshalSubkey,
// returning the number of bytes consumed.
func unmarshalSubkey(buf []byte) (*Subkey, int, error) {
	if len(buf) < 4+g2Size+4 {
		return nil, 0, invalidParametersErrorf("truncated subkey encoding")
	}
	depth := binary.BigEndian.Uint32(buf[0:4])
	off := 4
	a, err := SetG2Bytes(buf[off : off+g2Size])
	if err != nil {
		return nil, 0, wrapErrorf(err, "decoding subkey A")
	}
	off += g2Size
	bodyLen := int(binary.BigEndian.Uint32(buf[off : off+4]))
	off += 4

	if len(buf) < off+g1Size*bodyLen {
		return nil, 0, invalidParametersErrorf("truncated subkey body")
	}
	body := make([]G1, bodyLen)
	for i := range body {
		body[i], err = SetG1Bytes(buf[off : off+g1Size])
		if err != nil {
			return nil, 0, wrapErrorf(err, "decoding subkey body[%d]", i)
		}
		off += g1Size
	}
	return &Subkey{Depth: depth, A: a, Body: body}, off, nil
}

// MarshalBinary encodes sk as tv, followed by D presence-tagged slots:
// each slot is a single byte (0 absent, 1 present) followed, when
// present, by the slot's subkey encoding. This composes the same
// transfer-ownership-vs-erase semantics key.go maintains in memory:
// the wire form simply mirrors whichever slots are currently populated.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	sk.mu.Lock()
	defer sk.mu.Unlock()

	tvBuf := MarshalTimeVector(sk.tv)
	size := len(tvBuf)
	for _, s := range sk.skv {
		size++
		if s != nil {
			size += subkeySize(len(s.Body))
		}
	}

	buf := make([]byte, size)
	off := copy(buf, tvBuf)
	for i, s := range sk.skv {
		if s == nil {
			buf[off] = 0
			off++
			continue
		}
		buf[off] = 1
		off++
		w := byteswriter.NewWriter(buf[off : off+subkeySize(len(s.Body))])
		if err := marshalSubkey(w, s); err != nil {
			return nil, wrapErrorf(err, "writing skv[%d]", i)
		}
		off += subkeySize(len(s.Body))
	}
	return buf, nil
}

// UnmarshalSecretKey decodes a SecretKey previously produced by
// MarshalBinary. pp must be the same Params the key was created under;
// it fixes the number of skv slots and is not itself re-derived from
// the encoding.
func UnmarshalSecretKey(pp *Params, buf []byte) (*SecretKey, error) {
	tv, n, err := UnmarshalTimeVector(buf)
	if err != nil {
		return nil, wrapErrorf(err, "decoding time vector")
	}
	off := n

	skv := make([]*Subkey, pp.D)
	for i := range skv {
		if off >= len(buf) {
			return nil, invalidParametersErrorf("truncated secret key encoding")
		}
		present := buf[off]
		off++
		if present == 0 {
			continue
		}
		s, consumed, err := unmarshalSubkey(buf[off:])
		if err != nil {
			return nil, wrapErrorf(err, "decoding skv[%d]", i)
		}
		skv[i] = s
		off += consumed
	}
	if off != len(buf) {
		return nil, invalidParametersErrorf("secret key encoding has %d trailing bytes", len(buf)-off)
	}

	return &SecretKey{pp: pp, tv: tv, skv: skv}, nil
}

// MarshalTimeVector encodes tv as a one-byte length followed by its
// symbols.
func MarshalTimeVector(tv TimeVector) []byte {
	buf := make([]byte, 1+len(tv))
	buf[0] = byte(len(tv))
	copy(buf[1:], tv)
	return buf
}

// UnmarshalTimeVector decodes a TimeVector previously produced by
// MarshalTimeVector, returning the number of bytes consumed.
func UnmarshalTimeVector(buf []byte) (TimeVector, int, error) {
	if len(buf) < 1 {
		return nil, 0, invalidTimeErrorf("truncated time vector encoding")
	}
	n := int(buf[0])
	if len(buf) < 1+n {
		return nil, 0, invalidTimeErrorf("truncated time vector encoding")
	}
	return cloneTimeVector(TimeVector(buf[1 : 1+n])), 1 + n, nil
}
