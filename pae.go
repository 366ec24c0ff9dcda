package paseto

import "encoding/binary"

// pae implements Pre-Authentication Encoding (PAE):
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Common.md#pae-definition
//
// LE64(len(pieces)) || LE64(len(pieces[0])) || pieces[0] || ...
//
// This is the one primitive where byte-for-byte interop with other
// PASETO implementations matters most, so the construction follows
// the reference definition exactly rather than a simplified variant.
func pae(pieces ...[]byte) []byte {
	// Size required is 8 bytes for len(pieces), plus 8 bytes for each
	// element of pieces, plus whatever is required for the elements
	// of pieces.
	n := 8 + 8*len(pieces)
	for _, b := range pieces {
		n += len(b)
	}
	buf := make([]byte, n)
	le64(len(pieces), buf[:8])
	off := 8
	for _, b := range pieces {
		le64(len(b), buf[off:off+8])
		off += 8
		copy(buf[off:], b)
		off += len(b)
	}
	return buf
}

// le64 encodes n as a little-endian uint64 with the most significant
// bit cleared, per the PASETO PAE spec.
func le64(n int, b []byte) {
	u := uint64(n) << 1 >> 1 // clear MSB
	binary.LittleEndian.PutUint64(b, u)
}
