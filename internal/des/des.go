// Package des implements the DES block cipher with the E-box salt
// perturbation used by the traditional and extended (BSDi) crypt(3)
// algorithms.
//
// The salt swaps bits of the expanded right half inside every round. With a
// zero salt this cipher is plain DES and agrees with crypto/des.
package des

// Cipher is a keyed DES instance. It is not safe for concurrent use when
// SetSalt is called concurrently with Encrypt.
type Cipher struct {
	subkeys  [16]uint64
	saltMask uint32
}

// NewCipher expands the 64-bit key (parity bits ignored) into the sixteen
// round keys.
func NewCipher(key uint64) *Cipher {
	c := new(Cipher)
	cd := permute(key, 64, permutedChoice1[:])
	hi, lo := uint32(cd>>28), uint32(cd&0x0fffffff)
	for i, n := range keyShifts {
		hi, lo = rotate28(hi, n), rotate28(lo, n)
		c.subkeys[i] = permute(uint64(hi)<<28|uint64(lo), 56, permutedChoice2[:])
	}
	return c
}

// SetSalt installs a 24-bit crypt(3) salt. When bit k of salt is set, bits
// k and k+24 of the expanded half block (counted from the most significant
// end) are swapped before the round key is mixed in.
func (c *Cipher) SetSalt(salt uint32) {
	var mask uint32
	for k := 0; k < 24; k++ {
		if salt>>k&1 != 0 {
			mask |= 1 << (23 - k)
		}
	}
	c.saltMask = mask
}

// Encrypt enciphers one 64-bit block, initial and final permutations included.
func (c *Cipher) Encrypt(block uint64) uint64 {
	v := permuteBytes(block, &ipTable)
	l, r := uint32(v>>32), uint32(v)
	for _, k := range c.subkeys {
		l, r = r, l^c.feistel(r, k)
	}
	return permuteBytes(uint64(r)<<32|uint64(l), &fpTable)
}

// EncryptRepeated enciphers block n times in a row, as crypt(3) iterates.
// The final and initial permutations between iterations cancel and are
// skipped.
func (c *Cipher) EncryptRepeated(block uint64, n int) uint64 {
	v := permuteBytes(block, &ipTable)
	l, r := uint32(v>>32), uint32(v)
	for ; n > 0; n-- {
		for _, k := range c.subkeys {
			l, r = r, l^c.feistel(r, k)
		}
		l, r = r, l
	}
	return permuteBytes(uint64(l)<<32|uint64(r), &fpTable)
}

func (c *Cipher) feistel(r uint32, subkey uint64) uint32 {
	// The expansion reads overlapping six-bit windows of r with both ends
	// wrapped around: bit 32, bits 1..32, bit 1.
	w := uint64(r)<<1 | uint64(r>>31) | uint64(r&1)<<33
	var e uint64
	for i := uint(0); i < 8; i++ {
		e = e<<6 | (w>>(28-4*i))&0x3f
	}

	hi, lo := uint32(e>>24), uint32(e&0xffffff)
	swap := (hi ^ lo) & c.saltMask
	e = uint64(hi^swap)<<24 | uint64(lo^swap)
	e ^= subkey

	var out uint32
	for i := uint(0); i < 8; i++ {
		out |= spTable[i][(e>>(42-6*i))&0x3f]
	}
	return out
}

// permuteBytes applies a 64-bit permutation from its per-byte table.
func permuteBytes(v uint64, t *[8][256]uint64) uint64 {
	var out uint64
	for k := uint(0); k < 8; k++ {
		out |= t[k][byte(v>>(56-8*k))]
	}
	return out
}

// permute builds a len(table)-bit value whose i-th bit (from the top) is
// bit table[i] of the width-bit input.
func permute(in uint64, width uint, table []byte) uint64 {
	var out uint64
	for _, pos := range table {
		out = out<<1 | (in>>(width-uint(pos)))&1
	}
	return out
}

func rotate28(v uint32, n uint) uint32 {
	return (v<<n | v>>(28-n)) & 0x0fffffff
}
