package bitboard

import "math/bits"

// Width is the number of squares a Bitboard can address.
const Width = 128

// Bitboard is a 128-bit set of squares, bit i is square i.
type Bitboard struct {
	Lo, Hi uint64
}

// Empty is the zero mask.
var Empty = Bitboard{}

// Square returns a mask with only square sq set.
func Square(sq int) Bitboard {
	if sq < 64 {
		return Bitboard{Lo: 1 << sq}
	}
	return Bitboard{Hi: 1 << (sq - 64)}
}

// Mask returns a mask with the lowest n squares set.
func Mask(n int) Bitboard {
	switch {
	case n <= 0:
		return Empty
	case n < 64:
		return Bitboard{Lo: 1<<n - 1}
	case n < Width:
		return Bitboard{Lo: ^uint64(0), Hi: 1<<(n-64) - 1}
	default:
		return Bitboard{Lo: ^uint64(0), Hi: ^uint64(0)}
	}
}

func (b Bitboard) And(o Bitboard) Bitboard    { return Bitboard{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bitboard) Or(o Bitboard) Bitboard     { return Bitboard{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bitboard) Xor(o Bitboard) Bitboard    { return Bitboard{b.Lo ^ o.Lo, b.Hi ^ o.Hi} }
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.Lo &^ o.Lo, b.Hi &^ o.Hi} }

func (b Bitboard) IsZero() bool { return b.Lo|b.Hi == 0 }

func (b Bitboard) Has(sq int) bool { return !b.And(Square(sq)).IsZero() }

// Intersects reports whether b and o share at least one square.
func (b Bitboard) Intersects(o Bitboard) bool { return (b.Lo&o.Lo)|(b.Hi&o.Hi) != 0 }

// Shl shifts every square up by s (toward higher indices).
func (b Bitboard) Shl(s int) Bitboard {
	if s >= 64 {
		return Bitboard{Hi: b.Lo << (s - 64)}
	}
	return Bitboard{Lo: b.Lo << s, Hi: b.Hi<<s | b.Lo>>(64-s)}
}

// Shr shifts every square down by s (toward lower indices).
func (b Bitboard) Shr(s int) Bitboard {
	if s >= 64 {
		return Bitboard{Lo: b.Hi >> (s - 64)}
	}
	return Bitboard{Lo: b.Lo>>s | b.Hi<<(64-s), Hi: b.Hi >> s}
}

func PopCount(b Bitboard) int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// FirstOne returns the lowest set square. The result is meaningless for an
// empty mask, callers check IsZero first.
func FirstOne(b Bitboard) int {
	if b.Lo != 0 {
		return bits.TrailingZeros64(b.Lo)
	}
	return 64 + bits.TrailingZeros64(b.Hi)
}

// NthOneIndex returns the square of the k-th set bit (k counts from zero in
// ascending square order). k must be below PopCount(b).
func NthOneIndex(b Bitboard, k int) int {
	if c := bits.OnesCount64(b.Lo); k >= c {
		return 64 + nthOne64(b.Hi, k-c)
	}
	return nthOne64(b.Lo, k)
}

// nthOne64 halves the word until a single bit remains, keeping the half
// that holds the k-th one.
func nthOne64(x uint64, k int) int {
	base := 0
	for width := 32; width > 0; width >>= 1 {
		low := x & (1<<width - 1)
		if c := bits.OnesCount64(low); k >= c {
			k -= c
			x >>= width
			base += width
		} else {
			x = low
		}
	}
	return base
}

// Squares lists the set squares in ascending order.
func Squares(b Bitboard) []int {
	result := make([]int, 0, PopCount(b))
	for !b.IsZero() {
		sq := FirstOne(b)
		result = append(result, sq)
		b = b.Xor(Square(sq))
	}
	return result
}
