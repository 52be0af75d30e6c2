package ratcalc

import (
	"math/big"
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

// Number is an exact rational number: a sign and a fraction of two unbounded
// magnitudes kept in lowest terms. The zero value is not usable; create
// Numbers with NewInt, NewUint, or NewFrac.
//
// Arithmetic methods modify the receiver in place using the argument as the
// right-hand operand, in the order the parser evaluates them. A Number must
// not be copied by value; use Clone or Set.
type Number struct {
	neg bool
	num big.Int
	den big.Int
}

// NewInt creates a Number with the value of x.
func NewInt(x int64) *Number {
	n := &Number{neg: x < 0}
	n.num.SetInt64(x)
	n.num.Abs(&n.num)
	n.den.SetInt64(1)
	return n
}

// NewUint creates a non-negative integer Number from the magnitude x. x is
// copied.
func NewUint(x *big.Int) *Number {
	n := new(Number)
	n.num.Abs(x)
	n.den.SetInt64(1)
	return n
}

// NewFrac creates the Number ±num/den, reduced to lowest terms. The signs of
// num and den are ignored. Panics if den is zero.
func NewFrac(neg bool, num, den *big.Int) *Number {
	if den.Sign() == 0 {
		panic("ratcalc: zero denominator")
	}
	n := &Number{neg: neg}
	n.num.Abs(num)
	n.den.Abs(den)
	n.reduce()
	return n
}

// Set sets n to the value of x and returns n.
func (n *Number) Set(x *Number) *Number {
	if n != x {
		n.neg = x.neg
		n.num.Set(&x.num)
		n.den.Set(&x.den)
	}
	return n
}

// Clone returns an independent copy of n.
func (n *Number) Clone() *Number {
	return new(Number).Set(n)
}

// reduce divides out the greatest common divisor of the numerator and
// denominator and clears the sign of zero.
func (n *Number) reduce() {
	a := new(big.Int).Set(&n.num)
	b := new(big.Int).Set(&n.den)
	for a.Sign() != 0 && b.Sign() != 0 {
		if a.Cmp(b) >= 0 {
			a.Rem(a, b)
		} else {
			b.Rem(b, a)
		}
	}
	// One of a and b is zero, so the sum is the other.
	a.Add(a, b)
	if a.Sign() != 0 {
		n.num.Quo(&n.num, a)
		n.den.Quo(&n.den, a)
	}
	// No negative zero.
	n.neg = n.neg && n.num.Sign() != 0
}

// Sign returns -1, 0, or 1 according to the sign of n.
func (n *Number) Sign() int {
	switch {
	case n.num.Sign() == 0:
		return 0
	case n.neg:
		return -1
	default:
		return 1
	}
}

// Num returns a copy of the magnitude of n's numerator.
func (n *Number) Num() *big.Int {
	return new(big.Int).Set(&n.num)
}

// Den returns a copy of n's denominator.
func (n *Number) Den() *big.Int {
	return new(big.Int).Set(&n.den)
}

// IsInt reports whether n is an integer.
func (n *Number) IsInt() bool {
	return n.den.Cmp(bigOne) == 0
}

// IsBitmask reports whether n is a non-negative integer, which is the domain
// of the bitwise operations.
func (n *Number) IsBitmask() bool {
	return !n.neg && n.IsInt()
}

// Equal reports whether n and x have the same value.
func (n *Number) Equal(x *Number) bool {
	return n.neg == x.neg && n.num.Cmp(&x.num) == 0 && n.den.Cmp(&x.den) == 0
}

// Rat returns the value of n as a big.Rat.
func (n *Number) Rat() *big.Rat {
	r := new(big.Rat).SetFrac(&n.num, &n.den)
	if n.neg {
		r.Neg(r)
	}
	return r
}

// Float64 returns an approximation of n: the numerator and denominator are
// each rounded to float64 before dividing, so the result may be off by more
// than one ulp when either exceeds 2^53.
func (n *Number) Float64() float64 {
	num, _ := new(big.Float).SetInt(&n.num).Float64()
	den, _ := new(big.Float).SetInt(&n.den).Float64()
	f := num / den
	if n.neg {
		f = -f
	}
	return f
}

// Neg negates n. Zero is unchanged. Returns n.
func (n *Number) Neg() *Number {
	n.neg = !n.neg && n.num.Sign() != 0
	return n
}

// addmag sets n to n±x by cross-multiplying the denominators. If sub is true,
// the magnitudes are subtracted, and the sign flips when x's magnitude is the
// larger.
func (n *Number) addmag(sub bool, x *Number) {
	onum := new(big.Int).Mul(&x.num, &n.den)
	xden := new(big.Int).Set(&x.den)
	n.num.Mul(&n.num, xden)
	n.den.Mul(&n.den, xden)
	if !sub {
		n.num.Add(&n.num, onum)
		return
	}
	if n.num.Cmp(onum) < 0 {
		n.neg = !n.neg
		n.num.Sub(onum, &n.num)
	} else {
		n.num.Sub(&n.num, onum)
	}
}

// Add sets n to n+x and returns n.
func (n *Number) Add(x *Number) *Number {
	n.addmag(n.neg != x.neg, x)
	n.reduce()
	return n
}

// Sub sets n to n-x and returns n.
func (n *Number) Sub(x *Number) *Number {
	n.addmag(n.neg == x.neg, x)
	n.reduce()
	return n
}

// Mul sets n to n*x and returns n.
func (n *Number) Mul(x *Number) *Number {
	if n == x {
		x = x.Clone()
	}
	n.neg = n.neg != x.neg
	n.num.Mul(&n.num, &x.num)
	n.den.Mul(&n.den, &x.den)
	n.reduce()
	return n
}

// Quo sets n to n/x. If x is zero, the result is ErrDivisionByZero and n is
// unchanged.
func (n *Number) Quo(x *Number) error {
	if x.num.Sign() == 0 {
		return ErrDivisionByZero
	}
	if n == x {
		x = x.Clone()
	}
	n.neg = n.neg != x.neg
	n.num.Mul(&n.num, &x.den)
	n.den.Mul(&n.den, &x.num)
	n.reduce()
	return nil
}

// Rem sets n to the remainder of n/x. The magnitude of the result is the
// remainder of the magnitudes, and its sign is the product of the operands'
// signs, so -7 % 2 and 7 % -2 are both -1. If x is zero, the result is
// ErrModuloByZero; otherwise, if either operand is not an integer, the result
// is ErrFractionalRemainder. On error, n is unchanged.
func (n *Number) Rem(x *Number) error {
	if x.num.Sign() == 0 {
		return ErrModuloByZero
	}
	if !n.IsInt() || !x.IsInt() {
		return ErrFractionalRemainder
	}
	n.neg = n.neg != x.neg
	n.num.Rem(&n.num, &x.num)
	n.reduce()
	return nil
}

// wordBits is the width of the word the complement is taken in. Magnitudes
// wider than one word are complemented in the fewest whole words that hold
// them.
const wordBits = 128

// Not sets n to the bitwise complement of n. n must be a bitmask; otherwise,
// the result is a *BitwiseError and n is unchanged.
func (n *Number) Not() error {
	if !n.IsBitmask() {
		return &BitwiseError{Op: TokenNot}
	}
	if n.num.BitLen() <= wordBits {
		u := uint128.FromBig(&n.num)
		n.num.Set(uint128.Max.Xor(u).Big())
		return nil
	}
	words := (n.num.BitLen() + wordBits - 1) / wordBits
	mask := new(big.Int).Lsh(bigOne, uint(words*wordBits))
	mask.Sub(mask, bigOne)
	n.num.Xor(&n.num, mask)
	return nil
}

// bitwise applies a binary bitwise operation to the magnitudes of n and x
// after checking that both are bitmasks.
func (n *Number) bitwise(op TokenKind, x *Number, f func(z, x, y *big.Int) *big.Int) error {
	if !n.IsBitmask() || !x.IsBitmask() {
		return &BitwiseError{Op: op}
	}
	f(&n.num, &n.num, &x.num)
	n.reduce()
	return nil
}

// And sets n to n&x. Both operands must be bitmasks.
func (n *Number) And(x *Number) error {
	return n.bitwise(TokenAnd, x, (*big.Int).And)
}

// Or sets n to n|x. Both operands must be bitmasks.
func (n *Number) Or(x *Number) error {
	return n.bitwise(TokenOr, x, (*big.Int).Or)
}

// Xor sets n to n^x. Both operands must be bitmasks.
func (n *Number) Xor(x *Number) error {
	return n.bitwise(TokenXor, x, (*big.Int).Xor)
}

// String formats n. Integers are written plainly. Other values are written
// as the exact fraction followed by an approximation, e.g. "-1/4 ~ -0.25".
func (n *Number) String() string {
	var b strings.Builder
	if n.neg {
		b.WriteByte('-')
	}
	b.WriteString(n.num.String())
	if n.IsInt() {
		return b.String()
	}
	b.WriteByte('/')
	b.WriteString(n.den.String())
	b.WriteString(" ~ ")
	b.WriteString(strconv.FormatFloat(n.Float64(), 'f', -1, 64))
	return b.String()
}

var bigOne = big.NewInt(1)
