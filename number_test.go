package ratcalc

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frac(neg bool, num, den int64) *Number {
	return NewFrac(neg, big.NewInt(num), big.NewInt(den))
}

func TestReduce(t *testing.T) {
	cases := []struct {
		name     string
		neg      bool
		num, den int64
		want     string
	}{
		{"lowest", false, 3, 2, "3/2 ~ 1.5"},
		{"common", false, 6, 4, "3/2 ~ 1.5"},
		{"neg", true, 10, 4, "-5/2 ~ -2.5"},
		{"whole", false, 12, 4, "3"},
		{"one", true, 7, 7, "-1"},
		{"zero", false, 0, 5, "0"},
		{"negzero", true, 0, 5, "0"},
		{"coprime", false, 17, 5, "17/5 ~ 3.4"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := frac(c.neg, c.num, c.den)
			assert.Equal(t, c.want, n.String())
			m := n.Clone()
			m.reduce()
			assert.True(t, n.Equal(m), "reduce is not idempotent: %v became %v", n, m)
		})
	}
}

func TestReduceZeroNumerator(t *testing.T) {
	n := frac(true, 0, 12)
	assert.Equal(t, 0, n.Sign())
	assert.Equal(t, "1", n.Den().String())
}

func TestNewInt(t *testing.T) {
	for _, x := range []int64{0, 1, -1, 42, -9000} {
		n := NewInt(x)
		assert.True(t, n.IsInt())
		assert.Equal(t, big.NewRat(x, 1).String(), n.Rat().String())
		m := NewUint(big.NewInt(x))
		if x >= 0 {
			assert.True(t, n.Equal(m))
		}
	}
}

func TestArith(t *testing.T) {
	cases := []struct {
		name string
		op   func(n, x *Number) error
		n, x *Number
		want string
	}{
		{"add", wrap((*Number).Add), frac(false, 1, 2), frac(false, 1, 3), "5/6 ~ 0.8333333333333334"},
		{"add-neg-lhs", wrap((*Number).Add), frac(true, 1, 2), frac(false, 1, 3), "-1/6 ~ -0.16666666666666666"},
		{"add-neg-rhs", wrap((*Number).Add), NewInt(2), NewInt(-5), "-3"},
		{"add-both-neg", wrap((*Number).Add), NewInt(-2), NewInt(-5), "-7"},
		{"add-cancel", wrap((*Number).Add), frac(true, 1, 2), frac(false, 1, 2), "0"},
		{"sub", wrap((*Number).Sub), frac(false, 1, 3), frac(false, 1, 2), "-1/6 ~ -0.16666666666666666"},
		{"sub-neg", wrap((*Number).Sub), NewInt(-3), NewInt(-5), "2"},
		{"sub-self-neg", wrap((*Number).Sub), frac(true, 1, 2), frac(true, 1, 2), "0"},
		{"mul", wrap((*Number).Mul), frac(true, 2, 3), frac(false, 3, 4), "-1/2 ~ -0.5"},
		{"mul-neg-neg", wrap((*Number).Mul), NewInt(-3), NewInt(-2), "6"},
		{"mul-zero", wrap((*Number).Mul), NewInt(-3), NewInt(0), "0"},
		{"quo", (*Number).Quo, frac(false, 3, 4), frac(true, 3, 8), "-2"},
		{"quo-frac", (*Number).Quo, NewInt(12), NewInt(8), "3/2 ~ 1.5"},
		{"rem", (*Number).Rem, NewInt(7), NewInt(3), "1"},
		{"rem-neg-lhs", (*Number).Rem, NewInt(-7), NewInt(2), "-1"},
		{"rem-neg-rhs", (*Number).Rem, NewInt(7), NewInt(-2), "-1"},
		{"rem-neg-both", (*Number).Rem, NewInt(-7), NewInt(-2), "1"},
		{"rem-exact", (*Number).Rem, NewInt(-6), NewInt(3), "0"},
		{"and", (*Number).And, NewInt(6), NewInt(3), "2"},
		{"or", (*Number).Or, NewInt(6), NewInt(3), "7"},
		{"xor", (*Number).Xor, NewInt(6), NewInt(3), "5"},
		{"xor-self", (*Number).Xor, NewInt(6), NewInt(6), "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x := c.x.Clone()
			require.NoError(t, c.op(c.n, c.x))
			assert.Equal(t, c.want, c.n.String())
			assert.True(t, x.Equal(c.x), "right operand changed from %v to %v", x, c.x)
		})
	}
}

func wrap(f func(n, x *Number) *Number) func(n, x *Number) error {
	return func(n, x *Number) error {
		f(n, x)
		return nil
	}
}

func TestArithErrors(t *testing.T) {
	cases := []struct {
		name string
		op   func(n, x *Number) error
		n, x *Number
		want error
	}{
		{"quo-zero", (*Number).Quo, NewInt(1), NewInt(0), ErrDivisionByZero},
		{"quo-zero-zero", (*Number).Quo, NewInt(0), NewInt(0), ErrDivisionByZero},
		{"rem-zero", (*Number).Rem, NewInt(1), NewInt(0), ErrModuloByZero},
		{"rem-frac-zero", (*Number).Rem, frac(false, 1, 2), NewInt(0), ErrModuloByZero},
		{"rem-frac-lhs", (*Number).Rem, frac(false, 1, 2), NewInt(1), ErrFractionalRemainder},
		{"rem-frac-rhs", (*Number).Rem, NewInt(1), frac(false, 1, 2), ErrFractionalRemainder},
		{"and-frac", (*Number).And, frac(false, 1, 2), NewInt(1), ErrBitwiseOnFraction},
		{"and-neg", (*Number).And, NewInt(-1), NewInt(1), ErrBitwiseOnFraction},
		{"and-frac-rhs", (*Number).And, NewInt(1), frac(false, 1, 2), ErrBitwiseOnFraction},
		{"or-neg-rhs", (*Number).Or, NewInt(1), NewInt(-1), ErrBitwiseOnFraction},
		{"xor-frac", (*Number).Xor, frac(true, 3, 2), NewInt(1), ErrBitwiseOnFraction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := c.n.Clone()
			err := c.op(c.n, c.x)
			assert.ErrorIs(t, err, c.want)
			assert.True(t, n.Equal(c.n), "failed operation changed %v to %v", n, c.n)
		})
	}
}

func TestBitwiseErrorOp(t *testing.T) {
	err := NewInt(-1).Or(NewInt(1))
	var be *BitwiseError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, TokenOr, be.Op)
	assert.Equal(t, "cannot inclusive or a fraction", err.Error())
}

func TestNot(t *testing.T) {
	max128 := new(big.Int).Lsh(big.NewInt(1), 128)
	max128.Sub(max128, big.NewInt(1))

	n := NewInt(0)
	require.NoError(t, n.Not())
	assert.Equal(t, max128.String(), n.String())
	require.NoError(t, n.Not())
	assert.Equal(t, "0", n.String())

	n = NewInt(5)
	require.NoError(t, n.Not())
	want := new(big.Int).Sub(max128, big.NewInt(5))
	assert.Equal(t, want.String(), n.String())

	// 2^128 needs a second word.
	wide := new(big.Int).Lsh(big.NewInt(1), 128)
	n = NewUint(wide)
	require.NoError(t, n.Not())
	want = new(big.Int).Lsh(big.NewInt(1), 256)
	want.Sub(want, big.NewInt(1))
	want.Xor(want, wide)
	assert.Equal(t, want.String(), n.String())

	for _, bad := range []*Number{NewInt(-1), frac(false, 1, 2)} {
		m := bad.Clone()
		err := bad.Not()
		assert.ErrorIs(t, err, ErrBitwiseOnFraction)
		assert.EqualError(t, err, "cannot invert a fraction")
		assert.True(t, m.Equal(bad))
	}
}

func TestNeg(t *testing.T) {
	n := NewInt(0).Neg()
	assert.Equal(t, 0, n.Sign())
	assert.Equal(t, "0", n.String())
	n = frac(false, 1, 2).Neg()
	assert.Equal(t, -1, n.Sign())
	assert.Equal(t, "-1/2 ~ -0.5", n.String())
	assert.Equal(t, 1, n.Neg().Sign())
}

func TestAlias(t *testing.T) {
	n := frac(false, 2, 3)
	n.Mul(n)
	assert.Equal(t, "4/9 ~ 0.4444444444444444", n.String())
	require.NoError(t, n.Quo(n))
	assert.Equal(t, "1", n.String())
	n = frac(true, 1, 2)
	n.Add(n)
	assert.Equal(t, "-1", n.String())
	n.Sub(n)
	assert.Equal(t, "0", n.String())
	assert.Equal(t, 0, n.Sign())
}

func TestString(t *testing.T) {
	cases := []struct {
		n    *Number
		want string
	}{
		{NewInt(5), "5"},
		{NewInt(-5), "-5"},
		{frac(false, 1, 2), "1/2 ~ 0.5"},
		{frac(true, 1, 3), "-1/3 ~ -0.3333333333333333"},
		{frac(false, 1, 1024), "1/1024 ~ 0.0009765625"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.n.String())
	}
}

func TestFloat64(t *testing.T) {
	assert.Equal(t, 0.5, frac(false, 1, 2).Float64())
	assert.Equal(t, -0.25, frac(true, 1, 4).Float64())
	// Both magnitudes round to float64 before the division. 2^54+1 rounds
	// down to 2^54, and 2^54+3 rounds up to 2^54+4.
	n := frac(false, 1<<54+1, 1<<54+3)
	assert.Equal(t, float64(1<<54)/float64(1<<54+4), n.Float64())
	assert.Equal(t, -float64(1<<54)/float64(1<<54+4), n.Neg().Float64())
}

// TestArithRat checks arithmetic against big.Rat on random operands.
func TestArithRat(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rnd := func() *Number {
		d := rng.Int63n(50) + 1
		return frac(rng.Intn(2) == 0, rng.Int63n(200), d)
	}
	for i := 0; i < 1000; i++ {
		a, b := rnd(), rnd()
		ra, rb := a.Rat(), b.Rat()

		assert.Equal(t, new(big.Rat).Add(ra, rb).String(), a.Clone().Add(b).Rat().String(), "%v + %v", a, b)
		assert.Equal(t, new(big.Rat).Sub(ra, rb).String(), a.Clone().Sub(b).Rat().String(), "%v - %v", a, b)
		assert.Equal(t, new(big.Rat).Mul(ra, rb).String(), a.Clone().Mul(b).Rat().String(), "%v * %v", a, b)
		q := a.Clone()
		if b.Sign() == 0 {
			assert.ErrorIs(t, q.Quo(b), ErrDivisionByZero)
			continue
		}
		require.NoError(t, q.Quo(b))
		assert.Equal(t, new(big.Rat).Quo(ra, rb).String(), q.Rat().String(), "%v / %v", a, b)
		// Results are always in lowest terms.
		g := new(big.Int).GCD(nil, nil, q.Num(), q.Den())
		if q.Sign() != 0 {
			assert.Equal(t, "1", g.String())
		}
	}
}
