package symbolic

import (
	"fmt"
	"math/big"
)

// maxSquareFactor bounds the trial division used to pull square factors out
// of a radicand. Larger square factors are left inside the root.
const maxSquareFactor = 1000

// Surd is an exact real number a + b*sqrt(d) with rational a, b and a
// square-free non-negative integer radicand d. When b is zero the value is
// rational and d is zero.
type Surd struct {
	a, b *big.Rat
	d    *big.Int
}

// Rational returns the surd holding r.
func Rational(r *big.Rat) Surd {
	return Surd{a: new(big.Rat).Set(r), b: new(big.Rat), d: new(big.Int)}
}

// NewSurd returns a + b*sqrt(d) in canonical form. d must be non-negative.
func NewSurd(a, b, d *big.Rat) (Surd, error) {
	if d.Sign() < 0 {
		return Surd{}, fmt.Errorf("symbolic: negative radicand %s", d.RatString())
	}
	s := Surd{a: new(big.Rat).Set(a), b: new(big.Rat).Set(b), d: new(big.Int)}
	if b.Sign() == 0 || d.Sign() == 0 {
		s.b.SetInt64(0)
		return s, nil
	}

	// sqrt(p/q) = sqrt(p*q)/q
	radicand := new(big.Int).Mul(d.Num(), d.Denom())
	s.b.Quo(s.b, new(big.Rat).SetInt(d.Denom()))

	k2 := new(big.Int)
	rem := new(big.Int)
	for k := int64(2); k <= maxSquareFactor; k++ {
		k2.SetInt64(k * k)
		if k2.Cmp(radicand) > 0 {
			break
		}
		for {
			q, r := new(big.Int).QuoRem(radicand, k2, rem)
			if r.Sign() != 0 {
				break
			}
			radicand = q
			s.b.Mul(s.b, big.NewRat(k, 1))
		}
	}

	if root := new(big.Int).Sqrt(radicand); new(big.Int).Mul(root, root).Cmp(radicand) == 0 {
		s.a.Add(s.a, new(big.Rat).Mul(s.b, new(big.Rat).SetInt(root)))
		s.b.SetInt64(0)
		return s, nil
	}
	s.d = radicand
	return s, nil
}

// IsRational reports whether the irrational part is zero.
func (s Surd) IsRational() bool { return s.b.Sign() == 0 }

// Rat returns the value when it is rational.
func (s Surd) Rat() (*big.Rat, bool) {
	if !s.IsRational() {
		return nil, false
	}
	return new(big.Rat).Set(s.a), true
}

// Parts returns copies of a, b and d.
func (s Surd) Parts() (a, b *big.Rat, d *big.Int) {
	return new(big.Rat).Set(s.a), new(big.Rat).Set(s.b), new(big.Int).Set(s.d)
}

// Sign returns the exact sign of the value.
func (s Surd) Sign() int {
	sa, sb := s.a.Sign(), s.b.Sign()
	switch {
	case sb == 0:
		return sa
	case sa == 0:
		return sb
	case sa == sb:
		return sa
	}
	// Opposite signs: compare a^2 with b^2*d.
	a2 := new(big.Rat).Mul(s.a, s.a)
	b2d := new(big.Rat).Mul(s.b, s.b)
	b2d.Mul(b2d, new(big.Rat).SetInt(s.d))
	switch a2.Cmp(b2d) {
	case 1:
		return sa
	case -1:
		return sb
	}
	return 0
}

func (s Surd) radicand(o Surd) (*big.Int, error) {
	switch {
	case s.IsRational():
		return o.d, nil
	case o.IsRational():
		return s.d, nil
	case s.d.Cmp(o.d) == 0:
		return s.d, nil
	}
	return nil, fmt.Errorf("%w: sqrt(%s) and sqrt(%s)", ErrIncompatibleRadicands, s.d, o.d)
}

// Add returns s + o. Both must share the radicand unless one is rational.
func (s Surd) Add(o Surd) (Surd, error) {
	d, err := s.radicand(o)
	if err != nil {
		return Surd{}, err
	}
	return NewSurd(new(big.Rat).Add(s.a, o.a), new(big.Rat).Add(s.b, o.b), new(big.Rat).SetInt(d))
}

// Neg returns -s.
func (s Surd) Neg() Surd {
	return Surd{a: new(big.Rat).Neg(s.a), b: new(big.Rat).Neg(s.b), d: new(big.Int).Set(s.d)}
}

// Sub returns s - o.
func (s Surd) Sub(o Surd) (Surd, error) { return s.Add(o.Neg()) }

// Mul returns s * o.
func (s Surd) Mul(o Surd) (Surd, error) {
	d, err := s.radicand(o)
	if err != nil {
		return Surd{}, err
	}
	dr := new(big.Rat).SetInt(d)

	// (a1 + b1 r)(a2 + b2 r) = a1 a2 + b1 b2 d + (a1 b2 + a2 b1) r
	a := new(big.Rat).Mul(s.a, o.a)
	bb := new(big.Rat).Mul(s.b, o.b)
	a.Add(a, bb.Mul(bb, dr))
	b := new(big.Rat).Mul(s.a, o.b)
	b.Add(b, new(big.Rat).Mul(o.a, s.b))
	return NewSurd(a, b, dr)
}

// Inv returns 1/s using the conjugate.
func (s Surd) Inv() (Surd, error) {
	if s.Sign() == 0 {
		return Surd{}, ErrDivisionByZero
	}
	// (a - b r) / (a^2 - b^2 d)
	norm := new(big.Rat).Mul(s.a, s.a)
	b2d := new(big.Rat).Mul(s.b, s.b)
	b2d.Mul(b2d, new(big.Rat).SetInt(s.d))
	norm.Sub(norm, b2d)
	a := new(big.Rat).Quo(s.a, norm)
	b := new(big.Rat).Quo(s.b, norm)
	return NewSurd(a, b.Neg(b), new(big.Rat).SetInt(s.d))
}

// Quo returns s / o.
func (s Surd) Quo(o Surd) (Surd, error) {
	inv, err := o.Inv()
	if err != nil {
		return Surd{}, err
	}
	return s.Mul(inv)
}

// PowInt returns s^n for n >= 0.
func (s Surd) PowInt(n int) (Surd, error) {
	if n < 0 {
		inv, err := s.Inv()
		if err != nil {
			return Surd{}, err
		}
		return inv.PowInt(-n)
	}
	out := Rational(big.NewRat(1, 1))
	base := s
	var err error
	for n > 0 {
		if n&1 == 1 {
			if out, err = out.Mul(base); err != nil {
				return Surd{}, err
			}
		}
		if n > 1 {
			if base, err = base.Mul(base); err != nil {
				return Surd{}, err
			}
		}
		n >>= 1
	}
	return out, nil
}

// Cmp compares s and o exactly.
func (s Surd) Cmp(o Surd) (int, error) {
	diff, err := s.Sub(o)
	if err != nil {
		return 0, err
	}
	return diff.Sign(), nil
}

// Float64 rounds the exact value to the nearest float64.
func (s Surd) Float64() float64 {
	const prec = 256
	v := new(big.Float).SetPrec(prec).SetRat(s.a)
	if !s.IsRational() {
		root := new(big.Float).SetPrec(prec).SetInt(s.d)
		root.Sqrt(root)
		root.Mul(root, new(big.Float).SetPrec(prec).SetRat(s.b))
		v.Add(v, root)
	}
	f, _ := v.Float64()
	return f
}

// String renders the value as "a + b*sqrt(d)", dropping zero parts.
func (s Surd) String() string {
	if s.IsRational() {
		return s.a.RatString()
	}
	irr := "sqrt(" + s.d.String() + ")"
	absB := new(big.Rat).Abs(s.b)
	if absB.Cmp(big.NewRat(1, 1)) != 0 {
		irr = ratString(absB) + "*" + irr
	}
	switch {
	case s.a.Sign() == 0 && s.b.Sign() < 0:
		return "-" + irr
	case s.a.Sign() == 0:
		return irr
	case s.b.Sign() < 0:
		return s.a.RatString() + " - " + irr
	}
	return s.a.RatString() + " + " + irr
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return "(" + r.RatString() + ")"
}
