package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
)

var (
	// ErrNotLaurent is returned when an expression cannot be expanded as a
	// Laurent polynomial in the requested variable.
	ErrNotLaurent = errors.New("symbolic: not a Laurent polynomial")
	// ErrUnsupportedDegree is returned for polynomials the solver has no
	// closed form for.
	ErrUnsupportedDegree = errors.New("symbolic: unsupported polynomial degree")
	// ErrIdenticallyZero is returned when every value of the variable is a root.
	ErrIdenticallyZero = errors.New("symbolic: polynomial is identically zero")
	// ErrDivisionByZero is returned when inverting a zero surd or a zero
	// Laurent polynomial.
	ErrDivisionByZero = errors.New("symbolic: division by zero")
	// ErrIncompatibleRadicands is returned when combining surds from
	// different quadratic fields.
	ErrIncompatibleRadicands = errors.New("symbolic: incompatible radicands")
)

// SolvePositive returns the distinct strictly positive real roots of l in
// ascending order. Denominators are cleared first, so roots of the numerator
// at zero are never reported. Closed forms exist up to degree two.
func SolvePositive(l Laurent) ([]Surd, error) {
	if l.IsZero() {
		return nil, ErrIdenticallyZero
	}
	p := l.ClearDenominators()

	var roots []Surd
	switch deg := p.Degree(); deg {
	case 0:
		return nil, nil
	case 1:
		// c1 x + c0 = 0
		r := new(big.Rat).Quo(p.Coeff(0), p.Coeff(1))
		roots = append(roots, Rational(r.Neg(r)))
	case 2:
		var err error
		if roots, err = quadraticRoots(p.Coeff(2), p.Coeff(1), p.Coeff(0)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: degree %d", ErrUnsupportedDegree, deg)
	}

	positive := roots[:0]
	for _, r := range roots {
		if r.Sign() > 0 {
			positive = append(positive, r)
		}
	}

	var sortErr error
	sort.Slice(positive, func(i, j int) bool {
		c, err := positive[i].Cmp(positive[j])
		if err != nil {
			sortErr = err
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := make([]Surd, 0, len(positive))
	for _, r := range positive {
		if len(out) > 0 {
			if c, _ := out[len(out)-1].Cmp(r); c == 0 {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// quadraticRoots returns the real roots of a x^2 + b x + c = 0, a != 0.
func quadraticRoots(a, b, c *big.Rat) ([]Surd, error) {
	twoA := new(big.Rat).Mul(a, big.NewRat(2, 1))

	if b.Sign() == 0 {
		// x^2 = -c/a
		sq := new(big.Rat).Quo(c, a)
		sq.Neg(sq)
		switch sq.Sign() {
		case -1:
			return nil, nil
		case 0:
			return []Surd{Rational(new(big.Rat))}, nil
		}
		pos, err := NewSurd(new(big.Rat), big.NewRat(1, 1), sq)
		if err != nil {
			return nil, err
		}
		return []Surd{pos.Neg(), pos}, nil
	}

	disc := new(big.Rat).Mul(b, b)
	disc.Sub(disc, new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))

	center := new(big.Rat).Quo(b, twoA)
	center.Neg(center)

	switch disc.Sign() {
	case -1:
		return nil, nil
	case 0:
		return []Surd{Rational(center)}, nil
	}

	half := new(big.Rat).Inv(twoA)
	lo, err := NewSurd(center, new(big.Rat).Neg(half), disc)
	if err != nil {
		return nil, err
	}
	hi, err := NewSurd(center, half, disc)
	if err != nil {
		return nil, err
	}
	return []Surd{lo, hi}, nil
}
