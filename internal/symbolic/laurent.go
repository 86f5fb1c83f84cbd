package symbolic

import (
	"fmt"
	"math/big"
	"sort"
)

// Laurent is a Laurent polynomial in one variable with exact rational
// coefficients: a finite sum of c_k * x^k where k may be negative.
type Laurent struct {
	variable string
	coeff    map[int]*big.Rat
}

// NewLaurent returns the zero polynomial in the named variable.
func NewLaurent(variable string) Laurent {
	return Laurent{variable: variable, coeff: make(map[int]*big.Rat)}
}

// Monomial returns c * variable^k.
func Monomial(variable string, c *big.Rat, k int) Laurent {
	l := NewLaurent(variable)
	l.set(k, c)
	return l
}

// Variable returns the polynomial variable.
func (l Laurent) Variable() string { return l.variable }

// Coeff returns a copy of the coefficient of x^k.
func (l Laurent) Coeff(k int) *big.Rat {
	if c, ok := l.coeff[k]; ok {
		return new(big.Rat).Set(c)
	}
	return new(big.Rat)
}

// Exponents returns the exponents with non-zero coefficients, ascending.
func (l Laurent) Exponents() []int {
	out := make([]int, 0, len(l.coeff))
	for k := range l.coeff {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// IsZero reports whether every coefficient is zero.
func (l Laurent) IsZero() bool { return len(l.coeff) == 0 }

// Degree returns the largest exponent. The zero polynomial has degree 0.
func (l Laurent) Degree() int {
	exps := l.Exponents()
	if len(exps) == 0 {
		return 0
	}
	return exps[len(exps)-1]
}

// MinExponent returns the smallest exponent. The zero polynomial returns 0.
func (l Laurent) MinExponent() int {
	exps := l.Exponents()
	if len(exps) == 0 {
		return 0
	}
	return exps[0]
}

func (l Laurent) set(k int, c *big.Rat) {
	if c.Sign() == 0 {
		delete(l.coeff, k)
		return
	}
	l.coeff[k] = new(big.Rat).Set(c)
}

// Add returns l + o.
func (l Laurent) Add(o Laurent) Laurent {
	out := NewLaurent(l.variable)
	for k, c := range l.coeff {
		out.set(k, c)
	}
	for k, c := range o.coeff {
		out.set(k, new(big.Rat).Add(out.Coeff(k), c))
	}
	return out
}

// Mul returns l * o.
func (l Laurent) Mul(o Laurent) Laurent {
	out := NewLaurent(l.variable)
	for i, a := range l.coeff {
		for j, b := range o.coeff {
			term := new(big.Rat).Mul(a, b)
			out.set(i+j, term.Add(term, out.Coeff(i+j)))
		}
	}
	return out
}

// Shift returns l * x^k.
func (l Laurent) Shift(k int) Laurent {
	out := NewLaurent(l.variable)
	for e, c := range l.coeff {
		out.set(e+k, c)
	}
	return out
}

// Derivative returns dl/dx.
func (l Laurent) Derivative() Laurent {
	out := NewLaurent(l.variable)
	for k, c := range l.coeff {
		if k == 0 {
			continue
		}
		out.set(k-1, new(big.Rat).Mul(c, big.NewRat(int64(k), 1)))
	}
	return out
}

// ClearDenominators multiplies by the power of x that makes the smallest
// exponent zero. The positive roots are unchanged.
func (l Laurent) ClearDenominators() Laurent {
	return l.Shift(-l.MinExponent())
}

// Expr converts the polynomial back into an expression tree.
func (l Laurent) Expr() Expr {
	terms := make([]Expr, 0, len(l.coeff))
	x := S(l.variable)
	for _, k := range l.Exponents() {
		terms = append(terms, Product(NewNum(l.coeff[k]), PowOf(x, k)))
	}
	return Sum(terms...)
}

func (l Laurent) String() string { return l.Expr().String() }

// Eval evaluates the polynomial exactly at x.
func (l Laurent) Eval(x Surd) (Surd, error) {
	total := Rational(new(big.Rat))
	if l.IsZero() {
		return total, nil
	}

	var inv Surd
	if l.MinExponent() < 0 {
		var err error
		if inv, err = x.Inv(); err != nil {
			return Surd{}, err
		}
	}

	for _, k := range l.Exponents() {
		base, n := x, k
		if k < 0 {
			base, n = inv, -k
		}
		term, err := base.PowInt(n)
		if err != nil {
			return Surd{}, err
		}
		if term, err = term.Mul(Rational(l.coeff[k])); err != nil {
			return Surd{}, err
		}
		if total, err = total.Add(term); err != nil {
			return Surd{}, err
		}
	}
	return total, nil
}

// ToLaurent expands e as a Laurent polynomial in the named variable. Every
// other symbol must already be bound to a constant.
func ToLaurent(e Expr, variable string) (Laurent, error) {
	switch t := e.(type) {
	case *Num:
		return Monomial(variable, t.val, 0), nil
	case *Sym:
		if t.name != variable {
			return Laurent{}, fmt.Errorf("%w: unbound symbol %s", ErrNotLaurent, t.name)
		}
		return Monomial(variable, big.NewRat(1, 1), 1), nil
	case *Add:
		out := NewLaurent(variable)
		for _, term := range t.terms {
			p, err := ToLaurent(term, variable)
			if err != nil {
				return Laurent{}, err
			}
			out = out.Add(p)
		}
		return out, nil
	case *Mul:
		out := Monomial(variable, big.NewRat(1, 1), 0)
		for _, f := range t.factors {
			p, err := ToLaurent(f, variable)
			if err != nil {
				return Laurent{}, err
			}
			out = out.Mul(p)
		}
		return out, nil
	case *Pow:
		base, err := ToLaurent(t.base, variable)
		if err != nil {
			return Laurent{}, err
		}
		n := t.exp
		if n < 0 {
			if base, err = invertMonomial(base); err != nil {
				return Laurent{}, err
			}
			n = -n
		}
		out := Monomial(variable, big.NewRat(1, 1), 0)
		for i := 0; i < n; i++ {
			out = out.Mul(base)
		}
		return out, nil
	}
	return Laurent{}, fmt.Errorf("%w: unsupported node %T", ErrNotLaurent, e)
}

func invertMonomial(l Laurent) (Laurent, error) {
	exps := l.Exponents()
	switch len(exps) {
	case 0:
		return Laurent{}, ErrDivisionByZero
	case 1:
		k := exps[0]
		return Monomial(l.variable, new(big.Rat).Inv(l.coeff[k]), -k), nil
	}
	return Laurent{}, fmt.Errorf("%w: division by %s", ErrNotLaurent, l)
}
