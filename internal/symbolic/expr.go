// Package symbolic is a small exact symbolic algebra kernel.
//
// Expressions are immutable trees over rational constants and named symbols.
// Constructors keep every tree in a canonical simplified form (flattened sums
// and products, folded constants, merged like terms and like factors), so two
// trees that print the same are the same expression.
//
// The kernel covers what lot-sizing cost models need: differentiation,
// substitution, conversion to Laurent polynomials and exact root finding in
// quadratic fields. It is not a general computer algebra system.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Expr is an immutable symbolic expression.
type Expr interface {
	// String renders the expression in a stable, human readable form.
	String() string
	// Diff returns the derivative with respect to the named symbol.
	Diff(v string) Expr
	// Subs replaces every occurrence of the named symbol with value.
	Subs(v string, value Expr) Expr
	// Equal reports whether both expressions have the same canonical form.
	Equal(other Expr) bool

	isExpr()
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N returns the integer constant n.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Frac returns the constant p/q. It panics when q is zero.
func Frac(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac64(p, q)}
}

// NewNum returns a constant holding a copy of r.
func NewNum(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

// ParseNum parses a decimal, exponent or fraction literal ("1.8", "2e3", "9/5").
func ParseNum(s string) (*Num, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("symbolic: invalid number %q", s)
	}
	return &Num{val: r}, nil
}

// FromFloat converts f through its shortest decimal representation, so 1.8
// becomes exactly 9/5 rather than the nearest binary fraction.
func FromFloat(f float64) (*Num, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("symbolic: non-finite value %v", f)
	}
	return ParseNum(strconv.FormatFloat(f, 'g', -1, 64))
}

// Rat returns a copy of the underlying rational.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// Sign returns -1, 0 or +1.
func (n *Num) Sign() int { return n.val.Sign() }

// Float64 returns the nearest float64.
func (n *Num) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) Diff(string) Expr       { return N(0) }
func (n *Num) Subs(string, Expr) Expr { return n }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}
func (*Num) isExpr() {}

func (n *Num) isOne() bool  { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) isZero() bool { return n.val.Sign() == 0 }

// Sym is a named symbol.
type Sym struct{ name string }

// S returns the symbol with the given name.
func S(name string) *Sym { return &Sym{name: name} }

// Name returns the symbol name.
func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }

func (s *Sym) Diff(v string) Expr {
	if s.name == v {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Subs(v string, value Expr) Expr {
	if s.name == v {
		return value
	}
	return s
}

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}
func (*Sym) isExpr() {}

// Add is a sum of at least two terms. Build it with Sum.
type Add struct{ terms []Expr }

// Terms returns the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// Sum adds terms and returns the canonical result.
func Sum(terms ...Expr) Expr {
	constant := new(big.Rat)
	coeffs := make(map[string]*big.Rat)
	rests := make(map[string]Expr)

	var walk func(list []Expr)
	walk = func(list []Expr) {
		for _, t := range list {
			switch v := t.(type) {
			case *Num:
				constant.Add(constant, v.val)
			case *Add:
				walk(v.terms)
			default:
				coef, rest := splitCoefficient(t)
				key := rest.String()
				if c, ok := coeffs[key]; ok {
					c.Add(c, coef)
				} else {
					coeffs[key] = coef
					rests[key] = rest
				}
			}
		}
	}
	walk(terms)

	keys := make([]string, 0, len(coeffs))
	for k, c := range coeffs {
		if c.Sign() != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, scale(coeffs[k], rests[k]))
	}
	if constant.Sign() != 0 {
		out = append(out, &Num{val: constant})
	}

	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// Neg returns -e.
func Neg(e Expr) Expr { return Product(N(-1), e) }

// Difference returns a - b.
func Difference(a, b Expr) Expr { return Sum(a, Neg(b)) }

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) Diff(v string) Expr {
	parts := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.Diff(v)
	}
	return Sum(parts...)
}

func (a *Add) Subs(v string, value Expr) Expr {
	parts := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.Subs(v, value)
	}
	return Sum(parts...)
}

func (a *Add) Equal(other Expr) bool { return other != nil && a.String() == other.String() }
func (*Add) isExpr()                 {}

// Mul is a product of at least two factors. A rational coefficient, when
// present, is always the first factor. Build it with Product.
type Mul struct{ factors []Expr }

// Factors returns the factors.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// Product multiplies factors and returns the canonical result.
func Product(factors ...Expr) Expr {
	constant := big.NewRat(1, 1)
	exps := make(map[string]int)
	bases := make(map[string]Expr)
	order := make([]string, 0, len(factors))

	var walk func(list []Expr)
	walk = func(list []Expr) {
		for _, f := range list {
			switch v := f.(type) {
			case *Num:
				constant.Mul(constant, v.val)
			case *Mul:
				walk(v.factors)
			default:
				base, exp := splitPower(f)
				key := base.String()
				if _, ok := exps[key]; !ok {
					order = append(order, key)
					bases[key] = base
				}
				exps[key] += exp
			}
		}
	}
	walk(factors)

	if constant.Sign() == 0 {
		return N(0)
	}

	sort.Strings(order)
	out := make([]Expr, 0, len(order)+1)
	for _, k := range order {
		if exps[k] == 0 {
			continue
		}
		p := PowOf(bases[k], exps[k])
		if n, ok := p.(*Num); ok {
			constant.Mul(constant, n.val)
			continue
		}
		out = append(out, p)
	}

	c := &Num{val: constant}
	switch {
	case len(out) == 0:
		return c
	case len(out) == 1 && c.isOne():
		return out[0]
	case !c.isOne():
		out = append([]Expr{c}, out...)
	}
	return &Mul{factors: out}
}

// Quo returns a / b.
func Quo(a, b Expr) Expr { return Product(a, PowOf(b, -1)) }

func (m *Mul) String() string {
	coef := big.NewRat(1, 1)
	var num, den []string
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			coef = v.val
		case *Pow:
			if v.exp < 0 {
				den = append(den, powString(v.base, -v.exp))
			} else {
				num = append(num, v.String())
			}
		default:
			num = append(num, wrap(f))
		}
	}

	sign := ""
	abs := new(big.Rat).Abs(coef)
	if coef.Sign() < 0 {
		sign = "-"
	}
	if !abs.IsInt() {
		den = append([]string{abs.Denom().String()}, den...)
	}
	if n := abs.Num(); n.Cmp(big.NewInt(1)) != 0 || len(num) == 0 {
		num = append([]string{n.String()}, num...)
	}

	s := sign + strings.Join(num, "*")
	switch len(den) {
	case 0:
		return s
	case 1:
		return s + "/" + den[0]
	}
	return s + "/(" + strings.Join(den, "*") + ")"
}

func (m *Mul) Diff(v string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		d := m.factors[i].Diff(v)
		if n, ok := d.(*Num); ok && n.isZero() {
			continue
		}
		parts := make([]Expr, len(m.factors))
		copy(parts, m.factors)
		parts[i] = d
		terms = append(terms, Product(parts...))
	}
	return Sum(terms...)
}

func (m *Mul) Subs(v string, value Expr) Expr {
	parts := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		parts[i] = f.Subs(v, value)
	}
	return Product(parts...)
}

func (m *Mul) Equal(other Expr) bool { return other != nil && m.String() == other.String() }
func (*Mul) isExpr()                 {}

// Pow is a non-constant base raised to an integer exponent other than 0 and 1.
// Build it with PowOf.
type Pow struct {
	base Expr
	exp  int
}

// Base returns the base expression.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the integer exponent.
func (p *Pow) Exp() int { return p.exp }

// PowOf returns base^exp. Raising the constant zero to a negative power panics.
func PowOf(base Expr, exp int) Expr {
	switch {
	case exp == 0:
		return N(1)
	case exp == 1:
		return base
	}

	switch b := base.(type) {
	case *Num:
		return &Num{val: ratPow(b.val, exp)}
	case *Pow:
		return PowOf(b.base, b.exp*exp)
	case *Mul:
		parts := make([]Expr, len(b.factors))
		for i, f := range b.factors {
			parts[i] = PowOf(f, exp)
		}
		return Product(parts...)
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	if p.exp < 0 {
		return "1/" + powString(p.base, -p.exp)
	}
	return powString(p.base, p.exp)
}

func (p *Pow) Diff(v string) Expr {
	db := p.base.Diff(v)
	if n, ok := db.(*Num); ok && n.isZero() {
		return N(0)
	}
	return Product(N(int64(p.exp)), PowOf(p.base, p.exp-1), db)
}

func (p *Pow) Subs(v string, value Expr) Expr { return PowOf(p.base.Subs(v, value), p.exp) }

func (p *Pow) Equal(other Expr) bool { return other != nil && p.String() == other.String() }
func (*Pow) isExpr()                 {}

// Bind substitutes every named value, in name order.
func Bind(e Expr, values map[string]*Num) Expr {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e = e.Subs(name, values[name])
	}
	return e
}

func splitCoefficient(e Expr) (*big.Rat, Expr) {
	if m, ok := e.(*Mul); ok {
		if n, ok := m.factors[0].(*Num); ok {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return new(big.Rat).Set(n.val), rest[0]
			}
			return new(big.Rat).Set(n.val), &Mul{factors: append([]Expr(nil), rest...)}
		}
	}
	return big.NewRat(1, 1), e
}

func splitPower(e Expr) (Expr, int) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, 1
}

func scale(coef *big.Rat, e Expr) Expr {
	if coef.Cmp(big.NewRat(1, 1)) == 0 {
		return e
	}
	return Product(&Num{val: new(big.Rat).Set(coef)}, e)
}

func powString(base Expr, exp int) string {
	if exp == 1 {
		return wrap(base)
	}
	return wrap(base) + "^" + strconv.Itoa(exp)
}

func wrap(e Expr) string {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return "(" + e.String() + ")"
	case *Num:
		if v.val.Sign() < 0 || !v.val.IsInt() {
			return "(" + v.String() + ")"
		}
	}
	return e.String()
}

func ratPow(r *big.Rat, exp int) *big.Rat {
	if exp < 0 {
		if r.Sign() == 0 {
			panic("symbolic: division by zero")
		}
		r = new(big.Rat).Inv(r)
		exp = -exp
	}
	out := big.NewRat(1, 1)
	base := new(big.Rat).Set(r)
	for exp > 0 {
		if exp&1 == 1 {
			out.Mul(out, base)
		}
		base.Mul(base, base)
		exp >>= 1
	}
	return out
}
