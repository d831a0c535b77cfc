// Package algebra holds a small symbolic expression tree and matrices built
// on top of it. Expressions are immutable; every operation returns a new
// value and folds numeric constants as it goes, so substituting all free
// symbols always collapses an expression into a single number.
package algebra

import (
	"fmt"
	"maps"
	m "math"
	"slices"
	"strconv"
	"strings"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
)

// Bindings maps a symbol name onto the value substituted for it.
type Bindings map[string]float64

// With returns a copy of b where name is bound to value.
func (b Bindings) With(name string, value float64) Bindings {
	out := make(Bindings, len(b)+1)
	maps.Copy(out, b)
	out[name] = value
	return out
}

// Merge returns a copy holding b and all others, later sets winning.
func (b Bindings) Merge(others ...Bindings) Bindings {
	out := make(Bindings, len(b))
	maps.Copy(out, b)
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Expr is a node of a symbolic expression.
type Expr interface {
	// Subs replaces every bound symbol and folds whatever became constant.
	Subs(b Bindings) Expr
	String() string
	LaTeX() string

	symbols(set map[string]struct{})
}

// Num is a numeric leaf.
type Num float64

// N wraps a float as an expression.
func N(v float64) Expr {
	return Num(v)
}

func (n Num) Subs(Bindings) Expr { return n }

func (n Num) String() string { return formatNum(float64(n)) }

func (n Num) LaTeX() string { return formatNum(float64(n)) }

func (Num) symbols(map[string]struct{}) {}

func formatNum(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Symbol is a named unknown. Tex is used when rendering LaTeX.
type Symbol struct {
	Name string
	Tex  string
}

func NewSymbol(name, tex string) *Symbol {
	if tex == "" {
		tex = name
	}
	return &Symbol{Name: name, Tex: tex}
}

func (s *Symbol) Subs(b Bindings) Expr {
	if v, ok := b[s.Name]; ok {
		return Num(v)
	}
	return s
}

func (s *Symbol) String() string { return s.Name }

func (s *Symbol) LaTeX() string { return s.Tex }

func (s *Symbol) symbols(set map[string]struct{}) { set[s.Name] = struct{}{} }

type sum []Expr

// Add returns the sum of terms. Nested sums are flattened and numeric terms
// are folded into a single trailing constant.
func Add(terms ...Expr) Expr {
	var c float64
	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		switch v := t.(type) {
		case Num:
			c += float64(v)
		case sum:
			for _, inner := range v {
				if n, ok := inner.(Num); ok {
					c += float64(n)
				} else {
					out = append(out, inner)
				}
			}
		default:
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return Num(c)
	}
	if c != 0 {
		out = append(out, Num(c))
	}
	if len(out) == 1 {
		return out[0]
	}
	return sum(out)
}

// Sub returns a - b.
func Sub(a, b Expr) Expr {
	return Add(a, Neg(b))
}

func (s sum) Subs(b Bindings) Expr {
	terms := make([]Expr, len(s))
	for i, t := range s {
		terms[i] = t.Subs(b)
	}
	return Add(terms...)
}

func (s sum) String() string {
	return joinTerms(s, Expr.String)
}

func (s sum) LaTeX() string {
	return joinTerms(s, Expr.LaTeX)
}

func joinTerms(terms []Expr, render func(Expr) string) string {
	var sb strings.Builder
	for i, t := range terms {
		str := render(t)
		if i > 0 {
			if rest, ok := strings.CutPrefix(str, "-"); ok {
				sb.WriteString(" - ")
				str = rest
			} else {
				sb.WriteString(" + ")
			}
		}
		sb.WriteString(str)
	}
	return sb.String()
}

func (s sum) symbols(set map[string]struct{}) {
	for _, t := range s {
		t.symbols(set)
	}
}

type product []Expr

// Mul returns the product of factors. Numeric factors are folded into a
// single leading coefficient; a zero coefficient annihilates the product.
func Mul(factors ...Expr) Expr {
	c := 1.0
	out := make([]Expr, 0, len(factors))
	for _, f := range factors {
		switch v := f.(type) {
		case Num:
			c *= float64(v)
		case product:
			for _, inner := range v {
				if n, ok := inner.(Num); ok {
					c *= float64(n)
				} else {
					out = append(out, inner)
				}
			}
		default:
			out = append(out, f)
		}
	}
	if c == 0 || len(out) == 0 {
		return Num(c)
	}
	if c != 1 {
		out = append([]Expr{Num(c)}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return product(out)
}

// Neg returns -e.
func Neg(e Expr) Expr {
	return Mul(Num(-1), e)
}

func (p product) Subs(b Bindings) Expr {
	factors := make([]Expr, len(p))
	for i, f := range p {
		factors[i] = f.Subs(b)
	}
	return Mul(factors...)
}

func (p product) String() string {
	parts := make([]string, 0, len(p))
	prefix := ""
	for i, f := range p {
		if n, ok := f.(Num); ok && i == 0 && n == -1 {
			prefix = "-"
			continue
		}
		switch f.(type) {
		case sum, quotient:
			parts = append(parts, "("+f.String()+")")
		default:
			parts = append(parts, f.String())
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (p product) LaTeX() string {
	parts := make([]string, 0, len(p))
	prefix := ""
	for i, f := range p {
		if n, ok := f.(Num); ok && i == 0 && n == -1 {
			prefix = "-"
			continue
		}
		if _, ok := f.(sum); ok {
			parts = append(parts, `\left(`+f.LaTeX()+`\right)`)
			continue
		}
		parts = append(parts, f.LaTeX())
	}
	return prefix + strings.Join(parts, " ")
}

func (p product) symbols(set map[string]struct{}) {
	for _, f := range p {
		f.symbols(set)
	}
}

type quotient struct {
	num, den Expr
}

// Div returns num / den. A numeric zero denominator is kept unevaluated so
// the failure surfaces when the value is requested.
func Div(num, den Expr) Expr {
	if d, ok := den.(Num); ok && d != 0 {
		if n, ok := num.(Num); ok {
			return Num(n / d)
		}
		if d == 1 {
			return num
		}
		return Mul(Num(1/d), num)
	}
	if n, ok := num.(Num); ok && n == 0 {
		if _, numeric := den.(Num); !numeric {
			return Num(0)
		}
	}
	return quotient{num: num, den: den}
}

func (q quotient) Subs(b Bindings) Expr {
	return Div(q.num.Subs(b), q.den.Subs(b))
}

func (q quotient) String() string {
	return parens(q.num) + "/" + parens(q.den)
}

func (q quotient) LaTeX() string {
	return `\frac{` + q.num.LaTeX() + `}{` + q.den.LaTeX() + `}`
}

func (q quotient) symbols(set map[string]struct{}) {
	q.num.symbols(set)
	q.den.symbols(set)
}

func parens(e Expr) string {
	switch v := e.(type) {
	case *Symbol, function:
		return e.String()
	case Num:
		if v >= 0 {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

type funcKind uint8

const (
	funcSin funcKind = iota
	funcCos
	funcSqrt
)

type function struct {
	kind funcKind
	arg  Expr
}

func Sin(e Expr) Expr {
	if n, ok := e.(Num); ok {
		return Num(m.Sin(float64(n)))
	}
	return function{kind: funcSin, arg: e}
}

func Cos(e Expr) Expr {
	if n, ok := e.(Num); ok {
		return Num(m.Cos(float64(n)))
	}
	return function{kind: funcCos, arg: e}
}

// Sqrt folds non-negative constants only; a negative constant stays
// unevaluated and fails with ErrDomain when its value is requested.
func Sqrt(e Expr) Expr {
	if n, ok := e.(Num); ok && n >= 0 {
		return Num(m.Sqrt(float64(n)))
	}
	return function{kind: funcSqrt, arg: e}
}

func (f function) Subs(b Bindings) Expr {
	arg := f.arg.Subs(b)
	switch f.kind {
	case funcSin:
		return Sin(arg)
	case funcCos:
		return Cos(arg)
	default:
		return Sqrt(arg)
	}
}

func (f function) String() string {
	switch f.kind {
	case funcSin:
		return "sin(" + f.arg.String() + ")"
	case funcCos:
		return "cos(" + f.arg.String() + ")"
	default:
		return "sqrt(" + f.arg.String() + ")"
	}
}

func (f function) LaTeX() string {
	switch f.kind {
	case funcSin:
		return `\sin{\left(` + f.arg.LaTeX() + ` \right)}`
	case funcCos:
		return `\cos{\left(` + f.arg.LaTeX() + ` \right)}`
	default:
		return `\sqrt{` + f.arg.LaTeX() + `}`
	}
}

func (f function) symbols(set map[string]struct{}) { f.arg.symbols(set) }

// Symbols lists the free symbols of e in lexical order.
func Symbols(e Expr) []string {
	set := make(map[string]struct{})
	e.symbols(set)
	return slices.Sorted(maps.Keys(set))
}

// Value returns the number e has collapsed into. It fails with
// ErrUnboundSymbol while symbols remain, with ErrDivisionByZero when a
// denominator evaluated to zero and with ErrDomain otherwise.
func Value(e Expr) (float64, error) {
	if n, ok := e.(Num); ok {
		return float64(n), nil
	}
	if syms := Symbols(e); len(syms) > 0 {
		return 0, fmt.Errorf("%w: %s", core.ErrUnboundSymbol, strings.Join(syms, ", "))
	}
	if hasZeroDenominator(e) {
		return 0, core.ErrDivisionByZero
	}
	return 0, fmt.Errorf("%w: %s", core.ErrDomain, e)
}

func hasZeroDenominator(e Expr) bool {
	switch v := e.(type) {
	case quotient:
		if d, ok := v.den.(Num); ok && d == 0 {
			return true
		}
		return hasZeroDenominator(v.num) || hasZeroDenominator(v.den)
	case sum:
		return slices.ContainsFunc(v, hasZeroDenominator)
	case product:
		return slices.ContainsFunc(v, hasZeroDenominator)
	case function:
		return hasZeroDenominator(v.arg)
	}
	return false
}

// Round rounds a numeric expression to precision decimals. Anything still
// symbolic is returned untouched.
func Round(e Expr, precision int) Expr {
	if n, ok := e.(Num); ok {
		return Num(math.RoundTo(float64(n), precision))
	}
	return e
}

// EvaluateScalar substitutes b into e and rounds the result.
func EvaluateScalar(e Expr, b Bindings, precision int) (float64, error) {
	v, err := Value(e.Subs(b))
	if err != nil {
		return 0, err
	}
	return math.RoundTo(v, precision), nil
}
