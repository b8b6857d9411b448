// Package calc implements the arithmetic engine: a pure mapping from two
// operands and an operator to a Calculation value or a defined error.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// Operator identifies one of the supported arithmetic operations.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Power
	PercentageOf
)

var (
	// ErrDivisionByZero is returned by Evaluate for Divide with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnknownOperator is returned for operator values outside the enumeration.
	// Unreachable for well-typed callers using the exported constants.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrNonFiniteResult is returned when the IEEE-754 result is NaN or ±Inf,
	// e.g. Power with a negative base and fractional exponent, or overflow.
	ErrNonFiniteResult = errors.New("result is not a finite number")
)

// operatorSlugs maps the wire/route spelling of each operator.
var operatorSlugs = map[string]Operator{
	"add":        Add,
	"subtract":   Subtract,
	"multiply":   Multiply,
	"divide":     Divide,
	"power":      Power,
	"percent-of": PercentageOf,
}

// ParseOperator resolves a route slug ("add", "percent-of", ...) to an Operator.
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorSlugs[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
	return op, nil
}

// Slug returns the route spelling of the operator.
func (op Operator) Slug() string {
	for slug, candidate := range operatorSlugs {
		if candidate == op {
			return slug
		}
	}
	return "unknown"
}

// Symbol returns the notation used in display expressions.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	case Power:
		return "^"
	case PercentageOf:
		return "% of"
	default:
		return "?"
	}
}

// Calculation captures one successfully evaluated operation.
type Calculation struct {
	A          float64
	B          float64
	Op         Operator
	Result     float64
	Expression string
}

// Evaluate applies op to the operands and returns the resulting Calculation.
// It is pure: no state is touched, and a failed evaluation produces no
// Calculation. The only defined failures are ErrDivisionByZero,
// ErrUnknownOperator and ErrNonFiniteResult.
func Evaluate(a, b float64, op Operator) (Calculation, error) {
	var result float64

	switch op {
	case Add:
		result = a + b
	case Subtract:
		result = a - b
	case Multiply:
		result = a * b
	case Divide:
		if b == 0 {
			return Calculation{}, fmt.Errorf("%w: %g ÷ %g", ErrDivisionByZero, a, b)
		}
		result = a / b
	case Power:
		result = math.Pow(a, b)
	case PercentageOf:
		result = (a / 100) * b
	default:
		return Calculation{}, fmt.Errorf("%w: %d", ErrUnknownOperator, op)
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return Calculation{}, fmt.Errorf("%w: %s", ErrNonFiniteResult, formatExpression(a, b, op))
	}

	return Calculation{
		A:          a,
		B:          b,
		Op:         op,
		Result:     result,
		Expression: formatExpression(a, b, op),
	}, nil
}

// formatExpression renders the human-readable form, "3 + 4" or "50% of 20".
func formatExpression(a, b float64, op Operator) string {
	if op == PercentageOf {
		return fmt.Sprintf("%g%% of %g", a, b)
	}
	return fmt.Sprintf("%g %s %g", a, op.Symbol(), b)
}
