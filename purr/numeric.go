package purr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalLiteral is the only numeric text ToNumber accepts. Hex floats,
// digit separators and the inf/nan spellings stay strings.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Divide divides two numbers, refusing a zero divisor.
func Divide(a, b Value) (Value, error) {
	x, y, err := numberOperands("divide", a, b)
	if err != nil {
		return Nothing, err
	}
	if y == 0 {
		return Nothing, newError(DivideByZero, "division by zero")
	}
	return NewNumber(x / y), nil
}

// Modulo returns the remainder with the sign of the dividend.
func Modulo(a, b Value) (Value, error) {
	x, y, err := numberOperands("modulo", a, b)
	if err != nil {
		return Nothing, err
	}
	if y == 0 {
		return Nothing, newError(DivideByZero, "modulo by zero")
	}
	return NewNumber(math.Mod(x, y)), nil
}

func numberOperands(op string, a, b Value) (float64, float64, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return 0, 0, typeMismatch("%s expects numbers, got %s and %s", op, a.kind, b.kind)
	}
	return a.Number(), b.Number(), nil
}

// ToNumber converts numbers, decimal strings and booleans.
func ToNumber(v Value) (Value, error) {
	switch v.kind {
	case KindNumber:
		return v, nil
	case KindBool:
		if v.Bool() {
			return NewNumber(1), nil
		}
		return NewNumber(0), nil
	case KindString:
		s := strings.TrimSpace(v.Text())
		if s == "" {
			return Nothing, badConversion("cannot convert empty string to number")
		}
		if !decimalLiteral.MatchString(s) {
			return Nothing, badConversion("cannot convert %q to number", v.Text())
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Nothing, badConversion("cannot convert %q to number", v.Text())
		}
		return NewNumber(n), nil
	default:
		return Nothing, badConversion("cannot convert %s to number", v.kind)
	}
}

// ToText converts any value to a string value through Purrify.
func ToText(v Value) Value {
	if v.kind == KindString {
		return v
	}
	return NewString(Purrify(v))
}
