// Package valueop evaluates the value-operator vocabulary shared by the
// graph query matcher and the flat entity repository: scalar equality,
// list membership, and the {eq, ne, lt, lte, gt, gte, re, empty, length,
// includes} operator-object forms.
package valueop

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// ErrNotImplemented is returned when an operator object's single key is
// not one of the recognised operators.
var ErrNotImplemented = errors.New("operator not implemented")

// ErrInvalidOperator is returned when an operator object carries zero or
// more than one key.
var ErrInvalidOperator = errors.New("operator object must have exactly one key")

var operatorKeys = map[string]struct{}{
	"eq": {}, "ne": {}, "lt": {}, "lte": {}, "gt": {}, "gte": {},
	"re": {}, "empty": {}, "length": {}, "includes": {},
}

// Match evaluates field against value and reports whether it matches.
//
// field is one of:
//   - a scalar v: value == v
//   - a []any of scalars: value is a member of the list
//   - a map[string]any carrying exactly one of the recognised operator
//     keys
func Match(value any, field any) (bool, error) {
	switch f := field.(type) {
	case map[string]any:
		return matchOperator(value, f)
	case []any:
		return matchMembership(value, f), nil
	default:
		return looseEqual(value, field), nil
	}
}

func matchOperator(value any, op map[string]any) (bool, error) {
	if len(op) != 1 {
		return false, ErrInvalidOperator
	}
	for key, arg := range op {
		if _, ok := operatorKeys[key]; !ok {
			return false, fmt.Errorf("%w: %q", ErrNotImplemented, key)
		}
		switch key {
		case "eq":
			return looseEqual(value, arg), nil
		case "ne":
			return !looseEqual(value, arg), nil
		case "lt":
			return compareNumeric(value, arg, func(a, b float64) bool { return a < b }), nil
		case "lte":
			return compareNumeric(value, arg, func(a, b float64) bool { return a <= b }), nil
		case "gt":
			return compareNumeric(value, arg, func(a, b float64) bool { return a > b }), nil
		case "gte":
			return compareNumeric(value, arg, func(a, b float64) bool { return a >= b }), nil
		case "re":
			return matchRegex(value, arg), nil
		case "empty":
			return matchEmpty(value, arg), nil
		case "length":
			return Match(collectionLength(value), arg)
		case "includes":
			return matchIncludes(value, arg), nil
		}
	}
	// Unreachable: the loop above always returns.
	return false, nil
}

// looseEqual compares via reflect.DeepEqual after normalizing numeric
// types, so eq:5 matches both int(5) and float64(5) the way a
// dynamically-typed source would.
func looseEqual(a, b any) bool {
	if af, aok := toFloat64(a); aok {
		if bf, bok := toFloat64(b); bok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func matchMembership(value any, list []any) bool {
	for _, item := range list {
		if looseEqual(value, item) {
			return true
		}
	}
	return false
}

// compareNumeric implements lt/lte/gt/gte. Per spec the contract on
// non-numeric operands is undefined; this implementation returns false.
func compareNumeric(value, arg any, cmp func(a, b float64) bool) bool {
	vf, ok := toFloat64(value)
	if !ok {
		return false
	}
	af, ok := toFloat64(arg)
	if !ok {
		return false
	}
	return cmp(vf, af)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func matchRegex(value, arg any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	var pattern string
	switch p := arg.(type) {
	case string:
		pattern = p
	case *regexp.Regexp:
		return p.MatchString(s)
	default:
		return false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

// matchEmpty implements the documented (and slightly surprising)
// source behaviour: true iff the value's length is zero AND the
// argument itself is truthy. empty:false against an empty collection
// therefore returns false, not true — see DESIGN.md Open Question 1.
func matchEmpty(value any, arg any) bool {
	truthy, ok := arg.(bool)
	if !ok || !truthy {
		return false
	}
	return collectionLength(value) == 0
}

func matchIncludes(value any, arg any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if looseEqual(rv.Index(i).Interface(), arg) {
				return true
			}
		}
	}
	return false
}

// collectionLength returns len(value) for strings, slices, arrays, and
// maps; 0 for anything else (including nil).
func collectionLength(value any) int {
	if value == nil {
		return 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}
