package schema

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Kind is the closed set of value types a parameter can be declared with.
type Kind int

const (
	Invalid Kind = iota
	String
	Integer
	Float
	Boolean
	List
	Set
	Tuple
)

var kindNames = [...]string{
	Invalid: "invalid",
	String:  "string",
	Integer: "integer",
	Float:   "float",
	Boolean: "boolean",
	List:    "list",
	Set:     "set",
	Tuple:   "tuple",
}

func (k Kind) String() string {
	if k < Invalid || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declarable kinds.
func (k Kind) Valid() bool { return k > Invalid && k <= Tuple }

// IsCollection reports whether k holds elements and therefore needs an element kind.
func (k Kind) IsCollection() bool { return k == List || k == Set || k == Tuple }

// IsNumeric reports whether bounds can be declared for k.
func (k Kind) IsNumeric() bool { return k == Integer || k == Float }

// IsEnumerable reports whether an allow-list can be declared for k.
func (k Kind) IsEnumerable() bool { return k == String || k == Integer || k == Boolean }

// Matches reports whether the runtime type of value belongs to k.
//
// Membership is strict: integers never match Float, booleans never match
// Integer, and nil matches nothing. Sets are maps with struct{} values.
func (k Kind) Matches(value any) bool {
	if value == nil {
		return false
	}
	t := reflect.TypeOf(value)
	switch k {
	case String:
		return t.Kind() == reflect.String
	case Integer:
		return isIntegerKind(t.Kind())
	case Float:
		return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	case Boolean:
		return t.Kind() == reflect.Bool
	case List:
		return t.Kind() == reflect.Slice
	case Tuple:
		return t.Kind() == reflect.Array
	case Set:
		return t.Kind() == reflect.Map && t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0
	default:
		return false
	}
}

// KindOf returns the kind value belongs to, or Invalid.
func KindOf(value any) Kind {
	for k := String; k <= Tuple; k++ {
		if k.Matches(value) {
			return k
		}
	}
	return Invalid
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// isNull reports whether value stands for an absent value: untyped nil or a nil pointer.
func isNull(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// toFloat converts any integer or float value to float64.
func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

// elements flattens a collection value. Set members come back sorted by their
// printed form so diagnostics are stable.
func elements(value any) []any {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			out = append(out, k.Interface())
		}
		slices.SortFunc(out, func(a, b any) int {
			return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
		})
		return out
	}
	return nil
}

// sameValue compares allow-list candidates: numbers by numeric value, strings
// and booleans by equality. Values of different classes never match.
func sameValue(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.String:
		return ra.String() == rb.String()
	case reflect.Bool:
		return ra.Bool() == rb.Bool()
	}
	return false
}

func contains(allowed []any, value any) bool {
	return slices.ContainsFunc(allowed, func(a any) bool { return sameValue(a, value) })
}
