package schema

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether Min <= v <= Max.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Holds reports whether value is a number inside the range. Integers are
// compared exactly rather than through float64, which rounds above 2^53.
func (b Bounds) Holds(value any) bool {
	rv := reflect.ValueOf(value)
	switch {
	case !rv.IsValid():
		return false
	case rv.CanInt():
		v := rv.Int()
		return compareInt(v, math.Ceil(b.Min)) >= 0 && compareInt(v, math.Floor(b.Max)) <= 0
	case rv.CanUint():
		v := rv.Uint()
		return compareUint(v, math.Ceil(b.Min)) >= 0 && compareUint(v, math.Floor(b.Max)) <= 0
	case rv.CanFloat():
		return b.Contains(rv.Float())
	}
	return false
}

const (
	twoTo63 = float64(1 << 63)
	twoTo64 = float64(1 << 64)
)

// compareInt compares v with an integral float f.
func compareInt(v int64, f float64) int {
	switch {
	case f >= twoTo63:
		return -1
	case f < -twoTo63:
		return 1
	}
	return cmpInt(v, int64(f))
}

// compareUint compares v with an integral float f.
func compareUint(v uint64, f float64) int {
	switch {
	case f < 0:
		return 1
	case f >= twoTo64:
		return -1
	}
	return cmpInt(v, uint64(f))
}

func cmpInt[T int64 | uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%v, %v]", b.Min, b.Max)
}

// Constraint is the full set of rules declared for one payload key.
type Constraint struct {
	Key      string
	Type     Kind
	Element  Kind // Invalid unless Type is a collection
	Required bool
	Bounds   *Bounds
	Allowed  []any
}

// Target returns the kind that bounds and allow-lists apply to: the element
// kind for collections, the value kind otherwise.
func (c Constraint) Target() Kind {
	if c.Type.IsCollection() {
		return c.Element
	}
	return c.Type
}

func (c Constraint) String() string {
	var sb strings.Builder
	sb.WriteString(c.Key)
	sb.WriteString(": ")
	sb.WriteString(c.Type.String())
	if c.Type.IsCollection() {
		fmt.Fprintf(&sb, "<%s>", c.Element)
	}
	if c.Required {
		sb.WriteString(" required")
	}
	if c.Bounds != nil {
		sb.WriteString(" ")
		sb.WriteString(c.Bounds.String())
	}
	if c.Allowed != nil {
		fmt.Fprintf(&sb, " {%s}", joinValues(c.Allowed))
	}
	return sb.String()
}

func (c Constraint) clone() Constraint {
	out := c
	if c.Bounds != nil {
		b := *c.Bounds
		out.Bounds = &b
	}
	if c.Allowed != nil {
		out.Allowed = slices.Clone(c.Allowed)
	}
	return out
}

// ParamOption sets an optional rule on a constraint during registration.
type ParamOption func(*Constraint)

// WithElement declares the element kind of a collection parameter.
func WithElement(k Kind) ParamOption {
	return func(c *Constraint) {
		c.Element = k
	}
}

// WithBounds declares an inclusive numeric range for the parameter, or for
// each of its elements when it is a collection.
func WithBounds(min, max float64) ParamOption {
	return func(c *Constraint) {
		c.Bounds = &Bounds{Min: min, Max: max}
	}
}

// WithAllowed declares the fixed set of acceptable values.
func WithAllowed(values ...any) ParamOption {
	return func(c *Constraint) {
		c.Allowed = append([]any{}, values...)
	}
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
