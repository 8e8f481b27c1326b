package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Schema is a frozen set of parameter declarations built by a Builder.
// It has no mutators and is safe for concurrent use.
type Schema struct {
	order       []string
	constraints map[string]Constraint
	opts        options
}

// Keys returns the declared keys in declaration order.
func (s *Schema) Keys() []string {
	return slices.Clone(s.order)
}

// Len returns the number of declared keys.
func (s *Schema) Len() int { return len(s.order) }

// Constraint returns a copy of the rules declared for key.
func (s *Schema) Constraint(key string) (Constraint, bool) {
	c, ok := s.constraints[key]
	if !ok {
		return Constraint{}, false
	}
	return c.clone(), true
}

// Constraints returns copies of every declaration in declaration order.
func (s *Schema) Constraints() []Constraint {
	out := make([]Constraint, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.constraints[key].clone())
	}
	return out
}

// Validate checks p against the schema.
//
// A payload that omits declared keys is a caller mistake and yields a
// *ValidationSetupError. Every other outcome is reported through the Result:
// required keys holding nil, then keys the schema does not declare, then the
// per-key rules in payload order. The first failing key wins.
func (s *Schema) Validate(p *Payload) (Result, error) {
	if missing := s.uncovered(p); len(missing) > 0 {
		return Result{}, &ValidationSetupError{Missing: missing}
	}

	if keys := s.requiredNulls(p); len(keys) > 0 {
		return Fail(&Failure{
			Status:  StatusBadRequest,
			Code:    CodeMissingRequiredParam,
			Keys:    keys,
			Message: fmt.Sprintf(MsgMissingRequiredParam, strings.Join(keys, ",")),
		}), nil
	}

	for key := range p.All() {
		if _, ok := s.constraints[key]; !ok {
			return Fail(&Failure{
				Status:  StatusInternalError,
				Code:    CodeUnknownParam,
				Key:     key,
				Message: fmt.Sprintf(MsgUnknownParam, key),
			}), nil
		}
	}

	for key, value := range p.All() {
		c := s.constraints[key]
		if isNull(value) && !c.Required {
			continue
		}
		if f := s.check(c, value); f != nil {
			return Fail(f), nil
		}
	}

	return Ok(), nil
}

// ValidateMap validates m with its keys visited in lexical order.
func (s *Schema) ValidateMap(m map[string]any) (Result, error) {
	return s.Validate(FromMap(m))
}

func (s *Schema) uncovered(p *Payload) []string {
	var missing []string
	for _, key := range s.order {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

func (s *Schema) requiredNulls(p *Payload) []string {
	var keys []string
	for key, value := range p.All() {
		if c, ok := s.constraints[key]; ok && c.Required && isNull(value) {
			keys = append(keys, key)
		}
	}
	return keys
}

func (s *Schema) check(c Constraint, value any) *Failure {
	if !c.Type.Matches(value) {
		return &Failure{
			Status:    StatusBadRequest,
			Code:      CodeBadParamType,
			Key:       c.Key,
			Offenders: []any{value},
			Message:   fmt.Sprintf(MsgBadParamType, c.Key, c.Type, typeName(value)),
		}
	}

	if c.Type.IsNumeric() && c.Bounds != nil {
		if !c.Bounds.Holds(value) {
			return boundaryFailure(c, []any{value})
		}
	}

	if !c.Type.IsCollection() {
		if s.opts.scalarAllowList && c.Allowed != nil && !contains(c.Allowed, value) {
			return constraintFailure(c, []any{value})
		}
		return nil
	}

	elems := elements(value)

	threshold := 2
	if s.opts.strictElements {
		threshold = 1
	}
	var mismatched []any
	for _, e := range elems {
		if !c.Element.Matches(e) {
			mismatched = append(mismatched, e)
		}
	}
	if len(mismatched) >= threshold {
		return &Failure{
			Status:    StatusBadRequest,
			Code:      CodeBadParamInnerType,
			Key:       c.Key,
			Offenders: mismatched,
			Message:   fmt.Sprintf(MsgBadParamInnerType, c.Key, c.Element, joinValues(mismatched)),
		}
	}

	if c.Allowed != nil {
		var offenders []any
		for _, e := range elems {
			if !contains(c.Allowed, e) {
				offenders = append(offenders, e)
			}
		}
		if len(offenders) > 0 {
			return constraintFailure(c, offenders)
		}
	}

	if c.Bounds != nil {
		var offenders []any
		for _, e := range elems {
			// elements that are not numbers cannot sit inside the range
			if !c.Bounds.Holds(e) {
				offenders = append(offenders, e)
			}
		}
		if len(offenders) > 0 {
			return boundaryFailure(c, offenders)
		}
	}

	return nil
}

func boundaryFailure(c Constraint, offenders []any) *Failure {
	return &Failure{
		Status:    StatusBadRequest,
		Code:      CodeBadParamBoundary,
		Key:       c.Key,
		Offenders: offenders,
		Message:   fmt.Sprintf(MsgBadParamBoundary, c.Key, c.Bounds.Min, c.Bounds.Max, joinValues(offenders)),
	}
}

func constraintFailure(c Constraint, offenders []any) *Failure {
	return &Failure{
		Status:    StatusBadRequest,
		Code:      CodeFailedConstrainsParam,
		Key:       c.Key,
		Offenders: offenders,
		Message:   fmt.Sprintf(MsgFailedConstrainsParam, c.Key, joinValues(c.Allowed), joinValues(offenders)),
	}
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
