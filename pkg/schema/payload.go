package schema

import (
	"iter"
	"maps"
	"slices"
)

// Payload is an insertion-ordered mapping of parameter names to values.
// A nil value marks the parameter as present but absent. The zero value is
// an empty payload ready to use.
type Payload struct {
	keys   []string
	values map[string]any
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

// FromMap builds a payload from m, ordering keys lexically.
func FromMap(m map[string]any) *Payload {
	p := &Payload{values: make(map[string]any, len(m))}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		p.Set(key, m[key])
	}
	return p
}

// Set stores value under key. Overwriting keeps the key's original position.
func (p *Payload) Set(key string, value any) *Payload {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key and whether the key is present.
func (p *Payload) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present, even with a nil value.
func (p *Payload) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (p *Payload) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Len returns the number of keys.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// All iterates key/value pairs in insertion order.
func (p *Payload) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if p == nil {
			return
		}
		for _, key := range p.keys {
			if !yield(key, p.values[key]) {
				return
			}
		}
	}
}

// Map returns an unordered copy of the payload.
func (p *Payload) Map() map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return maps.Clone(p.values)
}
