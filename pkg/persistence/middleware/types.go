// Package middleware wraps failure journals with record transformations.
package middleware

import "github.com/aretw0/paramspec/pkg/ports"

// Middleware allows wrapping a FailureJournal to add behavior.
type Middleware func(ports.FailureJournal) ports.FailureJournal

// Chain applies mws to j so that the first middleware sees records first.
func Chain(j ports.FailureJournal, mws ...Middleware) ports.FailureJournal {
	for i := len(mws) - 1; i >= 0; i-- {
		j = mws[i](j)
	}
	return j
}
