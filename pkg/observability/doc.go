/*
Package observability provides tools for monitoring payload validation.

It includes lifecycle hooks invoked after every validation, structured logging
of outcomes, Prometheus metrics, and a hook that records rejected payloads in a
ports.FailureJournal.
*/
package observability
