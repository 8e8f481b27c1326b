/*
Package ports defines the driven ports (interfaces) that validation adapters
plug into.

These interfaces keep the catalog and transports independent of any storage
backend.

# Key Interfaces

  - FailureJournal: keeps recent rejected payload diagnostics per schema
    (e.g., in memory or in Redis).
*/
package ports
