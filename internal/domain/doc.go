// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (staff.go, celebration.go, events.go, ...) hold shared
// types and cross-cutting interfaces. No implementation code - just contracts.
// Keeping interfaces here, on the consumer side, prevents circular imports.
package domain
