// Package domain contains the core business entities for the slip store.
// It has no dependencies on adapters or external services, following
// hexagonal architecture principles.
package domain
