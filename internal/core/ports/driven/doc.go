// Package driven defines the interfaces the core requires from
// infrastructure adapters (storage, config). Implementations live under
// internal/adapters/driven.
package driven
