// Package services contains the core application services, orchestrating
// domain logic over the driven ports. Services hold no storage logic of
// their own; adapters are injected at construction.
package services
