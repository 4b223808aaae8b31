// Package memory provides in-memory implementations of the driven
// storage ports. They mirror the SQLite adapter's semantics closely
// enough for service-level tests without touching disk.
package memory
