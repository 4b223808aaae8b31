// Package driving defines the interfaces the core offers to its callers
// (the CLI today; originally a GUI, hotkey and URL-scheme layer). Callers
// invoke operations and re-query afterwards; the core pushes nothing.
package driving
