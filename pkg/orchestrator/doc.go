// Package orchestrator wires the loader, parser, form builder, metadata,
// binder and renderer stages into a single Generate call.
package orchestrator
