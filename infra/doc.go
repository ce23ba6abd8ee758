// Package infra contains technical adapters such as metrics sinks, the
// fleet file loader and the zerolog logger. These packages depend only on
// the interfaces defined in the core packages.
package infra
