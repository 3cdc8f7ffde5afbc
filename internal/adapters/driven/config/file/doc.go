// Package file provides a TOML-backed configuration store.
//
// The file uses ordinary TOML tables; keys are exposed to the core in
// dot notation, so
//
//	[training]
//	refresh_days = 730
//
// reads as "training.refresh_days".
package file
