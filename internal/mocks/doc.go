// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused across packages. Each
// mock exposes one function field per interface method; a nil field
// falls through to the embedded default behavior.
package mocks
