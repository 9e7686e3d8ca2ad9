// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The central component is the TaskService, the authoritative lifecycle
// manager for generation tasks. It is the only writer to the task store and
// serializes mutations per task ID, so two concurrent updates to the same
// task apply atomically and in a total order while operations on different
// tasks never block each other.
//
// Services receive dependencies through constructor injection and translate
// domain-specific errors to application-level errors, but never depend on
// specific infrastructure implementations.
package service
