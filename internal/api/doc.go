// Package api contains the HTTP layer: request/response DTOs, handlers
// for the task lifecycle and export pipeline, error-to-status mapping,
// and router construction. Handlers translate transport concerns into
// service calls and never contain business rules.
package api
