// Package domain contains the core business entities of the application:
// generation tasks, their lifecycle state machine, and the articles a task
// produces. Entities validate themselves and centralize all status
// transition rules, so no other layer compares status strings directly.
package domain
