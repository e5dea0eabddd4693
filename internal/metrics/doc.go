// Package metrics defines the Prometheus collectors used across the
// application. All collectors are registered at package init via promauto
// and exported as package-level variables, grouped by subsystem.
package metrics
