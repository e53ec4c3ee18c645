// Package observe instruments the shopkit stores with Prometheus
// metrics and OpenTelemetry traces. Stores stay decoupled from the
// instrumentation: they accept plain hook functions, and this package
// provides hooks that record into a registry plus span helpers for the
// async operations.
package observe
