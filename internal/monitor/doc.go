// Package monitor ties the transport network to the live passenger feed. It is
// structured into small files by concern:
//
//   - monitor.go: core Monitor type, constructor, Init and read-only queries.
//   - config.go: Config and package defaults; New applies defaults.
//   - types.go: lifecycle State and Snapshot.
//   - errors.go: error types and helpers (IsNotReady).
//   - run.go: the connect, subscribe and reconnect loop; message handling.
//   - events.go, eventpub_memory.go: lifecycle events and an in-memory publisher.
//   - metrics.go: Prometheus collectors.
//   - status_report.go: Status/Snapshot reporting for /status.
//
// External packages should use the public methods only (New, Init, Run, Ready,
// Status and the station and travel-time queries).
package monitor
