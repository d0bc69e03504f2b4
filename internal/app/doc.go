// Package app contains the lifecycle orchestrator. It drives one process
// invocation through its phases, from plugin discovery to app dispatch, and
// owns the error and exit-code policy. It is decoupled from any specific
// entrypoint like a CLI or server.
package app
