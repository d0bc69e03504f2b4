// Package plugin provides the extension system consumed by the lifecycle
// orchestrator.
//
// The Registry maps string keys to capabilities within three extension
// points: preinit plugins contribute command-line arguments before parsing,
// postinit plugins stand up shared runtime state after configuration is
// final, and app plugins implement the dispatchable subcommands. Keys are
// unique within a point but may repeat across points. Discovery is a pure
// read in stable key order; plugin code only runs when a phase explicitly
// invokes it.
//
// The registry is populated at process start from the compiled-in plugin
// manifest, keeping lookup free of runtime reflection: every plugin
// conforms to one of the three explicit capability interfaces.
package plugin
