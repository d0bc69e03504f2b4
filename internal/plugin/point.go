package plugin

// Point identifies a registry partition, one per lifecycle extension point.
type Point int

const (
	// PointPreinit plugins run before argument parsing to contribute flags
	// and subcommands.
	PointPreinit Point = iota
	// PointPostinit plugins run after configuration is final to stand up
	// shared runtime state.
	PointPostinit
	// PointApp plugins are the dispatchable subcommands.
	PointApp
)

// String returns the extension point's registry name.
func (p Point) String() string {
	switch p {
	case PointPreinit:
		return "preinit"
	case PointPostinit:
		return "postinit"
	case PointApp:
		return "app"
	default:
		return "unknown"
	}
}
