package game

// Options configures a game instance.
type Options struct {
	Seed      int64  // Scene RNG seed; remounts derive theirs from it
	LogStats  bool   // Emit periodic perf lines via slog
	OutputDir string // CSV and config snapshot directory (empty = disabled)
	Headless  bool   // No window, renderer or input
}

// Input tuning.
const (
	orbitSensitivity = 0.005 // Radians per pixel of drag
	zoomStep         = 0.1   // Distance change per wheel notch
	clickSlop        = 5     // Max drag in pixels still treated as a click
)
