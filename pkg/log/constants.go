package log

const (
	// LevelDebug is for logs to be emitted at -v 1.
	// These are not necessary for problem diagnosis, but internal debugging.
	LevelDebug = 1

	// LevelTrace is for logs to be emitted at -v 2.
	// Per-feature and per-pixel driver tracing lives at this level; it is
	// noisy enough that it is never on by default.
	LevelTrace = 2
)
