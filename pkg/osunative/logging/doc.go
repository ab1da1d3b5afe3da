// Package logging provides a minimal logging facade for the osu-native wrapper.
//
// The Logger interface wraps the subset of log/slog used by the wrapper so
// applications can route diagnostics into their own logging stack:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Default Implementation
//
//	// Use default logger (slog.Default())
//	logger := logging.New(nil)
//
//	// Use custom slog.Logger
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger = logging.New(slog.New(handler))
//
// # What Gets Logged
//
// Native object creation and destruction are logged at debug level with a
// Handle attribute. Failed destroy calls, which cannot be returned to the
// caller, are logged at warn level together with the raw native status. Mod
// settings that cannot be forwarded to the native library are also logged at
// warn level.
//
// Tests that do not care about diagnostics can use Discard.
package logging
