package osunative

import "github.com/osu-native/osu-native-go/pkg/osunative/logging"

// Config holds the knobs applied when a Library is opened. The zero value is
// ready to use.
type Config struct {
	// Logger receives lifecycle diagnostics. Leaving it nil binds to
	// slog.Default().
	Logger logging.Logger

	// StrictModSettings makes building a mod collection fail with
	// ErrUnsupportedSetting when a boolean or string setting is present.
	// By default such settings are dropped with a warning because the
	// native library only accepts numeric settings.
	StrictModSettings bool
}

func (c Config) logger() logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.New(nil)
}
