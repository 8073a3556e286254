package rpprof

import (
	"github.com/google/uuid"

	"github.com/tikv/rp-prof/internal/core"
	"github.com/tikv/rp-prof/internal/logging"
)

const defaultFrequencyHz = 99

// Builder configures a profiling session. The zero value is not usable;
// construct one with NewBuilder, which fills in the defaults.
type Builder struct {
	frequencyHz int
	blocklist   []string
	logConfig   logging.Config
}

// NewBuilder returns a Builder defaulted to 99 Hz with no blocklist,
// matching the reference implementation's defaults.
func NewBuilder() *Builder {
	return &Builder{
		frequencyHz: defaultFrequencyHz,
		logConfig:   logging.DefaultConfig(),
	}
}

// Frequency sets the sampling frequency in Hz, must be in [1, 1000].
// Out-of-range values are validated at Build time, not here, so calls can be
// chained freely.
func (b *Builder) Frequency(hz int) *Builder {
	b.frequencyHz = hz
	return b
}

// Blocklist sets the library path substrings whose address ranges must be
// excised from samples.
func (b *Builder) Blocklist(substrings []string) *Builder {
	b.blocklist = substrings
	return b
}

// WithLogConfig overrides the logger configuration used by the profiler's
// non-signal-path components. Unset, it defaults to logging.DefaultConfig().
func (b *Builder) WithLogConfig(cfg logging.Config) *Builder {
	b.logConfig = cfg
	return b
}

// Build starts the profiler and returns a Guard owning it. Only one Guard
// may be active process-wide at a time; a second concurrent Build fails
// with rperrors.ErrAlreadyRunning.
func (b *Builder) Build() (*Guard, error) {
	logger := logging.New(b.logConfig)
	c := core.New(logger)

	if err := c.Start(b.frequencyHz, b.blocklist); err != nil {
		return nil, err
	}

	return &Guard{
		core:      c,
		sessionID: uuid.New(),
		logger:    logger.With().Str("component", "guard").Logger(),
	}, nil
}
