package runprof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for runtime profiling configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	CPUProfile  string
	HeapProfile string

	BlockProfile     string
	BlockProfileRate string

	MutexProfile         string
	MutexProfileFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds runtime profiling configuration: output paths (empty =
// disabled) and sampling rates. A zero-value Config has all profiles
// disabled.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewSession] to create a [Session] that
// executes the profiling.
type Config struct {
	Flags Flags

	CPUProfile  string
	HeapProfile string

	BlockProfile     string
	BlockProfileRate int

	MutexProfile         string
	MutexProfileFraction int
}

// NewConfig returns a new [Config] with default flag names and all profiles
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:           "cpu-profile",
		HeapProfile:          "heap-profile",
		BlockProfile:         "block-profile",
		BlockProfileRate:     "block-profile-rate",
		MutexProfile:         "mutex-profile",
		MutexProfileFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// RegisterFlags adds runtime profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write heap profile to file")
	flags.StringVar(&c.BlockProfile, c.Flags.BlockProfile, "", "write block profile to file")
	flags.StringVar(&c.MutexProfile, c.Flags.MutexProfile, "", "write mutex profile to file")

	flags.IntVar(&c.BlockProfileRate, c.Flags.BlockProfileRate, 1,
		"block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexProfileFraction, c.Flags.MutexProfileFraction, 1,
		"mutex profile fraction (1/N sampling)")
}

// NewSession creates a new [Session] using this [Config].
func (c *Config) NewSession() *Session {
	return &Session{
		Config: *c,
	}
}

// Session controls the lifecycle of one runtime profiling run.
//
// Call [Session.Start] before the profiled work and [Session.Stop] after it
// to write all enabled profiles.
type Session struct {
	cpuFile *os.File
	Config
}

// Start configures profiling rates and starts CPU profiling if enabled.
func (s *Session) Start() error {
	if s.BlockProfile != "" {
		runtime.SetBlockProfileRate(s.BlockProfileRate)
	}

	if s.MutexProfile != "" {
		runtime.SetMutexProfileFraction(s.MutexProfileFraction)
	}

	if s.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(s.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("starting CPU profile: %w", err)
	}

	s.cpuFile = f

	return nil
}

// Stop stops CPU profiling and writes all enabled snapshot profiles.
func (s *Session) Stop() error {
	if s.cpuFile != nil {
		pprof.StopCPUProfile()

		err := s.cpuFile.Close()
		s.cpuFile = nil

		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", s.HeapProfile},
		{"block", s.BlockProfile},
		{"mutex", s.MutexProfile},
	}

	for _, p := range snapshots {
		if p.path == "" {
			continue
		}

		err := writeProfile(p.name, p.path)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeProfile writes a named pprof snapshot profile to path.
func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("write %s profile: %w", name, err)
	}

	return nil
}
