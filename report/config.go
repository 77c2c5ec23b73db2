package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/scopeprof/profiler"
)

// Format represents the report output format.
type Format string

const (
	// FormatText outputs the indented text table.
	FormatText Format = "text"
	// FormatYAML outputs the report rows as YAML.
	FormatYAML Format = "yaml"
	// FormatJSON outputs the report rows as JSON.
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat indicates an unrecognized report format string.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrWriteOutput indicates the report could not be written.
	ErrWriteOutput = errors.New("write report output")
)

// GetFormat parses a report format string and returns the corresponding
// [Format].
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatText, FormatYAML, FormatJSON}, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// GetAllFormatStrings returns all valid format strings.
func GetAllFormatStrings() []string {
	return []string{string(FormatText), string(FormatYAML), string(FormatJSON)}
}

// Encode renders snap to w in the given format.
func Encode(w io.Writer, snap profiler.Snapshot, format Format) error {
	switch format {
	case FormatText:
		return Write(w, snap)

	case FormatYAML:
		out, err := yaml.Marshal(Rows(snap))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		_, err = w.Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil

	case FormatJSON:
		out, err := json.MarshalIndent(Rows(snap), "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		out = append(out, '\n')

		_, err = w.Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Flags holds CLI flag names for report configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Format string
	Output string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for report configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.WriteSnapshot] to render a snapshot
// according to the configured format and destination.
type Config struct {
	Format string
	Output string
	Flags  Flags
}

// NewConfig returns a new [Config] with default flag names.
// Use [Config.RegisterFlags] to add CLI flags, or set values directly.
func NewConfig() *Config {
	f := Flags{
		Format: "report-format",
		Output: "report-output",
	}

	return f.NewConfig()
}

// RegisterFlags adds report flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Format, c.Flags.Format, string(FormatText),
		fmt.Sprintf("report format, one of: %s", GetAllFormatStrings()))
	flags.StringVar(&c.Output, c.Flags.Output, "-",
		"report output path (- for stdout)")
}

// RegisterCompletions registers shell completions for report flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// WriteSnapshot renders snap with the configured format to the configured
// output path ("-" or empty for stdout).
func (c *Config) WriteSnapshot(snap profiler.Snapshot) error {
	format, err := GetFormat(c.Format)
	if err != nil {
		return err
	}

	if c.Output == "" || c.Output == "-" {
		return Encode(os.Stdout, snap, format)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = Encode(f, snap, format)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
