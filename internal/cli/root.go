// Package cli implements the salat command line.
package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/salat/internal/config"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagCountry    string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagUTCOffset  float64
	FlagMethod     string
	FlagSchool     string
	FlagSource     string
	FlagDST        string
	FlagJSON       bool
	FlagCacheDir   string
	FlagTimeFormat string
	FlagVerbose    bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// logger writes diagnostics to stderr. Warnings only, unless --verbose.
var logger = zerolog.Nop()

// NewRootCmd creates the root command for the salat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salat",
		Short:   "Islamic prayer times CLI",
		Long:    "Calculates Islamic prayer times offline from the sun's position.\nTimes can also be fetched from the Al Adhan API with --source remote.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cmd.ErrOrStderr(), FlagVerbose)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude in degrees (north positive)")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude in degrees (east positive)")
	pf.Float64Var(&FlagUTCOffset, "utc-offset", 0, "Standard UTC offset in hours, without DST (default: from the location's timezone)")
	pf.StringVar(&FlagMethod, "method", "", "Override calculation method (see 'salat methods')")
	pf.StringVar(&FlagSchool, "school", "", "Override Asr school: shafi or hanafi")
	pf.StringVar(&FlagSource, "source", "", "Where times come from: local or remote")
	pf.StringVar(&FlagDST, "dst", "", "Daylight saving rule: north-america or none")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/salat/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log calculation details to stderr")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newMetricsCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("salat %s\n", version)
}

// newLogger returns a human-readable logger on w.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
// Values are validated by the caller when they are used.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "latitude") {
		lat := FlagLatitude
		cfg.Latitude = &lat
	}
	if flagWasSet(flags, root, "longitude") {
		lon := FlagLongitude
		cfg.Longitude = &lon
	}
	if flagWasSet(flags, root, "utc-offset") {
		off := FlagUTCOffset
		cfg.UTCOffset = &off
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}

	cfg.Method = pick(flags, root, "method", FlagMethod, cfg.Method, defaults.Method)
	cfg.School = pick(flags, root, "school", FlagSchool, cfg.School, defaults.School)
	cfg.Source = pick(flags, root, "source", FlagSource, cfg.Source, defaults.Source)
	cfg.DST = pick(flags, root, "dst", FlagDST, cfg.DST, defaults.DST)
	cfg.TimeFormat = pick(flags, root, "time-format", FlagTimeFormat, cfg.TimeFormat, defaults.TimeFormat)

	return &cfg
}

// pick returns the flag value if it was set, else the config value, else def.
func pick(local, persistent *pflag.FlagSet, name, flagVal, cfgVal, def string) string {
	if flagWasSet(local, persistent, name) {
		return flagVal
	}
	if cfgVal != "" {
		return cfgVal
	}
	return def
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// timeLayout returns the Go layout for the configured time format.
func timeLayout(cfg *config.Config) string {
	if cfg.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
