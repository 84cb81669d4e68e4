package commands

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvbarbosa/gosc/internal/config"
)

// Execute runs the root command with the given version string.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "gosc [flags] command [flags]",
		Short: "Seed-derived bit cipher utility",
		Long: `A pedagogical symmetric cipher on bit sequences. A seed expands into a key
of 4 bits per seed byte through counter-mode SHA-256; encryption applies six
rounds of keyed XOR and position permutation. Provides commands for key
expansion, encryption, decryption, and a statistical evaluation harness.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")

	root.AddCommand(NewKeygenCmd(), NewEncryptCmd(), NewDecryptCmd(), NewEvalCmd())

	return root
}

// bindFlags binds the command's flags (and the root's persistent flags) to
// viper so they can be overridden through GOSC_* environment variables.
func bindFlags(cmd *cobra.Command, _ []string) error {
	viper.SetEnvPrefix("gosc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("binding persistent flags: %w", err)
	}

	return nil
}

// loadConfig unmarshals all config (from env vars and flags) into a struct
// and validates it.
func loadConfig() (config.Config, error) {
	var cfg config.Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// newLogger builds the console logger for command diagnostics. Report
// output goes to stdout; diagnostics stay on stderr.
func newLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.InfoLevel

	switch {
	case cfg.Quiet:
		level = zerolog.ErrorLevel
	case cfg.Verbose:
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
