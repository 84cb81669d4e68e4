// Package config holds the runtime configuration shared by the gosc
// commands, populated from flags and environment variables.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config carries the settings for the cipher and eval commands.
type Config struct {
	// Seed derives the key; key length is 4 bits per UTF-8 byte of seed.
	Seed string

	// Key is an explicit key bit string and takes precedence over Seed.
	Key string

	// Input is the message or ciphertext as a '0'/'1' bit string.
	Input string `validate:"excluded_with=InputHex"`

	// InputHex is the message or ciphertext as hex-encoded bytes,
	// unpacked most significant bit first.
	InputHex string `mapstructure:"input-hex"`

	// Hex switches keygen output to hex of the packed key bytes.
	Hex bool

	// Parallel bounds concurrent evaluation trials.
	Parallel int `validate:"omitempty,min=1"`

	// Quiet suppresses non-error diagnostics; Verbose enables debug ones.
	Quiet   bool
	Verbose bool

	// Evaluation harness knobs.
	Trials          int   `validate:"omitempty,min=1"`
	CollisionTrials int   `mapstructure:"collision-trials" validate:"omitempty,min=1"`
	Reps            int   `validate:"omitempty,min=1"`
	SeedSizes       []int `mapstructure:"seed-sizes"`
	Baseline        bool

	// Decrypt is set by the decrypt command, not a flag.
	Decrypt bool
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}
