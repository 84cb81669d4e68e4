package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	hexkey "github.com/idelchi/gogen/pkg/key"

	"github.com/mvbarbosa/gosc/internal/cipher"
	"github.com/mvbarbosa/gosc/internal/config"
	"github.com/mvbarbosa/gosc/pkg/bitseq"
)

// NewEncryptCmd creates the encrypt command.
func NewEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "encrypt",
		Aliases:           []string{"enc"},
		Short:             "Encrypt a bit sequence",
		PersistentPreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return runCipher(cmd, cfg)
		},
	}

	addCipherFlags(cmd)

	return cmd
}

// NewDecryptCmd creates the decrypt command.
func NewDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "decrypt",
		Aliases:           []string{"dec"},
		Short:             "Decrypt a bit sequence",
		PersistentPreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cfg.Decrypt = true

			return runCipher(cmd, cfg)
		},
	}

	addCipherFlags(cmd)

	return cmd
}

func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("seed", "s", "", "Seed to derive the key from")
	cmd.Flags().StringP("key", "k", "", "Key as a bit string; takes precedence over --seed")
	cmd.Flags().StringP("input", "i", "", "Input as a '0'/'1' bit string")
	cmd.Flags().String("input-hex", "", "Input as hex-encoded bytes, unpacked most significant bit first")
}

// runCipher resolves the key and input from the configuration, applies the
// cipher in the requested direction and prints the resulting bit string.
func runCipher(cmd *cobra.Command, cfg config.Config) error {
	log := newLogger(cfg)

	key, err := resolveKey(cfg)
	if err != nil {
		return err
	}

	input, err := resolveInput(cfg)
	if err != nil {
		return err
	}

	var out bitseq.Bits

	if cfg.Decrypt {
		out, err = cipher.Decrypt(key, input)
	} else {
		out, err = cipher.Encrypt(key, input)
	}

	if err != nil {
		return err
	}

	log.Debug().
		Bool("decrypt", cfg.Decrypt).
		Int("bits", len(out)).
		Msg("processed input")

	fmt.Fprintln(cmd.OutOrStdout(), out.String())

	return nil
}

func resolveKey(cfg config.Config) (bitseq.Bits, error) {
	if cfg.Key != "" {
		key, err := bitseq.Parse(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("parsing key: %w", err)
		}

		return key, nil
	}

	return cipher.ExpandKey(cfg.Seed), nil
}

func resolveInput(cfg config.Config) (bitseq.Bits, error) {
	switch {
	case cfg.Input != "":
		input, err := bitseq.Parse(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("parsing input: %w", err)
		}

		return input, nil
	case cfg.InputHex != "":
		data, err := hexkey.FromHex(cfg.InputHex)
		if err != nil {
			return nil, fmt.Errorf("decoding hex input: %w", err)
		}

		return bitseq.FromBytes(data), nil
	default:
		return nil, errors.New("an input is required: use --input or --input-hex")
	}
}
