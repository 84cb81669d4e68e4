package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/gosc/internal/cipher"
)

// NewKeygenCmd creates the keygen command, which expands a seed into its
// key bits.
func NewKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "keygen",
		Aliases:           []string{"gen"},
		Short:             "Expand a seed into its key bit sequence",
		PersistentPreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := newLogger(cfg)

			key := cipher.ExpandKey(cfg.Seed)

			log.Debug().
				Int("seed_bytes", len(cfg.Seed)).
				Int("key_bits", len(key)).
				Msg("expanded key")

			if cfg.Hex {
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(key.Bytes()))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), key.String())
			}

			return nil
		},
	}

	cmd.Flags().StringP("seed", "s", "", "Seed to expand; the key carries 4 bits per seed byte")
	cmd.Flags().Bool("hex", false, "Print the packed key bytes as hex instead of a bit string")

	return cmd
}
