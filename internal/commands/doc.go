// Package commands provides the command-line interface for the gosc tool.
//
// It implements commands for:
//   - key expansion from a seed
//   - encryption and decryption of bit sequences
//   - the statistical evaluation harness
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
