package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sa015bcr/keygen/internal/cli"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "sa015",
		Short: "Reproduce the sa015bcr hardware token key derivation",
		Long: `sa015 reproduces the sa015bcr token's 5-byte key derivation: given an
algorithm selector and a 5-byte seed, it recovers the same short MAC the
physical device emits.

The derivation engine authenticates the algorithm's password blob, runs the
blob secret through a seed-selected SHA-256 hash chain, and encrypts a
seed-carrying block with the resulting AES-128 key.

Blob registries are supplied by the operator, as JSON files or sealed under
a passphrase; nothing is baked into the tool.`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(
		cli.NewDeriveCommand(),
		cli.NewInspectCommand(),
		cli.NewBackupCommand(),
		cli.NewRestoreCommand(),
		cli.NewRegistryCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show intermediate values")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
