package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sa015bcr/keygen/internal/validation"
	"github.com/sa015bcr/keygen/pkg/crypto/derive"
)

// DeriveResult is the JSON shape of a derivation.
type DeriveResult struct {
	MAC        string `json:"mac"`
	Iterations int    `json:"iterations"`
	AESKey     string `json:"aes_key,omitempty"`
	Seed       string `json:"seed"`
	AlgoID     string `json:"algo_id"`
}

func NewDeriveCommand() *cobra.Command {
	var (
		seedText     string
		algoText     string
		blobOverride string
		registryPath string
		sealedPath   string
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the 5-byte MAC for a seed and algorithm",
		Long: `Derive reproduces the sa015bcr token's key derivation: the algorithm's
password blob is decoded and authenticated, its secret is run through the
seed-selected SHA-256 chain, and the resulting AES-128 key encrypts the
seed block. The first 5 ciphertext bytes are the derived key.`,
		Example: `  # Derive against a registry file
  sa015 derive --algo 0x87 --seed "8C E7 D1 FD 06" --registry blobs.json

  # Derive against an explicit blob, showing intermediates
  sa015 derive -a 0x87 -s 8ce7d1fd06 -p 01CQPSJq... --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

			seed, err := validation.ParseSeed(seedText)
			if err != nil {
				return fmt.Errorf("invalid seed: %w", err)
			}

			algoID, err := validation.ParseAlgoID(algoText)
			if err != nil {
				return fmt.Errorf("invalid algorithm: %w", err)
			}

			var res derive.Result
			if blobOverride != "" {
				if err := validation.ValidateBlobText(blobOverride); err != nil {
					return fmt.Errorf("invalid blob: %w", err)
				}
				res, err = derive.FromBlob(blobOverride, seed, algoID)
			} else {
				reg, regErr := loadRegistry(registryPath, sealedPath)
				if regErr != nil {
					return regErr
				}
				res, err = derive.FromRegistry(algoID, seed, reg)
			}
			if err != nil {
				return err
			}

			if outputJSON {
				out := DeriveResult{
					MAC:        hex.EncodeToString(res.MAC),
					Iterations: res.Iterations,
					Seed:       hex.EncodeToString(seed),
					AlgoID:     fmt.Sprintf("0x%02X", algoID),
				}
				if verbose {
					out.AESKey = hex.EncodeToString(res.AESKey)
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(out)
			}

			if verbose {
				printKeyValue("Iterations", fmt.Sprintf("%d", res.Iterations))
				printKeyValue("AES key", hex.EncodeToString(res.AESKey))
				printKeyValue("Seed (bytes)", hex.EncodeToString(seed))
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Println(hex.EncodeToString(res.MAC))
			return nil
		},
	}

	cmd.Flags().StringVarP(&seedText, "seed", "s", "", "5-byte seed as 10 hex digits (separators allowed)")
	cmd.Flags().StringVarP(&algoText, "algo", "a", "", "Algorithm selector (decimal or 0x-prefixed hex)")
	cmd.Flags().StringVarP(&blobOverride, "password", "p", "", "Override password blob (defaults to registry lookup)")
	cmd.Flags().StringVarP(&registryPath, "registry", "r", "", "Registry JSON file")
	cmd.Flags().StringVar(&sealedPath, "sealed", "", "Encrypted registry file")
	_ = cmd.MarkFlagRequired("seed")
	_ = cmd.MarkFlagRequired("algo")

	return cmd
}
