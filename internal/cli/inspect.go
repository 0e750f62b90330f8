package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sa015bcr/keygen/pkg/crypto/blob"
)

// InspectResult is the JSON shape of a blob inspection.
type InspectResult struct {
	AlgoID            string `json:"algo_id"`
	MinSeed           uint16 `json:"min_seed"`
	SecretFingerprint string `json:"secret_fingerprint"`
	ChecksumValid     bool   `json:"checksum_valid"`
}

func NewInspectCommand() *cobra.Command {
	var blobText string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode and authenticate a password blob",
		Long: `Inspect parses a 62-character password blob, verifies its truncated
SHA-256 checksum, and prints the embedded constraints. The 32-byte secret
is never printed; only a short fingerprint is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			if blobText == "" {
				var err error
				blobText, err = readBlobInteractive()
				if err != nil {
					return err
				}
			}

			rec, err := blob.Parse(blobText)
			if err != nil {
				return err
			}
			defer rec.Wipe()

			fp := sha256.Sum256(rec.Secret)
			result := InspectResult{
				AlgoID:            fmt.Sprintf("0x%02X", rec.AlgoID),
				MinSeed:           rec.MinSeed,
				SecretFingerprint: hex.EncodeToString(fp[:4]),
				ChecksumValid:     true,
			}

			if outputJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Println("Blob is authentic")
			printKeyValue("Algorithm", result.AlgoID)
			printKeyValue("Min seed", fmt.Sprintf("%d", result.MinSeed))
			if rec.MinSeed <= 255 {
				printKeyValue("Max seed tail", fmt.Sprintf("0x%02X", 255-rec.MinSeed))
			}
			printKeyValue("Fingerprint", result.SecretFingerprint)
			return nil
		},
	}

	cmd.Flags().StringVarP(&blobText, "password", "p", "", "Password blob (prompted when omitted)")

	return cmd
}
