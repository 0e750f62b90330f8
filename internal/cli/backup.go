package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sa015bcr/keygen/internal/validation"
	"github.com/sa015bcr/keygen/pkg/crypto/blob"
	"github.com/sa015bcr/keygen/pkg/crypto/escrow"
	"github.com/sa015bcr/keygen/pkg/crypto/mnemonic"
)

// BackupResult is the JSON shape of a backup.
type BackupResult struct {
	AlgoID    string   `json:"algo_id"`
	MinSeed   uint16   `json:"min_seed"`
	Threshold int      `json:"threshold,omitempty"`
	Shares    []string `json:"shares,omitempty"`
	Mnemonic  string   `json:"mnemonic,omitempty"`
}

func NewBackupCommand() *cobra.Command {
	var (
		blobText    string
		parts       int
		threshold   int
		useMnemonic bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up a blob's secret as Shamir shares or a mnemonic",
		Long: `Backup splits a password blob's 32-byte secret into Shamir shares so no
single custodian can reconstruct it, or renders it as a 24-word phrase for
a single paper backup. MinSeed and the algorithm id are printed alongside;
both are needed to re-seal the blob with 'restore'.`,
		Example: `  # 3-of-5 escrow shares
  sa015 backup --parts 5 --threshold 3

  # Single 24-word paper backup
  sa015 backup --mnemonic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			if blobText == "" {
				var err error
				blobText, err = readBlobInteractive()
				if err != nil {
					return err
				}
			}
			if err := validation.ValidateBlobText(blobText); err != nil {
				return fmt.Errorf("invalid blob: %w", err)
			}

			rec, err := blob.Parse(blobText)
			if err != nil {
				return err
			}
			defer rec.Wipe()

			result := BackupResult{
				AlgoID:  fmt.Sprintf("0x%02X", rec.AlgoID),
				MinSeed: rec.MinSeed,
			}

			if useMnemonic {
				phrase, err := mnemonic.EncodeSecret(rec.Secret)
				if err != nil {
					return err
				}
				result.Mnemonic = phrase
			} else {
				shares, err := escrow.SplitRecord(rec, escrow.Config{
					Parts:     parts,
					Threshold: threshold,
				})
				if err != nil {
					return err
				}
				result.Threshold = threshold
				for _, share := range shares {
					result.Shares = append(result.Shares, hex.EncodeToString(share.Data))
				}
			}

			if outputJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			displayBackup(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&blobText, "password", "p", "", "Password blob (prompted when omitted)")
	cmd.Flags().IntVarP(&parts, "parts", "n", 3, "Number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "Shares required to restore")
	cmd.Flags().BoolVar(&useMnemonic, "mnemonic", false, "Emit a 24-word phrase instead of shares")

	return cmd
}

func displayBackup(result BackupResult) {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)

	fmt.Println()
	yellow.Println("=== BLOB BACKUP ===")
	fmt.Println()
	printKeyValue("Algorithm", result.AlgoID)
	printKeyValue("Min seed", fmt.Sprintf("%d", result.MinSeed))
	fmt.Println()

	if result.Mnemonic != "" {
		green.Println("Mnemonic phrase (24 words):")
		fmt.Printf("  %s\n", result.Mnemonic)
	} else {
		green.Printf("Created %d shares with threshold %d\n\n", len(result.Shares), result.Threshold)
		for i, share := range result.Shares {
			fmt.Printf("Share %d: %s\n", i+1, share)
		}
	}

	fmt.Println()
	red.Println("SECURITY WARNING:")
	fmt.Println("- Store each share (or the phrase) in a separate secure location")
	fmt.Println("- Record the algorithm id and min seed; restore needs both")
	fmt.Println("- Test a restore before relying on this backup")
}
