package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sa015bcr/keygen/pkg/registry"
	"github.com/sa015bcr/keygen/pkg/storage"
)

func NewRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage blob registries",
		Long: `Registry commands list the algorithms a registry knows and convert
between plaintext JSON registries and passphrase-sealed files.`,
	}

	cmd.AddCommand(
		newRegistryListCommand(),
		newRegistrySealCommand(),
		newRegistryOpenCommand(),
	)

	return cmd
}

func newRegistryListCommand() *cobra.Command {
	var (
		registryPath string
		sealedPath   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the algorithm ids a registry knows",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			reg, err := loadRegistry(registryPath, sealedPath)
			if err != nil {
				return err
			}

			ids := reg.IDs()
			if outputJSON {
				hexIDs := make([]string, len(ids))
				for i, id := range ids {
					hexIDs[i] = fmt.Sprintf("0x%02X", id)
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]interface{}{
					"count":      len(ids),
					"algorithms": hexIDs,
				})
			}

			green := color.New(color.FgGreen)
			green.Printf("%d registered algorithms\n", len(ids))
			for _, id := range ids {
				fmt.Printf("  0x%02X (%d)\n", id, id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&registryPath, "registry", "r", "", "Registry JSON file")
	cmd.Flags().StringVar(&sealedPath, "sealed", "", "Encrypted registry file")

	return cmd
}

func newRegistrySealCommand() *cobra.Command {
	var (
		registryPath string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt a plaintext registry under a passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadFile(registryPath)
			if err != nil {
				return err
			}

			passphrase, err := readPassphrase("New registry passphrase: ")
			if err != nil {
				return err
			}
			confirm, err := readPassphrase("Confirm passphrase: ")
			if err != nil {
				return err
			}
			if string(passphrase) != string(confirm) {
				return fmt.Errorf("passphrases do not match")
			}

			if err := storage.NewRegistryFile(outPath).Save(reg, passphrase); err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			green.Printf("Sealed %d entries into %s\n", len(reg), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&registryPath, "registry", "r", "", "Registry JSON file to seal")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path for the sealed registry")
	_ = cmd.MarkFlagRequired("registry")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newRegistryOpenCommand() *cobra.Command {
	var sealedPath string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a sealed registry to JSON on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			rf := storage.NewRegistryFile(sealedPath)
			if !rf.Exists() {
				return fmt.Errorf("no sealed registry at %s", sealedPath)
			}

			passphrase, err := readPassphrase("Registry passphrase: ")
			if err != nil {
				return err
			}

			reg, err := rf.Load(passphrase)
			if err != nil {
				return err
			}

			doc := make(map[string]string, len(reg))
			for _, id := range reg.IDs() {
				blobStr, _ := reg.Lookup(id)
				doc[fmt.Sprintf("0x%02X", id)] = blobStr
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc)
		},
	}

	cmd.Flags().StringVar(&sealedPath, "sealed", "", "Encrypted registry file")
	_ = cmd.MarkFlagRequired("sealed")

	return cmd
}
