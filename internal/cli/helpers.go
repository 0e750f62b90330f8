package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sa015bcr/keygen/internal/validation"
	"github.com/sa015bcr/keygen/pkg/config"
	"github.com/sa015bcr/keygen/pkg/registry"
	"github.com/sa015bcr/keygen/pkg/storage"
)

// readPassphrase reads a passphrase from the terminal
func readPassphrase(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		return pass, nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(os.Stdin)
	pass, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(pass)), nil
}

// readBlobInteractive reads a password blob without echoing it
func readBlobInteractive() (string, error) {
	fmt.Fprint(os.Stderr, "Enter password blob: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		blobBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(blobBytes)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readLines reads whitespace-trimmed lines from stdin until EOF or an
// empty line.
func readLines(prompt string) ([]string, error) {
	fmt.Fprintln(os.Stderr, prompt)

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := validation.SanitizeInput(scanner.Text())
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// loadRegistry resolves the registry from flags, falling back to the
// configured defaults: --registry beats --sealed beats config paths.
func loadRegistry(registryPath, sealedPath string) (registry.Registry, error) {
	cfg := config.DefaultConfig()
	if mgr, err := config.NewManager(); err == nil {
		cfg = mgr.Get()
	}

	if registryPath == "" && sealedPath == "" {
		registryPath = expandHome(cfg.Defaults.RegistryPath)
		if registryPath == "" {
			sealedPath = expandHome(cfg.Defaults.SealedPath)
		}
	}

	switch {
	case registryPath != "":
		if cfg.Security.RequireEncrypted {
			return nil, fmt.Errorf("plaintext registry files are disabled by security policy")
		}
		return registry.LoadFile(registryPath)

	case sealedPath != "":
		rf := storage.NewRegistryFile(sealedPath)
		if !rf.Exists() {
			return nil, fmt.Errorf("no registry found at %s", sealedPath)
		}
		passphrase, err := readPassphrase("Registry passphrase: ")
		if err != nil {
			return nil, err
		}
		return rf.Load(passphrase)

	default:
		return nil, fmt.Errorf("no registry configured; pass --registry or --sealed")
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

// printKeyValue renders one aligned "label : value" line.
func printKeyValue(label, value string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("%-13s", label)
	fmt.Printf(": %s\n", value)
}
