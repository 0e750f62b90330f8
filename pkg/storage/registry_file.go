// Package storage persists registry tables encrypted at rest.
//
// Blob strings are checksum-protected but not confidential-by-construction,
// so a registry copied onto a laptop is sealed under a passphrase:
// PBKDF2-SHA256 stretches the passphrase and AES-GCM encrypts the JSON
// document.
package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/sa015bcr/keygen/pkg/registry"
	"github.com/sa015bcr/keygen/pkg/secure"
)

const (
	SaltSize   = 32
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100000
)

// RegistryFile reads and writes a passphrase-sealed registry at one path.
type RegistryFile struct {
	path string
}

type encryptedDocument struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// NewRegistryFile returns a RegistryFile for path.
func NewRegistryFile(path string) *RegistryFile {
	return &RegistryFile{path: path}
}

// Save seals the registry under the passphrase and writes it to disk.
func (s *RegistryFile) Save(reg registry.Registry, passphrase []byte) error {
	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase cannot be empty")
	}

	doc := make(map[string]string, len(reg))
	for _, id := range reg.IDs() {
		blobStr, _ := reg.Lookup(id)
		doc[fmt.Sprintf("0x%02X", id)] = blobStr
	}
	plaintext, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	defer secure.Zero(plaintext)

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key(passphrase, salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	encrypted := encryptedDocument{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	}

	jsonData, err := json.Marshal(encrypted)
	if err != nil {
		return fmt.Errorf("failed to marshal encrypted registry: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(s.path, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Load decrypts the file and returns the registry it holds.
func (s *RegistryFile) Load(passphrase []byte) (registry.Registry, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}

	jsonData, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var encrypted encryptedDocument
	if err := json.Unmarshal(jsonData, &encrypted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encrypted registry: %w", err)
	}

	key := pbkdf2.Key(passphrase, encrypted.Salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, encrypted.Nonce, encrypted.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt registry: %w", err)
	}
	defer secure.Zero(plaintext)

	var doc map[string]string
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	reg := make(registry.Registry, len(doc))
	for k, blobStr := range doc {
		id, err := registry.ParseID(k)
		if err != nil {
			return nil, fmt.Errorf("invalid registry key %q: %w", k, err)
		}
		reg[id] = blobStr
	}
	return reg, nil
}

// Exists reports whether the sealed registry file is present.
func (s *RegistryFile) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
