// Package registry maps algorithm selectors to their registered password
// blobs.
//
// The derivation engine never embeds blob material; callers supply a
// Registry built from whatever source they trust (a packaged table, a
// config file, a test fixture).
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sa015bcr/keygen/pkg/crypto/blob"
)

// Registry is a read-only mapping from 16-bit algorithm id to blob string.
type Registry map[uint16]string

// FromMap copies entries into a new Registry without validating blobs.
func FromMap(entries map[uint16]string) Registry {
	reg := make(Registry, len(entries))
	for id, b := range entries {
		reg[id] = b
	}
	return reg
}

// Lookup returns the blob registered for id.
func (r Registry) Lookup(id uint16) (string, bool) {
	b, ok := r[id]
	return b, ok
}

// IDs returns the registered algorithm ids in ascending order.
func (r Registry) IDs() []uint16 {
	ids := make([]uint16, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Load reads a JSON registry from r. The document is an object keyed by
// algorithm id (decimal or 0x-prefixed hex) with blob strings as values.
// Every blob is parsed and authenticated before the registry is returned.
func Load(r io.Reader) (Registry, error) {
	var doc map[string]string
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	reg := make(Registry, len(doc))
	for key, blobStr := range doc {
		id, err := ParseID(key)
		if err != nil {
			return nil, fmt.Errorf("invalid registry key %q: %w", key, err)
		}
		if _, exists := reg[id]; exists {
			return nil, fmt.Errorf("duplicate registry entry for algorithm 0x%02X", id)
		}

		rec, err := blob.Parse(blobStr)
		if err != nil {
			return nil, fmt.Errorf("invalid blob for algorithm 0x%02X: %w", id, err)
		}
		if rec.AlgoID != id {
			rec.Wipe()
			return nil, fmt.Errorf("registry key 0x%02X does not match blob algorithm 0x%02X", id, rec.AlgoID)
		}
		rec.Wipe()

		reg[id] = blobStr
	}
	return reg, nil
}

// LoadFile reads a JSON registry from path.
func LoadFile(path string) (Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// ParseID parses a decimal or 0x-prefixed hex algorithm id within 16 bits.
func ParseID(text string) (uint16, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("algorithm id cannot be empty")
	}

	value, err := strconv.ParseUint(text, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("algorithm id must be a 16-bit integer: %w", err)
	}
	return uint16(value), nil
}
