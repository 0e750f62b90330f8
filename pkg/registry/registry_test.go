package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	blob42 = "01AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8ABQBCq6Oy3M1jxTs="
	blob87 = "01CQPSJqJAUF30kUuEh15kDdZqfqta9p2GrPtILEH8W7UA9QCHWt1m7fCkCFs="
)

func TestFromMapAndLookup(t *testing.T) {
	reg := FromMap(map[uint16]string{
		0x42: blob42,
		0x87: blob87,
	})

	b, ok := reg.Lookup(0x87)
	assert.True(t, ok)
	assert.Equal(t, blob87, b)

	_, ok = reg.Lookup(0x99)
	assert.False(t, ok)

	assert.Equal(t, []uint16{0x42, 0x87}, reg.IDs())
}

func TestLoad(t *testing.T) {
	doc := `{"0x42": "` + blob42 + `", "135": "` + blob87 + `"}`

	reg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, reg, 2)

	b, ok := reg.Lookup(0x42)
	assert.True(t, ok)
	assert.Equal(t, blob42, b)

	b, ok = reg.Lookup(0x87) // 135 decimal
	assert.True(t, ok)
	assert.Equal(t, blob87, b)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"0x42": `))
	assert.Error(t, err)
}

func TestLoadRejectsBadKey(t *testing.T) {
	_, err := Load(strings.NewReader(`{"0x10042": "` + blob42 + `"}`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`{"banana": "` + blob42 + `"}`))
	assert.Error(t, err)
}

func TestLoadRejectsCorruptBlob(t *testing.T) {
	corrupt := blob42[:len(blob42)-5] + "AAAA="
	_, err := Load(strings.NewReader(`{"0x42": "` + corrupt + `"}`))
	assert.Error(t, err)
}

func TestLoadRejectsKeyBlobMismatch(t *testing.T) {
	// blob42 embeds algorithm 0x42, registered under 0x43
	_, err := Load(strings.NewReader(`{"0x43": "` + blob42 + `"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0", 0, false},
		{"135", 135, false},
		{"0x87", 0x87, false},
		{"0xFFFF", 0xFFFF, false},
		{" 0x42 ", 0x42, false},
		{"65536", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"xyz", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}
