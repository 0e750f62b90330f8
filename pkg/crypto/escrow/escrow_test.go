package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa015bcr/keygen/pkg/crypto/blob"
)

// testBlob carries secret 00..1f, minSeed 5, algoID 0x42.
const testBlob = "01AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8ABQBCq6Oy3M1jxTs="

func parseTestBlob(t *testing.T) blob.Record {
	t.Helper()
	rec, err := blob.Parse(testBlob)
	require.NoError(t, err)
	return rec
}

func TestSplitAndRestore(t *testing.T) {
	rec := parseTestBlob(t)

	shares, err := SplitRecord(rec, Config{Parts: 5, Threshold: 3})
	require.NoError(t, err)
	require.Len(t, shares, 5)

	for i, share := range shares {
		assert.Equal(t, byte(i+1), share.Index)
		assert.NotEmpty(t, share.Data)
	}

	// Any threshold-sized subset restores the identical blob.
	restored, err := Restore(shares[:3], rec.MinSeed, rec.AlgoID)
	require.NoError(t, err)
	assert.Equal(t, testBlob, restored)

	restored2, err := Restore(shares[2:], rec.MinSeed, rec.AlgoID)
	require.NoError(t, err)
	assert.Equal(t, testBlob, restored2)
}

func TestCombineRecoversSecret(t *testing.T) {
	rec := parseTestBlob(t)

	shares, err := SplitRecord(rec, Config{Parts: 3, Threshold: 2})
	require.NoError(t, err)

	secret, err := Combine(shares[:2])
	require.NoError(t, err)
	assert.Equal(t, rec.Secret, secret)
}

func TestSplitRecordValidation(t *testing.T) {
	rec := parseTestBlob(t)

	_, err := SplitRecord(rec, Config{Parts: 1, Threshold: 1})
	assert.Error(t, err)

	_, err = SplitRecord(rec, Config{Parts: 3, Threshold: 5})
	assert.Error(t, err)

	empty := blob.Record{}
	_, err = SplitRecord(empty, Config{Parts: 3, Threshold: 2})
	assert.Error(t, err)
}

func TestCombineRejectsBadShares(t *testing.T) {
	rec := parseTestBlob(t)

	shares, err := SplitRecord(rec, Config{Parts: 3, Threshold: 2})
	require.NoError(t, err)

	_, err = Combine(shares[:1])
	assert.Error(t, err)

	_, err = Combine([]Share{{Index: 1}, shares[1]})
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{"valid", Config{Parts: 5, Threshold: 3}, false},
		{"parts too small", Config{Parts: 1, Threshold: 2}, true},
		{"threshold too small", Config{Parts: 5, Threshold: 1}, true},
		{"threshold above parts", Config{Parts: 3, Threshold: 5}, true},
		{"parts above 255", Config{Parts: 256, Threshold: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
