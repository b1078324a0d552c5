package qrcodes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pupbiru/humanitix-auto-codes/internal/qrcodes"
)

func TestRenderCodes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "qr")
	gen := qrcodes.NewGenerator(dir, 256)

	err := gen.RenderCodes([]string{"VIP-001", "VIP 002/B"})

	assert.NoError(t, err)
	for _, name := range []string{"VIP-001.png", "VIP_002_B.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
		if err == nil {
			assert.Greater(t, info.Size(), int64(0))
		}
	}
}

func TestRenderCodesEmptyList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "qr")

	err := qrcodes.NewGenerator(dir, 128).RenderCodes(nil)

	assert.NoError(t, err)
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
