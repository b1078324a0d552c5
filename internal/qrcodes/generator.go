package qrcodes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Generator renders each configured access code to a PNG so the organizer can
// hand VIPs a scannable code instead of a string.
type Generator struct {
	dir  string
	size int
}

func NewGenerator(dir string, size int) *Generator {
	return &Generator{dir: dir, size: size}
}

// RenderCodes writes one PNG per code into the output directory, overwriting
// stale renders from earlier code lists.
func (g *Generator) RenderCodes(codes []string) error {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return fmt.Errorf("create qr output directory: %w", err)
	}

	for _, code := range codes {
		path := filepath.Join(g.dir, sanitizeFilename(code)+".png")
		if err := qrcode.WriteFile(code, qrcode.Medium, g.size, path); err != nil {
			return fmt.Errorf("render qr for code %q: %w", code, err)
		}
	}
	return nil
}

func sanitizeFilename(code string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, code)
}
