package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
)

var windowConfigRe = regexp.MustCompile(`window\.config=(\{.*?\})</script>`)

// FetchConsoleConfig downloads the console signin page and extracts the
// embedded window.config JSON object. The returned bytes are the raw config
// object, suitable for writing to the settings file.
func FetchConsoleConfig(client *http.Client, signinURL string) ([]byte, error) {
	resp, err := client.Get(signinURL)
	if err != nil {
		return nil, fmt.Errorf("fetch signin page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("signin page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read signin page: %w", err)
	}

	match := windowConfigRe.FindSubmatch(body)
	if match == nil {
		// Fall back to a greedy match when </script> is not on the same line.
		loose := regexp.MustCompile(`window\.config=(\{.*\})`)
		if match = loose.FindSubmatch(body); match == nil {
			return nil, fmt.Errorf("no window.config found in signin page")
		}
	}

	raw := match[1]
	if !json.Valid(raw) {
		return nil, fmt.Errorf("embedded window.config is not valid JSON")
	}
	return raw, nil
}

// WriteConsoleConfig pretty-prints the raw config object to path.
func WriteConsoleConfig(path string, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return fmt.Errorf("format config: %w", err)
	}
	buf.WriteByte('\n')
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
