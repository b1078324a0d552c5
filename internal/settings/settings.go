package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// refreshTokenSnippet is pasted into the console's browser devtools to read
// the Firebase refresh token out of indexedDB.
const refreshTokenSnippet = "(() => { dbReq = indexedDB.open('firebaseLocalStorageDb'); dbReq.onsuccess = () => { dataReq = dbReq.result.transaction('firebaseLocalStorage').objectStore('firebaseLocalStorage').getAll(); dataReq.onsuccess = () => { console.log(dataReq.result[0].value.stsTokenManager.refreshToken) }; dataReq.onerror = console.error }; dbReq.onerror = console.error })()"

// UserSettings is the operator-maintained configuration: the credential to
// exchange, the codes to distribute, and the event name rules.
type UserSettings struct {
	RefreshToken string             `json:"refresh_token"`
	Codes        []string           `json:"codes"`
	Patterns     []models.MatchRule `json:"patterns"`
}

// ConsoleSettings is the console's embedded web configuration. Only the
// Firebase API key is consumed; the rest of the object is preserved on disk
// as written by the get-settings command.
type ConsoleSettings struct {
	FirebaseAPIKey string `json:"FIREBASE_API_KEY"`
}

// LoadUser reads the user settings file. A missing file is reported with
// remediation instructions for the operator.
func LoadUser(path string) (*UserSettings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("no %s found\n"+
			"  The file must be in the format {\"refresh_token\": <STRING>, \"codes\": [...<STRING>], \"patterns\": [...<STRING>]}\n"+
			"  The refresh token may be obtained by pasting the following into the Humanitix producer console:\n"+
			"  %s", path, refreshTokenSnippet)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var us UserSettings
	if err := json.Unmarshal(data, &us); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &us, nil
}

// LoadConsole reads the console settings file written by get-settings.
func LoadConsole(path string) (*ConsoleSettings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("no %s found\n  Run get-settings to generate it", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cs ConsoleSettings
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cs.FirebaseAPIKey == "" {
		return nil, fmt.Errorf("%s has no FIREBASE_API_KEY\n  Run get-settings to regenerate it", path)
	}
	return &cs, nil
}
