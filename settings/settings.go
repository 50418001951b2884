// load, validate and persist per user settings //
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/propstore"
)

const settingsKey = "JIRA_SETTINGS"

const (
	defaultPMOTimeoutMs     = 10000
	defaultPMORetryAttempts = 2
)

var validate = validator.New()

// Load returns the stored settings with defaults filled in for users that
// saved before the pmo fields existed, a user with nothing stored gets the
// pure defaults
func Load(db *sql.DB, cfg *glb.Config, user string) (*glb.Settings, error) {
	value, found, err := propstore.Get(db, user, settingsKey)
	if err != nil {
		return nil, err
	}
	if !found {
		lg.Logf("no settings stored for %s, using defaults\n", user)
		return &glb.Settings{
			PMOWebhookURL:    cfg.DefaultPMOWebhookURL,
			PMOTimeoutMs:     defaultPMOTimeoutMs,
			PMORetryAttempts: defaultPMORetryAttempts,
		}, nil
	}

	var s glb.Settings
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return nil, err
	}
	if s.PMOWebhookURL == "" {
		s.PMOWebhookURL = cfg.DefaultPMOWebhookURL
	}
	if s.PMOTimeoutMs == 0 {
		s.PMOTimeoutMs = defaultPMOTimeoutMs
	}
	if s.PMORetryAttempts == 0 {
		s.PMORetryAttempts = defaultPMORetryAttempts
	}
	if s.CustomJQL == "" {
		s.CustomJQL = cfg.DefaultJQL
	}
	return &s, nil
}

// Save validates and overwrites the settings blob wholesale, the only merge
// is the masked token reconciliation the caller performs beforehand
func Save(db *sql.DB, user string, s *glb.Settings) error {
	if err := Validate(s); err != nil {
		return err
	}
	s.JiraURL = strings.TrimSuffix(strings.TrimSpace(s.JiraURL), "/")
	s.PMOWebhookURL = strings.TrimSuffix(strings.TrimSpace(s.PMOWebhookURL), "/")
	s.SavedAt = time.Now().UTC().Format(time.RFC3339)

	value, err := json.Marshal(s)
	if err != nil {
		return err
	}
	lg.Logf("saving settings for %s\n", user)
	return propstore.Set(db, user, settingsKey, string(value))
}

// Validate rejects bad settings before any network call gets made
func Validate(s *glb.Settings) error {
	if !strings.HasPrefix(strings.TrimSpace(s.PMOWebhookURL), "http") {
		return errors.New("PMO webhook URL is required and must start with http:// or https://")
	}
	if s.JiraURL != "" && !strings.HasPrefix(s.JiraURL, "http") {
		return errors.New("Jira URL must start with http:// or https://")
	}

	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}
	switch fieldErrors[0].Field() {
	case "PMOWebhookURL":
		return errors.New("PMO webhook URL format is invalid")
	case "JiraURL":
		return errors.New("Jira URL format is invalid")
	case "PMOTimeoutMs":
		return errors.New("PMO timeout must be between 5000 and 60000 milliseconds")
	case "PMORetryAttempts":
		return errors.New("PMO retry attempts must be between 1 and 5")
	}
	return fmt.Errorf("invalid settings: %s", fieldErrors[0].Field())
}

// MaskToken hides all but the edges of the token for display
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) < 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}

// ReconcileToken keeps the stored token when the client submitted the masked
// display value back unchanged
func ReconcileToken(submitted string, stored string) string {
	if stored != "" && submitted != "" && strings.Contains(submitted, "****") {
		return stored
	}
	return submitted
}
