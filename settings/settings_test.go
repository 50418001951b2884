package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	"github.ibmgcloud.net/dth/pmo_saver/propstore"
)

func validSettings() *glb.Settings {
	return &glb.Settings{
		JiraURL:          "https://jira.example.com",
		JiraToken:        "secret-token-1234",
		PMOWebhookURL:    "https://hooks.example.com/pmo",
		PMOTimeoutMs:     10000,
		PMORetryAttempts: 2,
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, Validate(validSettings()))
}

func TestValidateTimeoutRange(t *testing.T) {
	s := validSettings()
	s.PMOTimeoutMs = 4999
	err := Validate(s)
	require.Error(t, err)
	assert.Equal(t, "PMO timeout must be between 5000 and 60000 milliseconds", err.Error())

	s.PMOTimeoutMs = 60001
	assert.Error(t, Validate(s))

	s.PMOTimeoutMs = 5000
	assert.NoError(t, Validate(s))
	s.PMOTimeoutMs = 60000
	assert.NoError(t, Validate(s))
}

func TestValidateRetryRange(t *testing.T) {
	s := validSettings()
	s.PMORetryAttempts = 0
	err := Validate(s)
	require.Error(t, err)
	assert.Equal(t, "PMO retry attempts must be between 1 and 5", err.Error())

	s.PMORetryAttempts = 6
	assert.Error(t, Validate(s))

	s.PMORetryAttempts = 5
	assert.NoError(t, Validate(s))
}

func TestValidateURLs(t *testing.T) {
	s := validSettings()
	s.PMOWebhookURL = "ftp://hooks.example.com"
	err := Validate(s)
	require.Error(t, err)
	assert.Equal(t, "PMO webhook URL is required and must start with http:// or https://", err.Error())

	s = validSettings()
	s.PMOWebhookURL = ""
	assert.Error(t, Validate(s))

	s = validSettings()
	s.JiraURL = "jira.example.com"
	err = Validate(s)
	require.Error(t, err)
	assert.Equal(t, "Jira URL must start with http:// or https://", err.Error())

	// jira url is optional
	s = validSettings()
	s.JiraURL = ""
	assert.NoError(t, Validate(s))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "****", MaskToken("short"))
	assert.Equal(t, "****", MaskToken("1234567"))
	assert.Equal(t, "abcd****wxyz", MaskToken("abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "1234****5678", MaskToken("12345678"))
}

func TestReconcileToken(t *testing.T) {
	// masked value submitted back unchanged keeps the stored token
	assert.Equal(t, "stored", ReconcileToken("abcd****wxyz", "stored"))
	// a genuinely new token wins
	assert.Equal(t, "brand-new", ReconcileToken("brand-new", "stored"))
	// nothing stored yet, take whatever was submitted
	assert.Equal(t, "abcd****wxyz", ReconcileToken("abcd****wxyz", ""))
	assert.Equal(t, "", ReconcileToken("", "stored"))
}

func TestLoadDefaults(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()
	cfg := &glb.Config{DefaultPMOWebhookURL: "https://hooks.example.com/default"}

	s, err := Load(db, cfg, "alice")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/default", s.PMOWebhookURL)
	assert.Equal(t, 10000, s.PMOTimeoutMs)
	assert.Equal(t, 2, s.PMORetryAttempts)
	assert.Equal(t, "", s.JiraURL)
}

func TestLoadFillsMissingFields(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()
	cfg := &glb.Config{DefaultPMOWebhookURL: "https://hooks.example.com/default", DefaultJQL: "project = X"}

	// a blob from before the pmo fields existed
	require.NoError(t, propstore.Set(db, "alice", "JIRA_SETTINGS",
		`{"jiraUrl":"https://jira.example.com","jiraToken":"secret-token-1234"}`))

	s, err := Load(db, cfg, "alice")
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com", s.JiraURL)
	assert.Equal(t, "https://hooks.example.com/default", s.PMOWebhookURL)
	assert.Equal(t, 10000, s.PMOTimeoutMs)
	assert.Equal(t, 2, s.PMORetryAttempts)
	assert.Equal(t, "project = X", s.CustomJQL)
}

func TestSaveRoundtrip(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()
	cfg := &glb.Config{}

	s := validSettings()
	s.JiraURL = "https://jira.example.com/"
	require.NoError(t, Save(db, "alice", s))

	loaded, err := Load(db, cfg, "alice")
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com", loaded.JiraURL, "trailing slash gets trimmed")
	assert.Equal(t, "secret-token-1234", loaded.JiraToken)
	assert.NotEmpty(t, loaded.SavedAt)
}

func TestSaveRejectsInvalid(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	s := validSettings()
	s.PMOTimeoutMs = 100
	require.Error(t, Save(db, "alice", s))

	// nothing was written
	_, found, err := propstore.Get(db, "alice", "JIRA_SETTINGS")
	require.NoError(t, err)
	assert.False(t, found)
}
