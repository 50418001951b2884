// the smaller user triggered actions: settings, connection tests, ticket listing //
package handler

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.ibmgcloud.net/dth/pmo_saver/config"
	"github.ibmgcloud.net/dth/pmo_saver/filestore"
	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	"github.ibmgcloud.net/dth/pmo_saver/jira_actor"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/pmo"
	"github.ibmgcloud.net/dth/pmo_saver/settings"
)

// GetSettingsView returns the stored settings with the token masked for display
func GetSettingsView(cfg *glb.Config, db *sql.DB, user string) (*glb.Settings, error) {
	stored, err := settings.Load(db, cfg, user)
	if err != nil {
		return nil, err
	}
	view := *stored
	view.JiraToken = settings.MaskToken(stored.JiraToken)
	return &view, nil
}

// SaveSettings reconciles the masked token against the stored one, fills in
// the default webhook url when the field was left empty and overwrites the
// settings blob wholesale
func SaveSettings(cfg *glb.Config, db *sql.DB, user string, incoming *glb.Settings) error {
	stored, err := settings.Load(db, cfg, user)
	if err != nil {
		return err
	}

	incoming.JiraToken = settings.ReconcileToken(incoming.JiraToken, stored.JiraToken)
	if incoming.JiraURL == "" || incoming.JiraToken == "" {
		return &UserError{Msg: "Please provide both Jira URL and API token"}
	}
	if incoming.PMOWebhookURL == "" {
		incoming.PMOWebhookURL = cfg.DefaultPMOWebhookURL
	}
	if incoming.CustomJQL == "" {
		incoming.CustomJQL = config.DefaultJQL(cfg)
	}

	// validation failures are for the user, not the error log
	if err := settings.Validate(incoming); err != nil {
		return &UserError{Msg: err.Error()}
	}
	return settings.Save(db, user, incoming)
}

// TestJiraConnection round trips the stored credentials against /myself
func TestJiraConnection(cfg *glb.Config, db *sql.DB, user string) (string, error) {
	s, err := settings.Load(db, cfg, user)
	if err != nil {
		return "", err
	}
	if s.JiraURL == "" || s.JiraToken == "" {
		return "", &UserError{Msg: "Please save your settings first"}
	}

	client, err := jira_actor.GetJiraClient(s.JiraURL, s.JiraToken)
	if err != nil {
		return "", err
	}
	userInfo, err := jira_actor.GetMyself(client)
	if err != nil {
		return "", &UserError{Msg: "Connection failed: " + err.Error()}
	}
	lg.Logf("jira connection test passed as %s\n", userInfo)
	return userInfo, nil
}

type PMOTestResult struct {
	TestTicket string `json:"testTicket"`
	FolderID   string `json:"folderId"`
	FolderName string `json:"folderName"`
	Created    bool   `json:"created"`
}

// TestPMOConnection resolves a unique throwaway ticket and then verifies the
// returned folder is actually reachable, the two stages fail distinctly
func TestPMOConnection(cfg *glb.Config, db *sql.DB, provider *filestore.Provider, poster pmo.Poster, user string) (*PMOTestResult, error) {
	s, err := settings.Load(db, cfg, user)
	if err != nil {
		return nil, err
	}
	if s.PMOWebhookURL == "" {
		return nil, &UserError{Msg: "PMO webhook URL not configured. Please set URL first."}
	}

	testTicket := fmt.Sprintf("%s-TEST-%d", config.ProjectKey(cfg), time.Now().UnixMilli())
	lg.Logf("testing pmo connection with unique test ticket %s\n", testTicket)

	resolution := pmo.ResolveFolder(testTicket, pmo.ConfigFromSettings(s), poster)
	if !resolution.Success {
		return nil, &UserError{Msg: "PMO connection test failed: " + resolution.Error}
	}

	open := filestore.OpenFolder(provider, resolution.FolderID)
	if !open.Success {
		return nil, &UserError{Msg: "PMO webhook responded but folder access failed: " + open.Error}
	}

	return &PMOTestResult{
		TestTicket: testTicket,
		FolderID:   resolution.FolderID,
		FolderName: open.Name,
		Created:    resolution.Created,
	}, nil
}

type TicketOption struct {
	Key       string `json:"key"`
	Display   string `json:"display"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	IssueType string `json:"issueType"`
}

// ListTickets runs the user's jql filter and returns the dropdown entries
// sorted by ticket key
func ListTickets(cfg *glb.Config, db *sql.DB, user string) ([]TicketOption, error) {
	s, err := settings.Load(db, cfg, user)
	if err != nil {
		return nil, err
	}
	if s.JiraURL == "" || s.JiraToken == "" {
		return nil, &UserError{Msg: "Jira settings not configured"}
	}

	client, err := jira_actor.GetJiraClient(s.JiraURL, s.JiraToken)
	if err != nil {
		return nil, err
	}
	jql := s.CustomJQL
	if jql == "" {
		jql = config.DefaultJQL(cfg)
	}
	issues, err := jira_actor.SearchIssues(client, jql)
	if err != nil {
		return nil, &UserError{Msg: "Jira API error: " + err.Error() + ". Check your settings."}
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Key < issues[j].Key
	})
	options := make([]TicketOption, 0, len(issues))
	for _, issue := range issues {
		options = append(options, TicketOption{
			Key:       issue.Key,
			Display:   jira_actor.CompactDisplay(issue),
			Summary:   issue.Summary,
			Status:    issue.Status,
			IssueType: issue.IssueType,
		})
	}
	return options, nil
}
