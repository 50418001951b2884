// extract everything possible from an incoming save call -> everything required for handler.go //
package handler

import (
	"database/sql"

	"github.ibmgcloud.net/dth/pmo_saver/config"
	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/mailstore"
	"github.ibmgcloud.net/dth/pmo_saver/selections"
	"github.ibmgcloud.net/dth/pmo_saver/settings"
)

// SaveRequest is what the client submits when the save button gets pressed
type SaveRequest struct {
	ThreadID string `json:"threadId"`
	// ticket key picked from the dropdown, "manual" or empty when typed in
	SelectedTicket string `json:"selectedTicket"`
	// bare number, gets prefixed with the configured project key
	ManualTicketNumber string `json:"manualTicketNumber"`
	// complete key as fallback for the manual flow
	FullTicket string `json:"jiraTicket"`
	// indexes into the thread wide attachment enumeration
	SelectedIndexes []int `json:"selectedIndexes"`
}

// UserError carries a message meant for the user, not for the error log
type UserError struct {
	Msg string
}

func (e *UserError) Error() string {
	return e.Msg
}

// finalTicket mirrors the precedence the add-on always had:
// dropdown choice, then manual number, then full key
func finalTicket(cfg *glb.Config, req *SaveRequest) string {
	if req.SelectedTicket != "" && req.SelectedTicket != "manual" {
		return req.SelectedTicket
	}
	if req.ManualTicketNumber != "" {
		return config.ProjectKey(cfg) + "-" + req.ManualTicketNumber
	}
	return req.FullTicket
}

func prepareSave(cfg *glb.Config, db *sql.DB, mailStore *mailstore.Store, user string, req *SaveRequest) (*glb.SaveParam, error) {
	lg.Logf("loading save params")
	param := glb.SaveParam{ThreadID: req.ThreadID}
	var err error

	param.Settings, err = settings.Load(db, cfg, user)
	if err != nil {
		return nil, err
	}

	param.FinalTicket = finalTicket(cfg, req)
	if param.FinalTicket == "" {
		return nil, &UserError{Msg: "Please select a ticket or enter a manual ticket number"}
	}
	if param.ThreadID == "" {
		return nil, &UserError{Msg: "Please open an email to save attachments"}
	}
	lg.Logf("using ticket %s\n", param.FinalTicket)

	param.Attachments, err = mailStore.GetThreadAttachments(param.ThreadID)
	if err != nil {
		return nil, err
	}
	if len(param.Attachments) == 0 {
		return nil, &UserError{Msg: "No attachments found in this thread"}
	}

	// capture the full checkbox state, absent index means deselected
	selectedSet := make(map[int]struct{}, len(req.SelectedIndexes))
	for _, index := range req.SelectedIndexes {
		selectedSet[index] = struct{}{}
	}
	param.SelectionState = make(map[string]bool, len(param.Attachments))
	for _, attachment := range param.Attachments {
		_, isSelected := selectedSet[attachment.SourceIndex]
		param.SelectionState[selections.Key(attachment.Name, attachment.SourceIndex)] = isSelected
	}

	// persist before validating, the user's choices survive even a failed save
	if err := selections.Store(db, user, param.ThreadID, param.SelectionState); err != nil {
		return nil, err
	}

	param.Selected = selections.Apply(param.Attachments, param.SelectionState)
	lg.Logf("selected %d of %d attachments for saving\n", len(param.Selected), len(param.Attachments))
	if len(param.Selected) == 0 {
		return nil, &UserError{Msg: "Please select at least one attachment"}
	}

	return &param, nil
}
