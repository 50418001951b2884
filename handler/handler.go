// central high level instructions, what to do with one save invocation //
// this code shall be as easily changeable as possible //
package handler

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.ibmgcloud.net/dth/pmo_saver/filestore"
	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/mailstore"
	"github.ibmgcloud.net/dth/pmo_saver/pmo"
)

// HandleSave runs one complete save invocation: figure out the ticket, pull
// the thread attachments, persist the selections, resolve the pmo folder,
// then write the selected attachments into it
func HandleSave(cfg *glb.Config, db *sql.DB, mailStore *mailstore.Store, provider *filestore.Provider, poster pmo.Poster, user string, req *SaveRequest) (*glb.SaveReport, error) {
	saveID := uuid.NewString()
	lg.Logf("save invocation %s for user %s, thread %s\n", saveID, user, req.ThreadID)

	param, err := prepareSave(cfg, db, mailStore, user, req)
	if err != nil {
		return nil, err
	}

	resolution := pmo.ResolveFolder(param.FinalTicket, pmo.ConfigFromSettings(param.Settings), poster)
	if !resolution.Success {
		lg.Logf("pmo lookup for save %s failed: %s\n", saveID, resolution.Error)
		return nil, &UserError{Msg: fmt.Sprintf("Cannot save attachments for %s: %s", param.FinalTicket, resolution.Error)}
	}
	lg.Logf("pmo returned folder id %s, created: %t\n", resolution.FolderID, resolution.Created)

	// a resolved folder can still be unreachable, keep that failure distinct
	// so the user knows the webhook itself worked
	open := filestore.OpenFolder(provider, resolution.FolderID)
	if !open.Success {
		lg.Logf("pmo folder access for save %s failed: %s\n", saveID, open.Error)
		return nil, &UserError{Msg: fmt.Sprintf("The PMO folder for %s was found but cannot be accessed: %s", param.FinalTicket, open.Error)}
	}
	lg.Logf("using pmo folder %s\n", open.Name)

	writeResult := filestore.WriteAttachments(open.Folder, param.Selected)

	lg.Logf("save %s complete: saved %d, skipped %d of %d requested\n",
		saveID, writeResult.SavedCount, writeResult.SkippedCount, len(param.Selected))

	return &glb.SaveReport{
		Ticket:        param.FinalTicket,
		FolderID:      resolution.FolderID,
		FolderName:    open.Name,
		FolderCreated: resolution.Created,
		Requested:     len(param.Selected),
		Write:         writeResult,
	}, nil
}
