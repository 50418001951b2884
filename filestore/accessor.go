// safe folder access, resolution success doesn't imply the folder is reachable //
package filestore

import (
	"fmt"

	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

type OpenResult struct {
	Success bool
	Folder  *Folder
	Name    string
	Error   string
}

// OpenFolder looks the folder up by id and proves liveness by reading its
// display name, provider errors become structured failures and never propagate
func OpenFolder(provider *Provider, folderID string) OpenResult {
	lg.Logf("attempting to access folder with id %s\n", folderID)

	folder, err := provider.FolderByID(folderID)
	if err != nil {
		lg.Logf("cannot access folder with id %s: %s\n", folderID, err.Error())
		return OpenResult{
			Success: false,
			Error:   fmt.Sprintf("Cannot access folder (ID: %s): %s", folderID, err.Error()),
		}
	}

	name := folder.Name()
	if name == "" {
		return OpenResult{
			Success: false,
			Error:   fmt.Sprintf("Cannot access folder (ID: %s): folder has no readable name", folderID),
		}
	}

	lg.Logf("successfully accessed folder %s\n", name)
	return OpenResult{Success: true, Folder: folder, Name: name}
}
