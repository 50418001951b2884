// per thread attachment selection memory //
// keeps checkbox state alive across re-renders of the client //
package selections

import (
	"database/sql"
	"encoding/json"
	"strconv"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/propstore"
)

const KeyPrefix = "ATTACHMENT_SELECTIONS_"

// Key builds the identity of one attachment within its thread
// name alone is ambiguous, threads may carry duplicate filenames
func Key(name string, index int) string {
	return name + "_" + strconv.Itoa(index)
}

// Store overwrites the whole selection map for the thread, no merging
func Store(db *sql.DB, user string, threadID string, state map[string]bool) error {
	if threadID == "" {
		lg.Logf("no thread id provided, skipping attachment selection storage")
		return nil
	}
	value, err := json.Marshal(state)
	if err != nil {
		return err
	}
	lg.Logf("storing %d attachment selections for thread %s\n", len(state), threadID)
	return propstore.Set(db, user, KeyPrefix+threadID, string(value))
}

// Load returns nil when nothing was ever stored for the thread,
// which is different from an empty map of explicit deselections
func Load(db *sql.DB, user string, threadID string) (map[string]bool, error) {
	if threadID == "" {
		return nil, nil
	}
	value, found, err := propstore.Get(db, user, KeyPrefix+threadID)
	if err != nil {
		return nil, err
	}
	if !found {
		lg.Logf("no stored attachment selections found for thread %s\n", threadID)
		return nil, nil
	}
	var state map[string]bool
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		return nil, err
	}
	return state, nil
}

// Apply resolves the stored state against the current attachment enumeration
// a stored key with no matching attachment is simply unused, a present
// attachment with no stored key defaults to unselected
func Apply(attachments []glb.AttachmentRecord, state map[string]bool) []glb.AttachmentRecord {
	var selected []glb.AttachmentRecord
	for _, attachment := range attachments {
		if state[Key(attachment.Name, attachment.SourceIndex)] {
			selected = append(selected, attachment)
		}
	}
	return selected
}
