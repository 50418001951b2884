// everything required to be done regularly -> started with docker_cron //
package config

import (
	"database/sql"
	"time"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/propstore"
	"github.ibmgcloud.net/dth/pmo_saver/selections"
)

// selection maps reference attachments by position, old entries are worthless
// once a thread moved on, so they get pruned instead of kept forever
func pruneOldSelections(cfg *glb.Config, db *sql.DB) {
	if cfg.SelectionKeepDays == 0 {
		lg.Logf("don't prune any selections, as defined in selection_keep_days config")
		return
	}
	timeCutOff := time.Now().AddDate(0, 0, -cfg.SelectionKeepDays)

	deleted, err := propstore.PruneOlder(db, selections.KeyPrefix, timeCutOff)
	if err != nil {
		lg.Loge(cfg, err)
		return
	}
	lg.Logf("pruned %d stale selection maps\n", deleted)
}

func Maintenance(cfg *glb.Config, db *sql.DB) {
	lg.Logf("performing maintenance")
	pruneOldSelections(cfg, db)
	lg.RotateLog(cfg)
	lg.Logf("maintenance completed")
}
