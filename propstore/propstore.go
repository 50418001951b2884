// durable per-user key-value property store //
package propstore

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

func GetDb() *sql.DB {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./pmo_saver_db.sqlite"
	}
	migrationNeeded := false
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		migrationNeeded = true
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal(err)
	}
	if migrationNeeded {
		migrate(db)
	}
	return db
}

// OpenDb is GetDb with an explicit path, used by tests
func OpenDb(dbPath string) (*sql.DB, error) {
	migrationNeeded := false
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		migrationNeeded = true
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if migrationNeeded {
		migrate(db)
	}
	return db, nil
}

func migrate(db *sql.DB) {
	sqlStmt := `
CREATE TABLE properties (user TEXT NOT NULL, key TEXT NOT NULL, value TEXT NOT NULL, updated_at INTEGER NOT NULL, PRIMARY KEY (user, key));
    `
	_, err := db.Exec(sqlStmt)
	if err != nil {
		lg.LogeNoMail(err)
		log.Fatal("Failed to migrate database for properties.")
	}
}

// Get returns the stored value and whether a value exists at all
// a missing key is not an error, callers need the distinction
func Get(db *sql.DB, user string, key string) (string, bool, error) {
	row := db.QueryRow(`
SELECT value FROM properties WHERE user = ? AND key = ?;
    `, user, key)
	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set overwrites any prior value, last write wins
func Set(db *sql.DB, user string, key string, value string) error {
	sqlStmt, err := db.Prepare(`
REPLACE INTO properties(user, key, value, updated_at) VALUES(?, ?, ?, ?);
    `)
	if err != nil {
		return err
	}
	defer sqlStmt.Close()
	_, err = sqlStmt.Exec(user, key, value, time.Now().Unix())
	return err
}

// PruneOlder deletes all properties with the given key prefix not touched
// since the cutoff, used by maintenance to drop stale selection maps
func PruneOlder(db *sql.DB, keyPrefix string, cutOff time.Time) (int64, error) {
	res, err := db.Exec(`
DELETE FROM properties WHERE key LIKE ? || '%' AND updated_at < ?;
    `, keyPrefix, cutOff.Unix())
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
