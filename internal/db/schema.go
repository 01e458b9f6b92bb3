package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS custom_progress_bars (
    id VARCHAR(10) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    start_time DATETIME NOT NULL,
    end_time DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    created_by_ip VARCHAR(150)
);
`

// InitSchema creates the bar table if it is absent. The DDL is idempotent,
// so concurrent first-requests racing through it are harmless.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
