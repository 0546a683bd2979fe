package database

import (
	"context"
	"database/sql"
)

// presentsSchema creates the catalog table.  IDs are opaque UUIDs assigned
// by the repository at insert time; images holds a JSON array of URL paths
// in display order.  updated_at refreshes on every mutation.
const presentsSchema = `
CREATE TABLE IF NOT EXISTS presents (
    id          CHAR(36)      NOT NULL,
    name        VARCHAR(255)  NOT NULL,
    description TEXT          NOT NULL,
    price       DECIMAL(10,2) NOT NULL,
    images      JSON          NOT NULL,
    is_reserved TINYINT(1)    NOT NULL DEFAULT 0,
    created_at  DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the application tables when they do not exist yet,
// so a fresh server or the seed binary can run against an empty database.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, presentsSchema)
	return err
}
