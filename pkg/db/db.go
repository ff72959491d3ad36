package db

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createQuery = `CREATE TABLE IF NOT EXISTS warnings (
	id           BIGSERIAL PRIMARY KEY,
	guild_id     BIGINT NOT NULL,
	user_id      BIGINT NOT NULL,
	moderator_id BIGINT NOT NULL,
	reason       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS warnings_guild_user_idx ON warnings (guild_id, user_id);`
	insertQuery = "INSERT INTO warnings (guild_id, user_id, moderator_id, reason) VALUES ($1, $2, $3, $4) RETURNING id, user_id, moderator_id, reason, created_at;"
	selectQuery = "SELECT id, user_id, moderator_id, reason, created_at FROM warnings WHERE guild_id = $1 AND user_id = $2 ORDER BY created_at, id LIMIT $3 OFFSET $4;"
	countQuery  = "SELECT count(*) FROM warnings WHERE guild_id = $1 AND user_id = $2;"
	deleteQuery = "DELETE FROM warnings WHERE guild_id = $1 AND id = $2;"
)

type Warning struct {
	ID          int64        `db:"id"`
	UserID      snowflake.ID `db:"user_id"`
	ModeratorID snowflake.ID `db:"moderator_id"`
	Reason      string       `db:"reason"`
	CreatedAt   time.Time    `db:"created_at"`
}

// DB stores moderation warnings. Guilds share one table and are told apart by guild_id.
type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

func (db *DB) Migrate() error {
	_, err := db.pool.Exec(context.Background(), createQuery)
	return err
}

func (db *DB) AddWarning(guildID snowflake.ID, userID snowflake.ID, moderatorID snowflake.ID, reason string) (Warning, error) {
	rows, _ := db.pool.Query(context.Background(), insertQuery, guildID, userID, moderatorID, reason)
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[Warning])
}

// GetWarnings returns one page of a member's warnings, oldest first, along with their total count.
func (db *DB) GetWarnings(guildID snowflake.ID, userID snowflake.ID, page int, perPage int) (warnings []Warning, total int, err error) {
	if err = db.pool.QueryRow(context.Background(), countQuery, guildID, userID).Scan(&total); err != nil {
		return
	}
	rows, _ := db.pool.Query(context.Background(), selectQuery, guildID, userID, perPage, page*perPage)
	warnings, err = pgx.CollectRows(rows, pgx.RowToStructByName[Warning])
	return
}

// RemoveWarning deletes a warning of the guild and reports whether it existed.
func (db *DB) RemoveWarning(guildID snowflake.ID, id int64) (bool, error) {
	tag, err := db.pool.Exec(context.Background(), deleteQuery, guildID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
