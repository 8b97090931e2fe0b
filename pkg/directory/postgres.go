package directory

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations holds the goose migrations for the directory schema.
var Migrations = mustSub(migrationsFS, "migrations")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	userQuery = `SELECT id, email, name, role FROM users WHERE id = $1`

	groupsQuery = `
SELECT DISTINCT g.id
FROM groups g
JOIN allegiances a ON a.group_id = g.id
WHERE a.user_id = $1 AND g.is_virtual IS NOT TRUE
ORDER BY g.id`
)

// Querier is the pgx subset Postgres needs; *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

type Postgres struct {
	db Querier
}

func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) User(ctx context.Context, id int64) (User, error) {
	var u User
	err := p.db.QueryRow(ctx, userQuery, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("directory: load user %d: %w", id, err)
	}
	return u, nil
}

func (p *Postgres) Groups(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := p.db.Query(ctx, groupsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("directory: load groups of %d: %w", userID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("directory: scan groups of %d: %w", userID, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
