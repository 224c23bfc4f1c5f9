package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Drawing struct {
	ID        string
	OwnerID   string
	Name      string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

const createUser = `
INSERT INTO users (id, email, password, display_name)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password, display_name, created_at`

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.Email, arg.Password, arg.DisplayName)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

type CreateDrawingParams struct {
	ID       string
	OwnerID  string
	Name     string
	Document json.RawMessage
}

const createDrawing = `
INSERT INTO drawings (id, owner_id, name, document)
VALUES ($1, $2, $3, $4)
RETURNING id, owner_id, name, version, document, created_at, updated_at`

func (q *Queries) CreateDrawing(ctx context.Context, arg CreateDrawingParams) (Drawing, error) {
	row := q.db.QueryRow(ctx, createDrawing, arg.ID, arg.OwnerID, arg.Name, arg.Document)
	return scanDrawing(row)
}

const getDrawing = `
SELECT id, owner_id, name, version, document, created_at, updated_at
FROM drawings WHERE id = $1`

func (q *Queries) GetDrawing(ctx context.Context, id string) (Drawing, error) {
	return scanDrawing(q.db.QueryRow(ctx, getDrawing, id))
}

const listDrawingsForOwner = `
SELECT id, owner_id, name, version, document, created_at, updated_at
FROM drawings WHERE owner_id = $1 ORDER BY updated_at DESC`

func (q *Queries) ListDrawingsForOwner(ctx context.Context, ownerID string) ([]Drawing, error) {
	rows, err := q.db.Query(ctx, listDrawingsForOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Drawing
	for rows.Next() {
		d, err := scanDrawing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

type UpdateDrawingParams struct {
	ID       string
	Name     string
	Document json.RawMessage
}

const updateDrawing = `
UPDATE drawings
SET name = $2, document = $3, version = version + 1, updated_at = now()
WHERE id = $1
RETURNING id, owner_id, name, version, document, created_at, updated_at`

func (q *Queries) UpdateDrawing(ctx context.Context, arg UpdateDrawingParams) (Drawing, error) {
	return scanDrawing(q.db.QueryRow(ctx, updateDrawing, arg.ID, arg.Name, arg.Document))
}

const deleteDrawing = `DELETE FROM drawings WHERE id = $1`

func (q *Queries) DeleteDrawing(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteDrawing, id)
	return err
}

func scanDrawing(row pgx.Row) (Drawing, error) {
	var d Drawing
	err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &d.Version, &d.Document, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
