package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Digmusic88/mundo-world-school/internal/data/database"
	"github.com/Digmusic88/mundo-world-school/internal/data/pgxutil"
	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	apperrors "github.com/Digmusic88/mundo-world-school/internal/errors"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// UserRepo is the Postgres-backed user directory. Users are returned in
// import order so "first match wins" behaves as it does for fixtures.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo returns a UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// userAttributes holds the role-specific attachments stored as JSONB.
type userAttributes struct {
	Subjects  []string `json:"subjects,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	Children  []string `json:"children,omitempty"`
	Group     string   `json:"group,omitempty"`
	Grade     string   `json:"grade,omitempty"`
	ParentID  string   `json:"parent_id,omitempty"`
	BirthDate string   `json:"birth_date,omitempty"`
	StudentID string   `json:"student_id,omitempty"`
}

type userRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	Role       string         `db:"role"`
	Status     string         `db:"status"`
	Phone      *string        `db:"phone"`
	Avatar     *string        `db:"avatar"`
	CreatedAt  *string        `db:"created_at"`
	LastLogin  *string        `db:"last_login"`
	Attributes userAttributes `db:"attributes"`
}

func (r userRow) toUser() school.User {
	return school.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      school.Role(r.Role),
		Status:    school.Status(r.Status),
		Phone:     deref(r.Phone),
		Avatar:    deref(r.Avatar),
		CreatedAt: deref(r.CreatedAt),
		LastLogin: deref(r.LastLogin),
		Subjects:  r.Attributes.Subjects,
		Groups:    r.Attributes.Groups,
		Children:  r.Attributes.Children,
		Group:     r.Attributes.Group,
		Grade:     r.Attributes.Grade,
		ParentID:  r.Attributes.ParentID,
		BirthDate: r.Attributes.BirthDate,
		StudentID: r.Attributes.StudentID,
	}
}

func attributesOf(u school.User) userAttributes {
	return userAttributes{
		Subjects:  u.Subjects,
		Groups:    u.Groups,
		Children:  u.Children,
		Group:     u.Group,
		Grade:     u.Grade,
		ParentID:  u.ParentID,
		BirthDate: u.BirthDate,
		StudentID: u.StudentID,
	}
}

// FetchAllUsers implements ports.UserDirectory.
func (r *UserRepo) FetchAllUsers(ctx context.Context) ([]school.User, error) {
	return r.List(ctx, UserFilter{})
}

var userColumns = []string{
	"id", "name", "email", "role", "status", "phone", "avatar", "created_at", "last_login", "attributes",
}

// UserFilter narrows List and Count. Zero fields match everything.
type UserFilter struct {
	Role   school.Role
	Status school.Status
	// Search is a case-insensitive substring of name or email.
	Search string
	Limit  int
	Offset int
}

func (f UserFilter) conditions() []database.ListQueryOption {
	var opts []database.ListQueryOption
	if f.Role != "" {
		opts = append(opts, database.WithCondition(database.WhereCond("role", database.Equal, string(f.Role))))
	}
	if f.Status != "" {
		opts = append(opts, database.WithCondition(database.WhereCond("status", database.Equal, string(f.Status))))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		opts = append(opts, database.WithCondition(database.WhereRawCond("name ILIKE $1 OR email ILIKE $1", pattern)))
	}
	return opts
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// List returns the users matching f in directory order.
func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]school.User, error) {
	if r.DB == nil {
		return nil, ErrNilDB
	}
	opts := append([]database.ListQueryOption{
		database.WithColumns(userColumns...),
		database.WithOrderBy("position", "ASC"),
		database.WithOffset(f.Offset),
	}, f.conditions()...)
	if f.Limit > 0 {
		opts = append(opts, database.WithLimit(f.Limit))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("users", opts...))

	var rows []userRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		res, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		rows, err = pgx.CollectRows(res, pgx.RowToStructByName[userRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list users: %w", apperrors.MapDBError(err))
	}

	users := make([]school.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toUser()
	}
	return users, nil
}

// Count returns how many users match f, ignoring Limit and Offset.
func (r *UserRepo) Count(ctx context.Context, f UserFilter) (int, error) {
	if r.DB == nil {
		return 0, ErrNilDB
	}
	opts := append([]database.ListQueryOption{database.WithCountOnly()}, f.conditions()...)
	query, args := database.BuildListQuery(database.NewListQueryOptions("users", opts...))

	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", apperrors.MapDBError(err))
	}
	return n, nil
}

const userUpsertQuery = `
	INSERT INTO users (id, name, email, role, status, phone, avatar, created_at, last_login, attributes)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		email = EXCLUDED.email,
		role = EXCLUDED.role,
		status = EXCLUDED.status,
		phone = EXCLUDED.phone,
		avatar = EXCLUDED.avatar,
		created_at = EXCLUDED.created_at,
		last_login = EXCLUDED.last_login,
		attributes = EXCLUDED.attributes,
		imported_at = now()
	RETURNING (xmax = 0) AS inserted`

// Upsert writes users in one transaction, keyed by id. New rows are appended
// to the directory order; existing rows keep their position. An email that
// already belongs to another id fails the whole batch with a Conflict error.
func (r *UserRepo) Upsert(ctx context.Context, users []school.User) (inserted, updated int, err error) {
	if r.DB == nil {
		return 0, 0, ErrNilDB
	}
	err = pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		inserted, updated = 0, 0
		for _, u := range users {
			status := u.Status
			if status == "" {
				status = school.StatusActive
			}
			var isNew bool
			if err := tx.QueryRow(ctx, userUpsertQuery,
				u.ID, u.Name, u.Email, string(u.Role), string(status),
				u.Phone, u.Avatar, u.CreatedAt, u.LastLogin, attributesOf(u),
			).Scan(&isNew); err != nil {
				return fmt.Errorf("upsert user %s: %w", u.ID, err)
			}
			if isNew {
				inserted++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, apperrors.MapDBError(err)
	}
	return inserted, updated, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ ports.UserDirectory = (*UserRepo)(nil)
