package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/gvn/lending-platform/internal/core/domain"
)

// mysqlErrDuplicateEntry is the server error number for a violated unique key.
const mysqlErrDuplicateEntry = 1062

// UserRepository persists users and their role assignments. Roles live in
// the user_roles join table and are assembled in memory on every read, so a
// returned User always carries its full role set.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user row and its join rows in one transaction.
// A duplicate username maps to domain.ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, email, password, is_active) VALUES (?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.Active)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user id: %w", err)
	}

	if err := insertUserRoles(ctx, tx, id, user.Roles); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, email, password, is_active FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	index := make(map[int64]int)
	for rows.Next() {
		var u domain.User
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.Active); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Email = email.String
		u.Roles = []domain.Role{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	if len(users) == 0 {
		return []domain.User{}, nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assignments, err := r.rolesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, roles := range assignments {
		users[index[id]].Roles = roles
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password, is_active FROM users WHERE id = ?`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password, is_active FROM users WHERE username = ?`, username)
}

// Update rewrites the user row and replaces its join rows to match
// user.Roles, in one transaction.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, password = ?, is_active = ? WHERE id = ?`,
		user.Username, user.Email, user.PasswordHash, user.Active, user.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, user.ID); err != nil {
		return nil, fmt.Errorf("clear user roles: %w", err)
	}
	if err := insertUserRoles(ctx, tx, user.ID, user.Roles); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var email sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.Active)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.Email = email.String

	assignments, err := r.rolesFor(ctx, []int64{u.ID})
	if err != nil {
		return nil, err
	}
	u.Roles = assignments[u.ID]
	if u.Roles == nil {
		u.Roles = []domain.Role{}
	}
	return &u, nil
}

// rolesFor fetches role assignments for the given user ids with a single
// join query and groups them by user.
func (r *UserRepository) rolesFor(ctx context.Context, userIDs []int64) (map[int64][]domain.Role, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(userIDs)), ",")
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT ur.user_id, r.id, r.name
		 FROM user_roles ur
		 JOIN roles r ON r.id = ur.role_id
		 WHERE ur.user_id IN (`+placeholders+`)
		 ORDER BY r.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("select user roles: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.Role)
	for rows.Next() {
		var userID int64
		var role domain.Role
		if err := rows.Scan(&userID, &role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		out[userID] = append(out[userID], role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user roles: %w", err)
	}
	return out, nil
}

func insertUserRoles(ctx context.Context, tx *sql.Tx, userID int64, roles []domain.Role) error {
	for _, role := range roles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, role.ID); err != nil {
			return fmt.Errorf("insert user role: %w", err)
		}
	}
	return nil
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}
