package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
)

type UserStore struct {
	db Querier
}

func NewUserStore(db Querier) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, email, password, role, created_at, updated_at`

// scanUser rebuilds the entity including the email value object. A row
// holding an address that no longer validates fails the reconstruction
// rather than producing a half-valid user.
func scanUser(row pgx.Row) result.Result[domain.User] {
	var s domain.SerializedUser
	var id uuid.UUID
	err := row.Scan(&id, &s.Username, &s.Email, &s.Password, &s.Role, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return result.Err[domain.User](err)
	}
	s.ID = id.String()
	return domain.UserFromSerialized(s)
}

func (s *UserStore) FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.User] {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := scanUser(s.db.QueryRow(ctx, query, id))
	if err := user.Error(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.User](domain.ErrUserNotFound(id.String()))
		}
		if domain.KindOf(err) == "" {
			return result.Err[domain.User](fmt.Errorf("fetch user: %w", err))
		}
	}
	return user
}

func (s *UserStore) FetchByUsername(ctx context.Context, username string) result.Result[domain.User] {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user := scanUser(s.db.QueryRow(ctx, query, username))
	if err := user.Error(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.User](domain.ErrUserNotFound(username))
		}
		if domain.KindOf(err) == "" {
			return result.Err[domain.User](fmt.Errorf("fetch user: %w", err))
		}
	}
	return user
}

func (s *UserStore) Insert(ctx context.Context, user domain.User) result.Result[domain.User] {
	query := `
		INSERT INTO users (id, username, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	stored := scanUser(s.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email.String(), user.Password, user.Role, user.CreatedAt, user.UpdatedAt))
	if err := stored.Error(); err != nil {
		if isUniqueViolation(err) {
			return result.Err[domain.User](domain.ErrUserAlreadyExists(user.Username))
		}
		return result.Err[domain.User](fmt.Errorf("insert user: %w", err))
	}
	return stored
}

func (s *UserStore) Update(ctx context.Context, user domain.User) result.Result[domain.User] {
	query := `
		UPDATE users
		SET username = $2, password = $3, role = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	stored := scanUser(s.db.QueryRow(ctx, query, user.ID, user.Username, user.Password, user.Role))
	if err := stored.Error(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.User](domain.ErrUserUpdateFailed(user.ID.String()))
		}
		if isUniqueViolation(err) {
			return result.Err[domain.User](domain.ErrUserAlreadyExists(user.Username))
		}
		if domain.KindOf(err) == "" {
			return result.Err[domain.User](fmt.Errorf("update user: %w", err))
		}
	}
	return stored
}

func (s *UserStore) Remove(ctx context.Context, id uuid.UUID) result.Result[domain.User] {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	deleted := scanUser(s.db.QueryRow(ctx, query, id))
	if err := deleted.Error(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.User](domain.ErrUserNotFound(id.String()))
		}
		if domain.KindOf(err) == "" {
			return result.Err[domain.User](fmt.Errorf("remove user: %w", err))
		}
	}
	return deleted
}

func (s *UserStore) FetchAllWithPagination(ctx context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.User]] {
	opts = opts.Normalize()
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, opts.PageSize, opts.Offset())
	if err != nil {
		return result.Err[repository.Paginated[domain.User]](fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()

	users := make([]domain.User, 0, opts.PageSize)
	for rows.Next() {
		u := scanUser(rows)
		if err := u.Error(); err != nil {
			return result.Err[repository.Paginated[domain.User]](fmt.Errorf("scan user: %w", err))
		}
		users = append(users, u.Value())
	}
	if err := rows.Err(); err != nil {
		return result.Err[repository.Paginated[domain.User]](fmt.Errorf("iterate users: %w", err))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return result.Err[repository.Paginated[domain.User]](fmt.Errorf("count users: %w", err))
	}
	return result.Ok(repository.NewPaginated(users, opts, total))
}
