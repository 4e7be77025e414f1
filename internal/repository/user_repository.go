package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

// UserRepository handles persistence for users in the relational store.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, email, password_hash, role, phone, student_index, organization, created_at, updated_at"

// Create inserts a user and fills in the generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	query := `INSERT INTO users (name, email, password_hash, role, phone, student_index, organization, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	if err := r.db.GetContext(ctx, &user.ID, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.Phone, user.StudentIndex, user.Organization,
		user.CreatedAt, user.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1 LIMIT 1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1 LIMIT 1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole returns users ordered by creation time descending; a nil role
// returns every user.
func (r *UserRepository) ListByRole(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	var users []models.User
	if role != nil {
		query := fmt.Sprintf("SELECT %s FROM users WHERE role = $1 ORDER BY created_at DESC", userColumns)
		if err := r.db.SelectContext(ctx, &users, query, *role); err != nil {
			return nil, fmt.Errorf("list users by role: %w", err)
		}
		return users, nil
	}
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC", userColumns)
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CountByRole counts users holding the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE role = $1", role); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// NamesByIDs resolves display names for a set of user ids.
func (r *UserRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	query, args, err := sqlx.In("SELECT id, name FROM users WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build names query: %w", err)
	}
	query = r.db.Rebind(query)
	rows := []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("resolve user names: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
