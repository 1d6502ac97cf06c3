package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campushub/identity/internal/common"
	"github.com/campushub/identity/internal/dbx"
	"github.com/campushub/identity/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = "id, name, email, student_id, password_hash, university, role, created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.StudentID,
		&user.PasswordHash, &user.University, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Create inserts a new account, assigning a fresh id when none is set.
// Unique-index violations are translated to the duplicate sentinels so the
// service sees the same errors whether the conflict was caught by its
// pre-check or by the index under a concurrent registration.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO users (id, name, email, student_id, password_hash, university, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.StudentID,
		user.PasswordHash, user.University, user.Role).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return nil, common.ErrDuplicateEmail
			case "users_student_id_key":
				return nil, common.ErrDuplicateStudentID
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE student_id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, studentID))
}

// Update changes name and/or university. NULLIF turns empty values into NULL
// so COALESCE keeps the current column value for any field the caller left
// blank.
func (r *PostgresRepository) Update(ctx context.Context, id, name, university string) (*models.User, error) {
	query :=
		`UPDATE users
		 SET name = COALESCE(NULLIF($2, ''), name),
		     university = COALESCE(NULLIF($3, ''), university)
		 WHERE id = $1
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, id, name, university))
}

func (r *PostgresRepository) SearchByName(ctx context.Context, fragment string, limit int) ([]*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE name ILIKE '%' || $1 || '%'
		 ORDER BY name
		 LIMIT $2
		 `

	return r.queryUsers(ctx, query, fragment, limit)
}

func (r *PostgresRepository) ListByClub(ctx context.Context, club, role string) ([]*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE university = $1 AND role = $2
		 ORDER BY name
		 `

	return r.queryUsers(ctx, query, club, role)
}

func (r *PostgresRepository) GetByStudentIDAndClub(ctx context.Context, studentID, club string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE student_id = $1 AND university = $2`
	return scanUser(r.db.QueryRowContext(ctx, query, studentID, club))
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.StudentID,
			&user.PasswordHash, &user.University, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
