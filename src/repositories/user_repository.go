package repositories

import (
	"context"
	"errors"

	"cryptotracker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, password, role, p_language, p_currency, disabled, created_at, updated_at`

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, userID int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, userID int, hashed string) error
	UpdatePreference(ctx context.Context, userID int, column, value string) error
	SetDisabled(ctx context.Context, userID int, disabled bool) error
	Delete(ctx context.Context, userID int) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Email, &u.Password, &u.Role,
		&u.PLanguage, &u.PCurrency, &u.Disabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Email, &u.Password, &u.Role,
			&u.PLanguage, &u.PCurrency, &u.Disabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) GetByID(ctx context.Context, userID int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, password, role, p_language, p_currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING user_id, created_at, updated_at`,
		u.Email, u.Password, u.Role, u.PLanguage, u.PCurrency,
	).Scan(&u.UserID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID int, hashed string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE user_id = $2`,
		hashed, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdatePreference sets one of the preference columns. column is always a
// compile-time constant at call sites, never user input.
func (r *userRepo) UpdatePreference(ctx context.Context, userID int, column, value string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET `+column+` = $1, updated_at = NOW() WHERE user_id = $2`,
		value, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) SetDisabled(ctx context.Context, userID int, disabled bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET disabled = $1, updated_at = NOW() WHERE user_id = $2`,
		disabled, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, userID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
