package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/dbx"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, email, password_hash, first_name, last_name, organizations, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DB. Email uniqueness
// is enforced by the users_email_key index.
type PostgresRepository struct {
	db dbx.DB
}

func NewPostgresRepository(db dbx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u    models.User
		orgs []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&orgs, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if len(orgs) > 0 {
		if err := json.Unmarshal(orgs, &u.Organizations); err != nil {
			return nil, fmt.Errorf("decode organizations: %w", err)
		}
	}
	return &u, nil
}

func encodeOrganizations(orgs []string) (string, error) {
	if orgs == nil {
		orgs = []string{}
	}
	b, err := json.Marshal(orgs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, nu models.NewUser) (*models.User, error) {
	now := time.Now().UTC()
	u := &models.User{
		ID:            uuid.NewString(),
		Email:         models.NormalizeEmail(nu.Email),
		PasswordHash:  nu.PasswordHash,
		FirstName:     nu.FirstName,
		LastName:      nu.LastName,
		Organizations: nu.Organizations,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	orgs, err := encodeOrganizations(u.Organizations)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (id, email, password_hash, first_name, last_name, organizations, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err = r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, orgs, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.findOne(ctx, r.db, query, models.NormalizeEmail(email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, r.db, query, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, db dbx.DBTX, query string, args ...any) (*models.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// UpdateByID locks the row, applies patch and writes the row back in one
// transaction.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := r.findOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return err
		}

		patch.Apply(u, time.Now().UTC())

		orgs, err := encodeOrganizations(u.Organizations)
		if err != nil {
			return err
		}

		query :=
			`UPDATE users
			 SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			     organizations = $6, updated_at = $7
			 WHERE id = $1`

		if _, err := tx.ExecContext(ctx, query,
			u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, orgs, u.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return common.ErrorConflict
			}
			return fmt.Errorf("db error: %w", err)
		}

		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
