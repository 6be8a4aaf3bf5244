package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/dbx"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/google/uuid"
)

const eventColumns = `id, user_id, title, description, event_date, event_time, event_type, organization, remind_days, deleted_at, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DB (*sql.DB).
type PostgresRepository struct {
	db dbx.DB
}

func NewPostgresRepository(db dbx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		e          models.Event
		eventType  string
		remindDays sql.NullInt64
		deletedAt  sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.Date, &e.Time,
		&eventType, &e.Organization, &remindDays, &deletedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Type = models.EventType(eventType)
	if remindDays.Valid {
		v := int(remindDays.Int64)
		e.RemindDays = &v
	}
	if deletedAt.Valid {
		v := deletedAt.Time
		e.DeletedAt = &v
	}
	return &e, nil
}

func remindDaysArg(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func (r *PostgresRepository) Create(ctx context.Context, ne models.NewEvent) (*models.Event, error) {
	now := time.Now().UTC()
	e := &models.Event{
		ID:           uuid.NewString(),
		UserID:       ne.UserID,
		Title:        ne.Title,
		Description:  ne.Description,
		Date:         ne.Date,
		Time:         ne.Time,
		Type:         ne.Type,
		Organization: ne.Organization,
		RemindDays:   ne.RemindDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query :=
		`INSERT INTO events (id, user_id, title, description, event_date, event_time, event_type, organization, remind_days, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

	if _, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Title, e.Description, e.Date, e.Time, string(e.Type), e.Organization,
		remindDaysArg(e.RemindDays), now); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e.Clone(), nil
}

// FindByUserAndDateRange relies on fixed-width date and time strings, so the
// "C" collation gives the same order as models.CompareEvents: an empty time
// sorts before every HH:mm value.
func (r *PostgresRepository) FindByUserAndDateRange(ctx context.Context, userID, from, to string) ([]*models.Event, error) {
	if err := models.CheckRange(from, to); err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE user_id = $1 AND deleted_at IS NULL AND event_date >= $2 AND event_date <= $3
		ORDER BY event_date COLLATE "C", event_time COLLATE "C"`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	return findOne(ctx, r.db, query, id, userID)
}

func findOne(ctx context.Context, db dbx.DBTX, query string, args ...any) (*models.Event, error) {
	e, err := scanEvent(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// UpdateByIDAndUser locks the live row, applies patch and writes it back in
// one transaction. Concurrent updates serialise on the row lock and the last
// writer wins.
func (r *PostgresRepository) UpdateByIDAndUser(ctx context.Context, id, userID string, patch models.EventPatch) (*models.Event, error) {
	var updated *models.Event

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		e, err := findOne(ctx, tx,
			`SELECT `+eventColumns+` FROM events WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL FOR UPDATE`,
			id, userID)
		if err != nil {
			return err
		}

		patch.Apply(e, time.Now().UTC())

		query :=
			`UPDATE events
			 SET title = $3, description = $4, event_date = $5, event_time = $6, event_type = $7,
			     organization = $8, remind_days = $9, updated_at = $10
			 WHERE id = $1 AND user_id = $2`

		if _, err := tx.ExecContext(ctx, query,
			e.ID, e.UserID, e.Title, e.Description, e.Date, e.Time, string(e.Type), e.Organization,
			remindDaysArg(e.RemindDays), e.UpdatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *PostgresRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	query :=
		`UPDATE events SET deleted_at = $3, updated_at = $3
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, userID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}
