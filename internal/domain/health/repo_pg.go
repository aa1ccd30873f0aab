package health

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type readingRepoPG struct{ db queryable }

func NewReadingRepoPG(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepoPG{db: pool}
}

// seq is a BIGSERIAL, so ordering by it is creation order even when two
// inserts share a created_at timestamp.
const readingCols = `id, heartrate, bloodpressure, oxygensaturation, sleepquality,
	steps, metabolism, stresslevel, focus, mindfulness, vatta, pitta, kapha, created_at`

func (r *readingRepoPG) scanRow(row pgx.Row) (*HealthReading, error) {
	var (
		h  HealthReading
		id uuid.UUID
	)
	err := row.Scan(&id, &h.HeartRate, &h.BloodPressure, &h.OxygenSaturation, &h.SleepQuality,
		&h.Steps, &h.Metabolism, &h.StressLevel, &h.Focus, &h.Mindfulness,
		&h.Vatta, &h.Pitta, &h.Kapha, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	h.ID = id.String()
	return &h, nil
}

func (r *readingRepoPG) Create(ctx context.Context, h *HealthReading) error {
	id := uuid.New()
	err := r.db.QueryRow(ctx, `
		INSERT INTO health_readings (id, heartrate, bloodpressure, oxygensaturation, sleepquality,
			steps, metabolism, stresslevel, focus, mindfulness, vatta, pitta, kapha)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at`,
		id, h.HeartRate, h.BloodPressure, h.OxygenSaturation, h.SleepQuality,
		h.Steps, h.Metabolism, h.StressLevel, h.Focus, h.Mindfulness,
		h.Vatta, h.Pitta, h.Kapha).Scan(&h.CreatedAt)
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	h.ID = id.String()
	return nil
}

func (r *readingRepoPG) GetByID(ctx context.Context, id string) (*HealthReading, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	h, err := r.scanRow(r.db.QueryRow(ctx, `SELECT `+readingCols+` FROM health_readings WHERE id = $1`, uid))
	return h, r.mapErr("get", err)
}

func (r *readingRepoPG) Latest(ctx context.Context) (*HealthReading, error) {
	h, err := r.scanRow(r.db.QueryRow(ctx, `SELECT `+readingCols+` FROM health_readings ORDER BY seq DESC LIMIT 1`))
	return h, r.mapErr("latest", err)
}

func (r *readingRepoPG) List(ctx context.Context, limit, offset int) ([]*HealthReading, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM health_readings`).Scan(&total); err != nil {
		return nil, 0, &StoreError{Op: "count", Err: err}
	}
	rows, err := r.db.Query(ctx, `SELECT `+readingCols+` FROM health_readings ORDER BY seq DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()
	items := make([]*HealthReading, 0, limit)
	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, &StoreError{Op: "list", Err: err}
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &StoreError{Op: "list", Err: err}
	}
	return items, total, nil
}

func (r *readingRepoPG) mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	default:
		return &StoreError{Op: op, Err: err}
	}
}
