package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/pkg/cleanup"
	"github.com/medtrack/medtrack/pkg/entity"
)

type DoseLogsRepository struct {
	conn PgConnection
}

func NewDoseLogsRepo(cfg DBConfig) *DoseLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for doseLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for doseLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DoseLogsRepository{
		conn: pool,
	}
}

func NewDoseLogsRepoWithConn(conn PgConnection) *DoseLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for doseLogsRepo: " + err.Error())
	}
	return &DoseLogsRepository{
		conn: conn,
	}
}

// Upsert keeps at most one log per (medication_id, scheduled_time) pair, so
// a rapid double-submission overwrites instead of duplicating.
func (dr *DoseLogsRepository) Upsert(ctx context.Context, dose *entity.DoseLog) (*entity.DoseLog, error) {
	if dose == nil {
		return nil, errors.New("dose log is nil")
	}
	result := *dose
	row := dr.conn.QueryRow(ctx, `INSERT INTO dose_logs (user_id, medication_id, scheduled_time, taken_time, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (medication_id, scheduled_time) DO UPDATE SET taken_time = EXCLUDED.taken_time, status = EXCLUDED.status
		RETURNING id, created_at;`,
		dose.UserID,
		dose.MedicationID,
		dose.ScheduledTime,
		dose.TakenTime,
		dose.Status,
	)
	if err := row.Scan(&result.ID, &result.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("upserting dose log error: " + err.Error())
	}
	return &result, nil
}

func (dr *DoseLogsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.DoseLog, error) {
	rows, err := dr.conn.Query(ctx, `SELECT id, user_id, medication_id, scheduled_time, taken_time, status, created_at
		FROM dose_logs WHERE user_id = $1 ORDER BY scheduled_time DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting dose logs by uid error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.DoseLog, 0)
	for rows.Next() {
		dose := entity.DoseLog{}
		err = rows.Scan(&dose.ID, &dose.UserID, &dose.MedicationID, &dose.ScheduledTime, &dose.TakenTime, &dose.Status, &dose.CreatedAt)
		if err != nil {
			return nil, errors.New("dose log row parsing error: " + err.Error())
		}
		result = append(result, dose)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected dose log rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (dr *DoseLogsRepository) CountTakenSince(ctx context.Context, uid uuid.UUID, since time.Time) (int, error) {
	row := dr.conn.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM dose_logs WHERE user_id = $1 AND status = $2 AND taken_time > $3;`,
		uid,
		entity.StatusTaken,
		since,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting taken doses: " + err.Error())
	}
	return count, nil
}
