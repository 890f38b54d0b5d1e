package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/internal/repository"
	"github.com/medtrack/medtrack/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func testDoseLog() entity.DoseLog {
	takenTime := time.Date(2026, 8, 10, 9, 3, 0, 0, time.UTC)
	return entity.DoseLog{
		UserID:        userID,
		MedicationID:  uuid.New(),
		ScheduledTime: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
		TakenTime:     &takenTime,
		Status:        entity.StatusTaken,
	}
}

func TestUpsertDoseLog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDoseLogsRepoWithConn(mock)
	dose := testDoseLog()
	id := uuid.New()
	createdAt := time.Now()
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO dose_logs (user_id, medication_id, scheduled_time, taken_time, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (medication_id, scheduled_time) DO UPDATE SET taken_time = EXCLUDED.taken_time, status = EXCLUDED.status
		RETURNING id, created_at;`)
	t.Run("successfully upserted", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(dose.UserID, dose.MedicationID, dose.ScheduledTime, dose.TakenTime, dose.Status).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))
		result, err := repo.Upsert(ctx, &dose)
		assert.NoError(t, err)
		assert.Equal(t, id, result.ID)
		assert.Equal(t, createdAt, result.CreatedAt)
		assert.Equal(t, dose.Status, result.Status)
	})
	t.Run("FK violation", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(dose.UserID, dose.MedicationID, dose.ScheduledTime, dose.TakenTime, dose.Status).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Upsert(ctx, &dose)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(dose.UserID, dose.MedicationID, dose.ScheduledTime, dose.TakenTime, dose.Status).
			WillReturnError(errors.New("db error"))
		_, err := repo.Upsert(ctx, &dose)
		assert.Error(t, err)
	})
	t.Run("nil dose log", func(t *testing.T) {
		_, err := repo.Upsert(ctx, nil)
		assert.Error(t, err)
	})
}

func TestGetDoseLogsByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDoseLogsRepoWithConn(mock)
	first := testDoseLog()
	first.ID = uuid.New()
	first.CreatedAt = time.Now()
	second := testDoseLog()
	second.ID = uuid.New()
	second.ScheduledTime = first.ScheduledTime.Add(-12 * time.Hour)
	second.TakenTime = nil
	second.Status = entity.StatusMissed
	second.CreatedAt = time.Now()
	logs := []entity.DoseLog{first, second}
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, user_id, medication_id, scheduled_time, taken_time, status, created_at
		FROM dose_logs WHERE user_id = $1 ORDER BY scheduled_time DESC;`)
	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "medication_id", "scheduled_time", "taken_time", "status", "created_at"})
		for _, d := range logs {
			rows.AddRow(d.ID, d.UserID, d.MedicationID, d.ScheduledTime, d.TakenTime, d.Status, d.CreatedAt)
		}
		mock.ExpectQuery(query).
			WithArgs(userID).
			WillReturnRows(rows)
		result, err := repo.GetByUserID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, logs, result)
	})
	t.Run("no logs", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "medication_id", "scheduled_time", "taken_time", "status", "created_at"}))
		result, err := repo.GetByUserID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(result))
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(userID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByUserID(ctx, userID)
		assert.Error(t, err)
	})
}

func TestCountTakenSince(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDoseLogsRepoWithConn(mock)
	since := time.Now().Add(-7 * 24 * time.Hour)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT COUNT(*) FROM dose_logs WHERE user_id = $1 AND status = $2 AND taken_time > $3;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(userID, entity.StatusTaken, since).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
		count, err := repo.CountTakenSince(ctx, userID, since)
		assert.NoError(t, err)
		assert.Equal(t, 7, count)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(userID, entity.StatusTaken, since).
			WillReturnError(errors.New("db error"))
		_, err := repo.CountTakenSince(ctx, userID, since)
		assert.Error(t, err)
	})
}
