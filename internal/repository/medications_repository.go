package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/pkg/cleanup"
	"github.com/medtrack/medtrack/pkg/entity"
)

type MedicationsRepository struct {
	conn PgConnection
}

func NewMedicationsRepo(cfg DBConfig) *MedicationsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for medicationsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for medicationsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &MedicationsRepository{
		conn: pool,
	}
}

func NewMedicationsRepoWithConn(conn PgConnection) *MedicationsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for medicationsRepo: " + err.Error())
	}
	return &MedicationsRepository{
		conn: conn,
	}
}

func (mr *MedicationsRepository) Create(ctx context.Context, med *entity.Medication) (uuid.UUID, error) {
	var id uuid.UUID
	row := mr.conn.QueryRow(ctx, `INSERT INTO medications
		(user_id, name, dose, frequency_per_day, category, family_member, start_date, end_date, reminder_times, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id;`,
		med.UserID,
		med.Name,
		med.Dose,
		med.FrequencyPerDay,
		med.Category,
		med.FamilyMember,
		med.StartDate,
		med.EndDate,
		med.ReminderTimes,
		med.Color,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.UUID{}, errorvalues.ErrMedicationExists
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating medication db error: " + err.Error())
	}
	return id, nil
}

func (mr *MedicationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	var med entity.Medication
	med.ID = id
	row := mr.conn.QueryRow(ctx, `SELECT user_id, name, dose, frequency_per_day, category, family_member,
		start_date, end_date, reminder_times, color, created_at FROM medications WHERE id = $1;`, id)
	err := row.Scan(&med.UserID, &med.Name, &med.Dose, &med.FrequencyPerDay, &med.Category, &med.FamilyMember,
		&med.StartDate, &med.EndDate, &med.ReminderTimes, &med.Color, &med.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrMedicationNotFound
		}
		return nil, errors.New("getting medication by id error: " + err.Error())
	}
	return &med, nil
}

func (mr *MedicationsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Medication, error) {
	meds := make([]*entity.Medication, 0)
	rows, err := mr.conn.Query(ctx, `SELECT id, user_id, name, dose, frequency_per_day, category, family_member,
		start_date, end_date, reminder_times, color, created_at FROM medications WHERE user_id = $1 ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting medications by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		m := entity.Medication{}
		err = rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dose, &m.FrequencyPerDay, &m.Category, &m.FamilyMember,
			&m.StartDate, &m.EndDate, &m.ReminderTimes, &m.Color, &m.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarhalling medication error: " + err.Error())
		}
		meds = append(meds, &m)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return meds, nil
}

func (mr *MedicationsRepository) Update(ctx context.Context, med *entity.Medication) error {
	ct, err := mr.conn.Exec(ctx, `UPDATE medications SET name = $1, dose = $2, frequency_per_day = $3, category = $4,
		family_member = $5, start_date = $6, end_date = $7, reminder_times = $8, color = $9 WHERE id = $10;`,
		med.Name, med.Dose, med.FrequencyPerDay, med.Category, med.FamilyMember,
		med.StartDate, med.EndDate, med.ReminderTimes, med.Color, med.ID,
	)
	if err != nil {
		return errors.New("error updating medication: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMedicationNotFound
	}
	return nil
}

func (mr *MedicationsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := mr.conn.Exec(ctx, `DELETE FROM medications WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting medication: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMedicationNotFound
	}
	return nil
}
