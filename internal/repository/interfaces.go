package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medtrack/medtrack/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type MedicationsRepositoryI interface {
	// Creates new medication. Returns generated id
	Create(ctx context.Context, med *entity.Medication) (uuid.UUID, error)
	// Searches medication with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error)
	// Lists medications owned by user with uid, newest first
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Medication, error)
	// Updates medication by ID (ID in med is necessary)
	Update(ctx context.Context, med *entity.Medication) error
	// Deletes medication with id. Dose logs referencing it stay untouched
	Delete(ctx context.Context, id uuid.UUID) error
}

type DoseLogsRepositoryI interface {
	// Inserts a dose log, or overwrites status and taken_time when a log
	// for the same (medication_id, scheduled_time) pair already exists
	Upsert(ctx context.Context, log *entity.DoseLog) (*entity.DoseLog, error)
	// Lists user's logs ordered by scheduled_time descending
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.DoseLog, error)
	// Counts user's taken logs with taken_time after since
	CountTakenSince(ctx context.Context, uid uuid.UUID, since time.Time) (int, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
