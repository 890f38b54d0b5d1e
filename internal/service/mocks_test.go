package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/pkg/entity"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateMedicationNotFound
	stateMedicationExists
	stateUserNotFound
	stateWrongOwner
)

// Variables shared between tests
var (
	userID       = uuid.New()
	medicationID = uuid.New()
	testMed      = entity.Medication{
		ID:              medicationID,
		UserID:          userID,
		Name:            "Lisinopril",
		Dose:            "10mg",
		FrequencyPerDay: 2,
		Category:        "Blood Pressure",
		StartDate:       time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		ReminderTimes:   []string{"09:00", "21:00"},
		Color:           "#3B82F6",
		CreatedAt:       time.Now(),
	}
)

type medsRepoMock struct {
	state mockState
}

func (mrmock *medsRepoMock) Create(ctx context.Context, med *entity.Medication) (uuid.UUID, error) {
	switch mrmock.state {
	case stateUserNotFound:
		return uuid.UUID{}, errorvalues.ErrOwnerNotFound
	case stateMedicationExists:
		return uuid.UUID{}, errorvalues.ErrMedicationExists
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		return medicationID, nil
	}
}

func (mrmock *medsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	switch mrmock.state {
	case stateMedicationNotFound:
		return nil, errorvalues.ErrMedicationNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		med := testMed
		med.UserID = uuid.New()
		return &med, nil
	default:
		med := testMed
		return &med, nil
	}
}

func (mrmock *medsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Medication, error) {
	switch mrmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		med := testMed
		return []*entity.Medication{&med}, nil
	}
}

func (mrmock *medsRepoMock) Update(ctx context.Context, med *entity.Medication) error {
	switch mrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateMedicationNotFound:
		return errorvalues.ErrMedicationNotFound
	default:
		return nil
	}
}

func (mrmock *medsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch mrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateMedicationNotFound:
		return errorvalues.ErrMedicationNotFound
	default:
		return nil
	}
}

type doseLogsRepoMock struct {
	state      mockState
	takenCount int
	logs       []entity.DoseLog
	lastUpsert *entity.DoseLog
}

func (dlmock *doseLogsRepoMock) Upsert(ctx context.Context, log *entity.DoseLog) (*entity.DoseLog, error) {
	switch dlmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		dlmock.lastUpsert = log
		written := *log
		written.ID = uuid.New()
		written.CreatedAt = time.Now()
		return &written, nil
	}
}

func (dlmock *doseLogsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.DoseLog, error) {
	switch dlmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return dlmock.logs, nil
	}
}

func (dlmock *doseLogsRepoMock) CountTakenSince(ctx context.Context, uid uuid.UUID, since time.Time) (int, error) {
	switch dlmock.state {
	case stateDBError:
		return 0, errors.New("db error")
	default:
		return dlmock.takenCount, nil
	}
}

type usersRepoMock struct {
	state mockState
	user  *entity.User
}

func (urmock *usersRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch urmock.state {
	case stateDBError:
		return errors.New("db error")
	default:
		urmock.user = user
		return nil
	}
}

func (urmock *usersRepoMock) FindByName(ctx context.Context, name string) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		if urmock.user != nil {
			return urmock.user, nil
		}
		return &entity.User{ID: userID, Name: name}, nil
	}
}

func (urmock *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		if urmock.user != nil {
			return urmock.user, nil
		}
		return &entity.User{ID: uid, Name: "test_user"}, nil
	}
}

func (urmock *usersRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	switch urmock.state {
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}
