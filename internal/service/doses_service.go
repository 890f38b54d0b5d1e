package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/internal/repository"
	"github.com/medtrack/medtrack/pkg/entity"
)

const (
	// Marking a dose more than this long after its scheduled time records
	// it as late instead of taken. The boundary itself still counts as taken.
	lateAfter = 4 * time.Hour

	milestoneWindow = 7 * 24 * time.Hour
	milestoneStep   = 7
)

type DosesService struct {
	medsRepo repository.MedicationsRepositoryI
	logsRepo repository.DoseLogsRepositoryI
	// Overridable clock for tests
	now func() time.Time
}

func NewDosesService(medsRepo repository.MedicationsRepositoryI, logsRepo repository.DoseLogsRepositoryI) *DosesService {
	if medsRepo == nil || logsRepo == nil {
		log.Fatal("on doses service provided nil repos")
	}
	return &DosesService{
		medsRepo: medsRepo,
		logsRepo: logsRepo,
		now:      time.Now,
	}
}

// ResolveStatus applies the completion rule: a dose marked more than
// lateAfter past its scheduled time is late, otherwise taken.
func ResolveStatus(scheduledTime, now time.Time) entity.DoseStatus {
	if now.Sub(scheduledTime) > lateAfter {
		return entity.StatusLate
	}
	return entity.StatusTaken
}

func (serv *DosesService) MarkTaken(ctx context.Context, medID, userID uuid.UUID, scheduledTime time.Time) (*entity.DoseLog, *entity.Milestone, error) {
	med, err := serv.medsRepo.GetByID(ctx, medID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicationNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("repository error: " + err.Error())
	}
	if med.UserID != userID {
		return nil, nil, errorvalues.ErrWrongOwner
	}
	now := serv.now()
	takenTime := now
	dose := entity.DoseLog{
		UserID:        userID,
		MedicationID:  medID,
		ScheduledTime: scheduledTime,
		TakenTime:     &takenTime,
		Status:        ResolveStatus(scheduledTime, now),
	}
	written, err := serv.logsRepo.Upsert(ctx, &dose)
	if err != nil {
		return nil, nil, errors.New("repository error: " + err.Error())
	}
	milestone, err := serv.checkMilestone(ctx, userID, now)
	if err != nil {
		// The dose is already recorded, a failed milestone read shouldn't
		// undo the user's action
		return written, nil, nil
	}
	return written, milestone, nil
}

// checkMilestone counts taken doses in the trailing week, including the one
// just written. Not transactional with the insert: the system is single-user
// and single-client, a double-fire is acceptable there.
func (serv *DosesService) checkMilestone(ctx context.Context, userID uuid.UUID, now time.Time) (*entity.Milestone, error) {
	count, err := serv.logsRepo.CountTakenSince(ctx, userID, now.Add(-milestoneWindow))
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	if count > 0 && count%milestoneStep == 0 {
		return &entity.Milestone{
			Count:   count,
			Message: fmt.Sprintf("Amazing! You've taken %d doses on time this week!", count),
		}, nil
	}
	return nil, nil
}

func (serv *DosesService) GetLogs(ctx context.Context, userID uuid.UUID) ([]entity.DoseLog, error) {
	logs, err := serv.logsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return logs, nil
}

func (serv *DosesService) GetDaySchedule(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.ScheduledDose, error) {
	meds, err := serv.medsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	logs, err := serv.logsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return BuildDaySchedule(day, serv.now(), meds, logs), nil
}
