package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/internal/repository"
	"github.com/medtrack/medtrack/pkg/entity"
)

type MedicationsService struct {
	repo repository.MedicationsRepositoryI
}

func NewMedicationsService(medsRepo repository.MedicationsRepositoryI) *MedicationsService {
	if medsRepo == nil {
		log.Fatal("provided nil medicationsRepo")
	}
	return &MedicationsService{
		repo: medsRepo,
	}
}

func validateMedicationRequest(req *MedicationRequest) error {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return errors.New("validation error: end date before start date")
	}
	return nil
}

func (ms *MedicationsService) CreateMedication(ctx context.Context, uid uuid.UUID, req *MedicationRequest) (*entity.Medication, error) {
	if err := validateMedicationRequest(req); err != nil {
		return nil, err
	}
	m := entity.Medication{
		UserID:          uid,
		Name:            req.Name,
		Dose:            req.Dose,
		FrequencyPerDay: req.FrequencyPerDay,
		Category:        req.Category,
		FamilyMember:    req.FamilyMember,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ReminderTimes:   req.ReminderTimes,
		Color:           req.Color,
	}
	id, err := ms.repo.Create(ctx, &m)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		case errors.Is(err, errorvalues.ErrMedicationExists):
			return nil, errorvalues.ErrMedicationExists
		}
		return nil, errors.New("medications repository error: " + err.Error())
	}
	med, err := ms.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicationNotFound) {
			return nil, err
		}
		return nil, errors.New("medications repository error: " + err.Error())
	}
	return med, nil
}

func (ms *MedicationsService) GetUserMedications(ctx context.Context, uid uuid.UUID) ([]*entity.Medication, error) {
	meds, err := ms.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("medications repository error: " + err.Error())
	}
	return meds, nil
}

func (ms *MedicationsService) GetMedication(ctx context.Context, medID, userID uuid.UUID) (*entity.Medication, error) {
	med, err := ms.repo.GetByID(ctx, medID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicationNotFound) {
			return nil, err
		}
		return nil, errors.New("medications repository error: " + err.Error())
	}
	if med.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return med, nil
}

func (ms *MedicationsService) UpdateMedication(ctx context.Context, medID, userID uuid.UUID, req *MedicationRequest) (*entity.Medication, error) {
	if err := validateMedicationRequest(req); err != nil {
		return nil, err
	}
	med, err := ms.GetMedication(ctx, medID, userID)
	if err != nil {
		return nil, err
	}
	med.Name = req.Name
	med.Dose = req.Dose
	med.FrequencyPerDay = req.FrequencyPerDay
	med.Category = req.Category
	med.FamilyMember = req.FamilyMember
	med.StartDate = req.StartDate
	med.EndDate = req.EndDate
	med.ReminderTimes = req.ReminderTimes
	med.Color = req.Color
	err = ms.repo.Update(ctx, med)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicationNotFound) {
			return nil, err
		}
		return nil, errors.New("medications repository error: " + err.Error())
	}
	return med, nil
}

func (ms *MedicationsService) DeleteMedication(ctx context.Context, medID, userID uuid.UUID) error {
	med, err := ms.repo.GetByID(ctx, medID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicationNotFound) {
			return err
		}
		return errors.New("medications repository error: " + err.Error())
	}
	if med.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = ms.repo.Delete(ctx, medID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicationNotFound) {
			return err
		}
		return errors.New("medications repository error: " + err.Error())
	}
	return nil
}
