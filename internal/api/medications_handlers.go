package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/internal/service"
	"github.com/medtrack/medtrack/pkg/entity"
	"github.com/medtrack/medtrack/pkg/httputil"
)

type MedicationRequest struct {
	Name            string   `json:"name"`
	Dose            string   `json:"dose"`
	FrequencyPerDay int      `json:"frequency_per_day"`
	Category        string   `json:"category"`
	FamilyMember    string   `json:"family_member"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	ReminderTimes   []string `json:"reminder_times"`
	Color           string   `json:"color"`
}

type GetMedicationsResponse struct {
	UserID      string               `json:"uid"`
	Medications []*entity.Medication `json:"medications"`
}

func (req *MedicationRequest) toService() (*service.MedicationRequest, error) {
	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		return nil, errors.New("invalid start_date: " + err.Error())
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
		if err != nil {
			return nil, errors.New("invalid end_date: " + err.Error())
		}
		endDate = &parsed
	}
	return &service.MedicationRequest{
		Name:            req.Name,
		Dose:            req.Dose,
		FrequencyPerDay: req.FrequencyPerDay,
		Category:        req.Category,
		FamilyMember:    req.FamilyMember,
		StartDate:       startDate,
		EndDate:         endDate,
		ReminderTimes:   req.ReminderTimes,
		Color:           req.Color,
	}, nil
}

func (s *Server) CreateMedication(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create medication error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req MedicationRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create medication error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	servReq, err := req.toService()
	if err != nil {
		logger.Error("create medication error: invalid dates")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	med, err := s.medsService.CreateMedication(ctx, uid, servReq)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMedicationExists):
			logger.Error("create medication error: attempt to create existed medication")
			httputil.WriteErrorResponse(w, http.StatusConflict, "medication already exists", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create medication error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create medication: user doesn't exists", nil)
		default:
			logger.Error("create medication error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating medication", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, med)
	logger.Info("medication created")
}

func (s *Server) GetMedications(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get medications error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	meds, err := s.medsService.GetUserMedications(ctx, uid)
	if err != nil {
		logger.Error("getting medications list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting medications list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetMedicationsResponse{
		UserID:      uid.String(),
		Medications: meds,
	})
	logger.Info("medications provided")
}

func (s *Server) GetMedication(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get medication error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get medication error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medication id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	med, err := s.medsService.GetMedication(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMedicationNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get medication error: unexist medication")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "medication doesn't exist", nil)
		default:
			logger.Error("get medication error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting medication", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, med)
	logger.Info("medication provided")
}

func (s *Server) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update medication error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update medication error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medication id in path value", nil)
		return
	}
	var req MedicationRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update medication error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	servReq, err := req.toService()
	if err != nil {
		logger.Error("update medication error: invalid dates")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	med, err := s.medsService.UpdateMedication(ctx, id, uid, servReq)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMedicationNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update medication error: unexist medication")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "medication doesn't exist", nil)
		default:
			logger.Error("update medication error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating medication", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, med)
	logger.Info("medication updated")
}

func (s *Server) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("medication deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("medication deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medication id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.medsService.DeleteMedication(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMedicationNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("medication deletion error: unexist medication")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "medication doesn't exist", nil)
		default:
			logger.Error("medication deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting medication", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"deleted": true})
	logger.Info("medication deleted")
}
