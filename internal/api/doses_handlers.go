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
	"github.com/medtrack/medtrack/pkg/entity"
	"github.com/medtrack/medtrack/pkg/httputil"
)

type MarkTakenRequest struct {
	MedicationID  string `json:"medication_id"`
	ScheduledTime string `json:"scheduled_time"`
}

type MarkTakenResponse struct {
	Log       *entity.DoseLog   `json:"log"`
	Milestone *entity.Milestone `json:"milestone,omitempty"`
}

type GetScheduleResponse struct {
	UserID string                 `json:"uid"`
	Date   string                 `json:"date"`
	Doses  []entity.ScheduledDose `json:"doses"`
}

type GetDoseLogsResponse struct {
	UserID string           `json:"uid"`
	Logs   []entity.DoseLog `json:"logs"`
}

func (s *Server) MarkDoseTaken(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("mark taken error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req MarkTakenRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("mark taken error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	medID, err := uuid.Parse(req.MedicationID)
	if err != nil {
		logger.Error("mark taken error: invalid medication id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medication id", nil)
		return
	}
	scheduledTime, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		logger.Error("mark taken error: invalid scheduled time")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "scheduled_time must be RFC3339", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	doseLog, milestone, err := s.dosesService.MarkTaken(ctx, medID, uid, scheduledTime)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMedicationNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("mark taken error: unexist medication")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "medication doesn't exist", nil)
		default:
			logger.Error("mark taken error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging dose", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, MarkTakenResponse{
		Log:       doseLog,
		Milestone: milestone,
	})
	logger.Info("dose logged", slog.String("status", string(doseLog.Status)))
}

func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get schedule error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	day := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		day, err = time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			logger.Error("get schedule error: invalid date param")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	doses, err := s.dosesService.GetDaySchedule(ctx, uid, day)
	if err != nil {
		logger.Error("getting schedule error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting schedule", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetScheduleResponse{
		UserID: uid.String(),
		Date:   day.Format("2006-01-02"),
		Doses:  doses,
	})
	logger.Info("schedule provided")
}

func (s *Server) GetDoseLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get dose logs error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	logs, err := s.dosesService.GetLogs(ctx, uid)
	if err != nil {
		logger.Error("getting dose logs error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting dose logs", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetDoseLogsResponse{
		UserID: uid.String(),
		Logs:   logs,
	})
	logger.Info("dose logs provided")
}
