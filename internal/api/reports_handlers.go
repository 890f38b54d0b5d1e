package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/internal/service"
	"github.com/medtrack/medtrack/pkg/httputil"
)

func reportFilterFromQuery(r *http.Request) (service.ReportFilter, error) {
	filter := service.ReportFilter{Days: 7}
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days < 1 || days > 365 {
			return filter, errorvalues.ErrBadReportDays
		}
		filter.Days = days
	}
	if medParam := r.URL.Query().Get("medication_id"); medParam != "" {
		medID, err := uuid.Parse(medParam)
		if err != nil {
			return filter, errorvalues.ErrBadReportMedication
		}
		filter.MedicationID = &medID
	}
	return filter, nil
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, err := s.analyticsService.GetStats(ctx, uid)
	if err != nil {
		logger.Error("getting stats error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting adherence stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("stats provided")
}

func (s *Server) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get heatmap error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	heatmap, err := s.analyticsService.GetHeatmap(ctx, uid)
	if err != nil {
		logger.Error("getting heatmap error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting heatmap", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, heatmap)
	logger.Info("heatmap provided")
}

func (s *Server) GetMedicationAdherence(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get medication adherence error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	ranked, err := s.analyticsService.GetMedicationAdherence(ctx, uid)
	if err != nil {
		logger.Error("getting medication adherence error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting medication adherence", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ranked)
	logger.Info("medication adherence provided")
}

func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("export csv error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	filter, err := reportFilterFromQuery(r)
	if err != nil {
		logger.Error("export csv error: invalid filter params")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	blob, err := s.reportsService.ExportCSV(ctx, uid, filter)
	if err != nil {
		logger.Error("export csv error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while exporting csv report", nil)
		return
	}
	filename := "medication-report-" + time.Now().Format("2006-01-02") + ".csv"
	httputil.WriteFileResponse(w, "text/csv", filename, blob)
	logger.Info("csv report exported")
}

func (s *Server) ExportSummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("export summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	filter, err := reportFilterFromQuery(r)
	if err != nil {
		logger.Error("export summary error: invalid filter params")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	blob, err := s.reportsService.ExportSummary(ctx, uid, filter)
	if err != nil {
		logger.Error("export summary error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while exporting summary report", nil)
		return
	}
	filename := "medtrack-report-" + time.Now().Format("2006-01-02") + ".txt"
	httputil.WriteFileResponse(w, "text/plain", filename, blob)
	logger.Info("summary report exported")
}
