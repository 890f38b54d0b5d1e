package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medtrack/medtrack/internal/repository"
	"github.com/medtrack/medtrack/pkg/entity"
)

const summaryPageLines = 40

type ReportsService struct {
	medsRepo repository.MedicationsRepositoryI
	logsRepo repository.DoseLogsRepositoryI
	now      func() time.Time
}

func NewReportsService(medsRepo repository.MedicationsRepositoryI, logsRepo repository.DoseLogsRepositoryI) *ReportsService {
	if medsRepo == nil || logsRepo == nil {
		log.Fatal("on reports service provided nil repos")
	}
	return &ReportsService{
		medsRepo: medsRepo,
		logsRepo: logsRepo,
		now:      time.Now,
	}
}

// FilterLogs keeps logs scheduled within the trailing days window, narrowed
// to one medication when the filter names it.
func FilterLogs(logs []entity.DoseLog, now time.Time, filter ReportFilter) []entity.DoseLog {
	cutoff := now.AddDate(0, 0, -filter.Days)
	filtered := make([]entity.DoseLog, 0, len(logs))
	for _, log := range logs {
		if log.ScheduledTime.Before(cutoff) {
			continue
		}
		if filter.MedicationID != nil && log.MedicationID != *filter.MedicationID {
			continue
		}
		filtered = append(filtered, log)
	}
	return filtered
}

// Every cell is quoted, embedded quotes doubled, matching the export format
// consumers of the old reports already parse.
func csvCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// BuildCSV renders dose logs as a comma-separated table. A log whose
// medication has been deleted renders the Medication column as "Unknown"
// and the Dose column empty.
func BuildCSV(logs []entity.DoseLog, meds []*entity.Medication) string {
	byID := make(map[uuid.UUID]*entity.Medication, len(meds))
	for _, med := range meds {
		byID[med.ID] = med
	}
	var sb strings.Builder
	header := []string{"Date", "Time", "Medication", "Dose", "Status", "Taken Time"}
	rows := make([][]string, 0, len(logs)+1)
	rows = append(rows, header)
	for _, log := range logs {
		name := "Unknown"
		dose := ""
		if med, ok := byID[log.MedicationID]; ok {
			name = med.Name
			dose = med.Dose
		}
		takenTime := ""
		if log.TakenTime != nil {
			takenTime = log.TakenTime.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			log.ScheduledTime.Format("2006-01-02"),
			log.ScheduledTime.Format("15:04"),
			name,
			dose,
			string(log.Status),
			takenTime,
		})
	}
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(csvCell(cell))
		}
	}
	return sb.String()
}

// BuildSummary renders the textual report document: title, period,
// generation timestamp, summary counts and the enumerated medication list,
// split into fixed-height pages separated by form feeds.
func BuildSummary(logs []entity.DoseLog, meds []*entity.Medication, now time.Time, days int) string {
	var taken int
	for _, log := range logs {
		if log.Status == entity.StatusTaken {
			taken++
		}
	}
	lines := []string{
		"MedTrack Report",
		"",
		fmt.Sprintf("Report Period: Last %d days", days),
		"Generated: " + now.Format("Jan 2, 2006"),
		"",
		"Summary:",
		fmt.Sprintf("  Total Scheduled Doses: %d", len(logs)),
		fmt.Sprintf("  Doses Taken: %d", taken),
		fmt.Sprintf("  Overall Adherence: %d%%", percentage(taken, len(logs))),
		"",
		"Active Medications:",
	}
	for i, med := range meds {
		lines = append(lines, fmt.Sprintf("  %d. %s - %s (%dx daily)", i+1, med.Name, med.Dose, med.FrequencyPerDay))
	}
	var pages []string
	for start := 0; start < len(lines); start += summaryPageLines {
		end := start + summaryPageLines
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, strings.Join(lines[start:end], "\n"))
	}
	return strings.Join(pages, "\n\f\n")
}

func (serv *ReportsService) fetch(ctx context.Context, userID uuid.UUID, filter ReportFilter) ([]entity.DoseLog, []*entity.Medication, error) {
	logs, err := serv.logsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, errors.New("repository error: " + err.Error())
	}
	meds, err := serv.medsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, errors.New("repository error: " + err.Error())
	}
	return FilterLogs(logs, serv.now(), filter), meds, nil
}

func (serv *ReportsService) ExportCSV(ctx context.Context, userID uuid.UUID, filter ReportFilter) ([]byte, error) {
	logs, meds, err := serv.fetch(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return []byte(BuildCSV(logs, meds)), nil
}

func (serv *ReportsService) ExportSummary(ctx context.Context, userID uuid.UUID, filter ReportFilter) ([]byte, error) {
	logs, meds, err := serv.fetch(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return []byte(BuildSummary(logs, meds, serv.now(), filter.Days)), nil
}
