package service

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/medtrack/medtrack/internal/repository"
	"github.com/medtrack/medtrack/pkg/entity"
)

type AnalyticsService struct {
	medsRepo repository.MedicationsRepositoryI
	logsRepo repository.DoseLogsRepositoryI
	now      func() time.Time
}

func NewAnalyticsService(medsRepo repository.MedicationsRepositoryI, logsRepo repository.DoseLogsRepositoryI) *AnalyticsService {
	if medsRepo == nil || logsRepo == nil {
		log.Fatal("on analytics service provided nil repos")
	}
	return &AnalyticsService{
		medsRepo: medsRepo,
		logsRepo: logsRepo,
		now:      time.Now,
	}
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// weekBounds returns the Sunday midnight opening the calendar week holding t
// and the Sunday midnight closing it, in t's location.
func weekBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// CalculateStats aggregates a full dose log collection into adherence
// figures. Weekly percentage covers the Sunday-Saturday week holding now;
// the streak counts consecutive taken logs from the most recent scheduled
// time down, stopping at the first log that isn't taken.
func CalculateStats(logs []entity.DoseLog, now time.Time) entity.AdherenceStats {
	weekStart, weekEnd := weekBounds(now)
	var taken, missed, weeklyTotal, weeklyTaken int
	for _, log := range logs {
		switch log.Status {
		case entity.StatusTaken:
			taken++
		case entity.StatusMissed:
			missed++
		}
		if !log.ScheduledTime.Before(weekStart) && log.ScheduledTime.Before(weekEnd) {
			weeklyTotal++
			if log.Status == entity.StatusTaken {
				weeklyTaken++
			}
		}
	}
	sorted := make([]entity.DoseLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScheduledTime.After(sorted[j].ScheduledTime)
	})
	streak := 0
	for _, log := range sorted {
		if log.Status != entity.StatusTaken {
			break
		}
		streak++
	}
	return entity.AdherenceStats{
		OverallPercentage: percentage(taken, len(logs)),
		WeeklyPercentage:  percentage(weeklyTaken, weeklyTotal),
		Streak:            streak,
		TotalDoses:        len(logs),
		TakenDoses:        taken,
		MissedDoses:       missed,
	}
}

// BuildHeatmap groups logs by local calendar date. Days without logs are
// absent, so a zero-total entry can never appear; zero-filling a display
// range is the caller's job. Entries come back date-ascending.
func BuildHeatmap(logs []entity.DoseLog) []entity.HeatmapEntry {
	type dayCount struct {
		taken int
		total int
	}
	days := make(map[string]*dayCount)
	for _, log := range logs {
		date := log.ScheduledTime.Format("2006-01-02")
		count, ok := days[date]
		if !ok {
			count = &dayCount{}
			days[date] = count
		}
		count.total++
		if log.Status == entity.StatusTaken {
			count.taken++
		}
	}
	entries := make([]entity.HeatmapEntry, 0, len(days))
	for date, count := range days {
		entries = append(entries, entity.HeatmapEntry{
			Date:       date,
			Percentage: percentage(count.taken, count.total),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}

// RankMedications computes per-medication missed counts and adherence rates,
// ordered by missed count descending for "needs attention" surfacing.
func RankMedications(meds []*entity.Medication, logs []entity.DoseLog) []entity.MedicationAdherence {
	ranked := make([]entity.MedicationAdherence, 0, len(meds))
	for _, med := range meds {
		var total, missed int
		for _, log := range logs {
			if log.MedicationID != med.ID {
				continue
			}
			total++
			if log.Status == entity.StatusMissed {
				missed++
			}
		}
		ranked = append(ranked, entity.MedicationAdherence{
			Medication:    med,
			MissedCount:   missed,
			TotalCount:    total,
			AdherenceRate: percentage(total-missed, total),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MissedCount > ranked[j].MissedCount
	})
	return ranked
}

func (serv *AnalyticsService) GetStats(ctx context.Context, userID uuid.UUID) (*entity.AdherenceStats, error) {
	logs, err := serv.logsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	stats := CalculateStats(logs, serv.now())
	return &stats, nil
}

func (serv *AnalyticsService) GetHeatmap(ctx context.Context, userID uuid.UUID) ([]entity.HeatmapEntry, error) {
	logs, err := serv.logsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return BuildHeatmap(logs), nil
}

func (serv *AnalyticsService) GetMedicationAdherence(ctx context.Context, userID uuid.UUID) ([]entity.MedicationAdherence, error) {
	meds, err := serv.medsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	logs, err := serv.logsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return RankMedications(meds, logs), nil
}
