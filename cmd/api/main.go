// @title MedTrack API
// @description API for the medication adherence tracker "MedTrack"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/medtrack/medtrack/internal/api"
	"github.com/medtrack/medtrack/internal/repository"
	"github.com/medtrack/medtrack/internal/service"
	"github.com/medtrack/medtrack/pkg/cleanup"
	"github.com/medtrack/medtrack/pkg/config"
	jwtservice "github.com/medtrack/medtrack/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	medsRepo := repository.NewMedicationsRepo(&dbCfg)
	logsRepo := repository.NewDoseLogsRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		UserService:        service.NewUserService(repository.NewUsersRepo(&dbCfg)),
		MedicationsService: service.NewMedicationsService(medsRepo),
		DosesService:       service.NewDosesService(medsRepo, logsRepo),
		AnalyticsService:   service.NewAnalyticsService(medsRepo, logsRepo),
		ReportsService:     service.NewReportsService(medsRepo, logsRepo),
		JwtService:         jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
