package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medtrack/medtrack/internal/service"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	medsService      service.MedicationsServiceI
	dosesService     service.DosesServiceI
	analyticsService service.AnalyticsServiceI
	reportsService   service.ReportsServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService        service.UserServiceI
	MedicationsService service.MedicationsServiceI
	DosesService       service.DosesServiceI
	AnalyticsService   service.AnalyticsServiceI
	ReportsService     service.ReportsServiceI
	JwtService         JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		medsService:      servicesOptions.MedicationsService,
		dosesService:     servicesOptions.DosesService,
		analyticsService: servicesOptions.AnalyticsService,
		reportsService:   servicesOptions.ReportsService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) Routes() *chi.Mux {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Delete("/account", s.DeleteAccount)

			r.Get("/medications", s.GetMedications)
			r.Post("/medications", s.CreateMedication)
			r.Get("/medications/{id}", s.GetMedication)
			r.Put("/medications/{id}", s.UpdateMedication)
			r.Delete("/medications/{id}", s.DeleteMedication)

			r.Get("/schedule", s.GetSchedule)
			r.Post("/doses/taken", s.MarkDoseTaken)
			r.Get("/doses", s.GetDoseLogs)

			r.Get("/analytics/stats", s.GetStats)
			r.Get("/analytics/heatmap", s.GetHeatmap)
			r.Get("/analytics/medications", s.GetMedicationAdherence)

			r.Get("/reports/csv", s.ExportCSV)
			r.Get("/reports/summary", s.ExportSummary)
		})
	})
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.Routes())
}
