package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/config"
	"github.com/tejasnv/internhub/internal/db"
	"github.com/tejasnv/internhub/internal/jobs"
	"github.com/tejasnv/internhub/internal/pkg/auth"
	"github.com/tejasnv/internhub/internal/pkg/cache"
	"github.com/tejasnv/internhub/internal/pkg/email"
	"github.com/tejasnv/internhub/internal/pkg/filestorage"
	"github.com/tejasnv/internhub/internal/pkg/ws"
)

// Services contains every business service of the application
type Services struct {
	Auth         *AuthService
	Institution  *InstitutionService
	Student      *StudentService
	Application  *ApplicationService
	Mentor       *MentorService
	Report       *ReportService
	Visit        *VisitService
	Ticket       *TicketService
	Grievance    *GrievanceService
	Notification *NotificationService
	Stats        *StatsService
	BulkImport   *BulkImportService
	File         *FileService

	// Importer is owned here because it feeds on the notification
	// service; the server starts and stops it.
	Importer *jobs.Importer
}

// NewServices wires the services to their repositories
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	hub *ws.Hub,
	mailer email.Mailer,
	storage filestorage.FileStorage,
	statsCache cache.Cache,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	notifications := NewNotificationService(repos.NotificationRepository, repos.UserRepository, hub, mailer, logger)

	importer := jobs.NewImporter(
		database,
		repos.ImportJobRepository,
		repos.UserRepository,
		repos.StudentRepository,
		notifications,
		cfg.Jobs.QueueSize,
		cfg.Jobs.BatchSize,
		cfg.Jobs.MaxRetries,
		logger,
	)

	// Validated at startup
	statsTTL, _ := time.ParseDuration(cfg.Redis.StatsTTL)

	return &Services{
		Auth:         NewAuthService(repos.UserRepository, repos.StudentRepository, repos.TokenRepository, repos.InstitutionRepository, jwtService, logger),
		Institution:  NewInstitutionService(repos.InstitutionRepository, logger),
		Student:      NewStudentService(repos.StudentRepository, repos.UserRepository, logger),
		Application:  NewApplicationService(repos.ApplicationRepository, repos.StudentRepository, repos.MentorRepository, notifications, logger),
		Mentor:       NewMentorService(repos.MentorRepository, repos.StudentRepository, repos.UserRepository, notifications, logger),
		Report:       NewReportService(repos.ReportRepository, repos.ApplicationRepository, repos.StudentRepository, repos.MentorRepository, notifications, logger),
		Visit:        NewVisitService(repos.VisitRepository, repos.ApplicationRepository, repos.StudentRepository, repos.MentorRepository, cfg.Internship.VisitIntervalMonths, logger),
		Ticket:       NewTicketService(repos.TicketRepository, repos.UserRepository, notifications, logger),
		Grievance:    NewGrievanceService(repos.GrievanceRepository, repos.StudentRepository, notifications, logger),
		Notification: notifications,
		Stats:        NewStatsService(repos.StatsRepository, repos.InstitutionRepository, statsCache, statsTTL, logger),
		BulkImport:   NewBulkImportService(repos.ImportJobRepository, repos.InstitutionRepository, importer, logger),
		File:         NewFileService(repos.FileRepository, repos.ApplicationRepository, repos.ReportRepository, repos.StudentRepository, repos.UserRepository, storage, logger),
		Importer:     importer,
	}
}
