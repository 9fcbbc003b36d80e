package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	TokenRepository        *TokenRepository
	InstitutionRepository  *InstitutionRepository
	ApplicationRepository  *ApplicationRepository
	MentorRepository       *MentorRepository
	ReportRepository       *ReportRepository
	VisitRepository        *VisitRepository
	TicketRepository       *TicketRepository
	GrievanceRepository    *GrievanceRepository
	NotificationRepository *NotificationRepository
	FileRepository         *FileRepository
	ImportJobRepository    *ImportJobRepository
	StatsRepository        *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		TokenRepository:        NewTokenRepository(db),
		InstitutionRepository:  NewInstitutionRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		MentorRepository:       NewMentorRepository(db),
		ReportRepository:       NewReportRepository(db),
		VisitRepository:        NewVisitRepository(db),
		TicketRepository:       NewTicketRepository(db),
		GrievanceRepository:    NewGrievanceRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		FileRepository:         NewFileRepository(db),
		ImportJobRepository:    NewImportJobRepository(db),
		StatsRepository:        NewStatsRepository(db),
	}
}
