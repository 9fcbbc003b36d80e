package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/filestorage"
)

// 10 MB upload limit
const maxUploadSize = 10 << 20

// FileService stores uploaded documents and their metadata
type FileService struct {
	fileRepo        *repositories.FileRepository
	applicationRepo *repositories.ApplicationRepository
	reportRepo      *repositories.ReportRepository
	studentRepo     *repositories.StudentRepository
	userRepo        *repositories.UserRepository
	storage         filestorage.FileStorage
	logger          zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(
	fileRepo *repositories.FileRepository,
	applicationRepo *repositories.ApplicationRepository,
	reportRepo *repositories.ReportRepository,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *FileService {
	return &FileService{
		fileRepo:        fileRepo,
		applicationRepo: applicationRepo,
		reportRepo:      reportRepo,
		studentRepo:     studentRepo,
		userRepo:        userRepo,
		storage:         storage,
		logger:          logger,
	}
}

// UploadOfferLetter attaches an offer letter to an internship application
func (s *FileService) UploadOfferLetter(ctx context.Context, actor auth.Actor, applicationID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	if err := checkUploadSize(fileHeader); err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeApplication(ctx, actor, application); err != nil {
		return nil, err
	}

	return s.store(ctx, actor, fileHeader, "applications", models.FileTypeOfferLetter, applicationID)
}

// UploadReportAttachment attaches a document to a monthly report. Only
// the student who submitted the report may attach files.
func (s *FileService) UploadReportAttachment(ctx context.Context, actor auth.Actor, reportID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	if err := checkUploadSize(fileHeader); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
	if err != nil || student.ID != report.StudentID {
		return nil, apperrors.NewForbiddenError("only the report's author can attach files")
	}

	return s.store(ctx, actor, fileHeader, "reports", models.FileTypeReportAttachment, reportID)
}

// UploadProfilePhoto stores the actor's profile photo and updates the
// photo URL on their account. A previous photo record is kept; the user
// row only points at the newest one.
func (s *FileService) UploadProfilePhoto(ctx context.Context, actor auth.Actor, fileHeader *multipart.FileHeader) (*models.File, error) {
	if err := checkUploadSize(fileHeader); err != nil {
		return nil, err
	}

	file, err := s.store(ctx, actor, fileHeader, "profiles", models.FileTypeProfilePhoto, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfilePhotoURL(ctx, actor.UserID, &file.FileURL); err != nil {
		return nil, err
	}

	return file, nil
}

// ListForApplication retrieves the documents attached to an application
func (s *FileService) ListForApplication(ctx context.Context, actor auth.Actor, applicationID int64) ([]*models.File, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeApplication(ctx, actor, application); err != nil {
		return nil, err
	}

	return s.fileRepo.ListByResource(ctx, models.FileTypeOfferLetter, applicationID)
}

// Delete removes an uploaded file and its metadata. Allowed for the
// uploader and for directorate staff.
func (s *FileService) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if file.UploadedBy != actor.UserID && !actor.IsDirectorate() {
		return apperrors.NewForbiddenError("only the uploader can delete this file")
	}

	if err := s.storage.DeleteFile(file.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", file.FilePath).Msg("Could not remove stored file")
	}

	return s.fileRepo.Delete(ctx, id)
}

func (s *FileService) store(ctx context.Context, actor auth.Actor, fileHeader *multipart.FileHeader, subPath string, resourceType models.FileType, resourceID int64) (*models.File, error) {
	info, err := s.storage.SaveFileWithPath(fileHeader, subPath)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:     info.Filename,
		FilePath:     info.Path,
		FileURL:      info.URL,
		FileSize:     info.FileSize,
		FileType:     info.MimeType,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		UploadedBy:   actor.UserID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Do not leave orphan files on disk
		if cleanupErr := s.storage.DeleteFile(info.Path); cleanupErr != nil {
			s.logger.Warn().Err(cleanupErr).Str("path", info.Path).Msg("Could not remove orphan file")
		}
		return nil, err
	}

	s.logger.Info().Int64("fileID", file.ID).Str("resourceType", string(resourceType)).Msg("File stored")
	return file, nil
}

// authorizeApplication allows the owning student and institution staff
func (s *FileService) authorizeApplication(ctx context.Context, actor auth.Actor, application *models.InternshipApplication) error {
	if actor.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
		if err != nil || student.ID != application.StudentID {
			return apperrors.NewForbiddenError("application belongs to another student")
		}
		return nil
	}
	if !actor.IsStaff() {
		return apperrors.NewForbiddenError("insufficient role for this action")
	}
	return actor.CanAccessInstitution(application.InstitutionID)
}

func checkUploadSize(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewBadRequestError("no file provided")
	}
	if fileHeader.Size > maxUploadSize {
		return apperrors.NewBadRequestError("file exceeds the 10 MB upload limit")
	}
	return nil
}
