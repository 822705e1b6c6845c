package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	Save(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	FindActive(ctx context.Context) []*models.Student
	FindAll(ctx context.Context) []*models.Student
	SaveAll(ctx context.Context, students []*models.Student) error
	List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int)
	Delete(ctx context.Context, id string)
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	RegNo       string    `json:"reg_no" validate:"required"`
	FirstName   string    `json:"first_name" validate:"required"`
	LastName    string    `json:"last_name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	RegNo       string    `json:"reg_no" validate:"required"`
	FirstName   string    `json:"first_name" validate:"required"`
	LastName    string    `json:"last_name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	Active      bool      `json:"active"`
}

// StudentService handles student roster use-cases.
type StudentService struct {
	repo      studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students matching the filter plus pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, *models.Pagination, error) {
	students, total := s.repo.List(ctx, filter)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return students, pagination, nil
}

// ListActive returns students not yet soft-deleted.
func (s *StudentService) ListActive(ctx context.Context) []*models.Student {
	return s.repo.FindActive(ctx)
}

// All returns a snapshot of every student, soft-deleted included.
func (s *StudentService) All(ctx context.Context) []*models.Student {
	return s.repo.FindAll(ctx)
}

// Restore upserts a batch of students, typically parsed from an import
// file. Saves are sequential and not atomic.
func (s *StudentService) Restore(ctx context.Context, students []*models.Student) error {
	if err := s.repo.SaveAll(ctx, students); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore students")
	}
	return nil
}

// Get returns a single student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.repo.FindByRegNo(ctx, req.RegNo); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already used")
	}
	name, err := models.NewName(req.FirstName, req.LastName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student name")
	}
	student, err := models.NewStudent(uuid.NewString(), req.RegNo, name, req.Email, req.DateOfBirth)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if other, err := s.repo.FindByRegNo(ctx, req.RegNo); err == nil && other.ID != id {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already used")
	}
	student.RegNo = req.RegNo
	student.Name = models.Name{FirstName: req.FirstName, LastName: req.LastName}
	student.Email = req.Email
	student.DateOfBirth = req.DateOfBirth
	student.Active = req.Active
	if err := s.repo.Save(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Deactivate soft-deletes the student; the record stays retrievable.
func (s *StudentService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	s.repo.Delete(ctx, id)
	return nil
}
