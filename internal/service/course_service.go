package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type courseStore interface {
	Save(ctx context.Context, course *models.Course) error
	SaveAll(ctx context.Context, courses []*models.Course) error
	FindByID(ctx context.Context, code string) (*models.Course, error)
	FindActive(ctx context.Context) []*models.Course
	FindAll(ctx context.Context) []*models.Course
	List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int)
	Delete(ctx context.Context, code string)
	Exists(ctx context.Context, code string) bool
}

type instructorReader interface {
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
	Save(ctx context.Context, instructor *models.Instructor) error
}

// CreateCourseRequest holds payload for adding catalog entries.
type CreateCourseRequest struct {
	Code         string `json:"code" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Credits      int    `json:"credits" validate:"required,gt=0"`
	InstructorID string `json:"instructor_id"`
	Semester     string `json:"semester"`
	Department   string `json:"department"`
}

// UpdateCourseRequest holds payload for updating catalog entries.
type UpdateCourseRequest struct {
	Title      string `json:"title" validate:"required"`
	Credits    int    `json:"credits" validate:"required,gt=0"`
	Semester   string `json:"semester"`
	Department string `json:"department"`
	Active     bool   `json:"active"`
}

// CourseService handles catalog use-cases.
type CourseService struct {
	repo        courseStore
	instructors instructorReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseStore, instructors instructorReader, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, instructors: instructors, validator: validate, logger: logger}
}

// List returns catalog entries matching the filter plus pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, *models.Pagination, error) {
	courses, total := s.repo.List(ctx, filter)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return courses, pagination, nil
}

// ListActive returns catalog entries not yet soft-deleted.
func (s *CourseService) ListActive(ctx context.Context) []*models.Course {
	return s.repo.FindActive(ctx)
}

// All returns a snapshot of the whole catalog, soft-deleted included.
func (s *CourseService) All(ctx context.Context) []*models.Course {
	return s.repo.FindAll(ctx)
}

// Restore upserts a batch of courses parsed from an import file.
func (s *CourseService) Restore(ctx context.Context, courses []*models.Course) error {
	if err := s.repo.SaveAll(ctx, courses); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore courses")
	}
	return nil
}

// Get returns a single course by code.
func (s *CourseService) Get(ctx context.Context, code string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create adds a catalog entry built through the staged course builder,
// so invalid credits fail before any object is stored.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if s.repo.Exists(ctx, req.Code) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already used")
	}
	builder := models.NewCourseBuilder(req.Code, req.Title).
		Credits(req.Credits).
		Department(req.Department)
	if req.InstructorID != "" {
		builder = builder.Instructor(req.InstructorID)
	}
	if req.Semester != "" {
		semester, err := models.ParseSemester(req.Semester)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid semester")
		}
		builder = builder.Semester(semester)
	}
	course, err := builder.Build()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if err := s.repo.Save(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing catalog entry.
func (s *CourseService) Update(ctx context.Context, code string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.repo.FindByID(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	course.Title = req.Title
	course.Credits = req.Credits
	course.Department = req.Department
	course.Active = req.Active
	if req.Semester != "" {
		semester, err := models.ParseSemester(req.Semester)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid semester")
		}
		course.Semester = semester
	}
	if err := s.repo.Save(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// AssignInstructor points the course at an instructor and mirrors the
// assignment on the instructor's course set.
func (s *CourseService) AssignInstructor(ctx context.Context, courseCode, instructorID string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, courseCode)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	instructor, err := s.instructors.FindByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	course.InstructorID = instructor.ID
	if err := s.repo.Save(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	instructor.AssignCourse(course.Code)
	if err := s.instructors.Save(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor")
	}
	return course, nil
}

// Deactivate soft-deletes the course; the record stays retrievable.
func (s *CourseService) Deactivate(ctx context.Context, code string) error {
	if _, err := s.repo.FindByID(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	s.repo.Delete(ctx, code)
	return nil
}
