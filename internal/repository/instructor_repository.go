package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/ccrm-api/internal/models"
)

// InstructorRepository manages the in-memory instructor store.
type InstructorRepository struct {
	store *Store[*models.Instructor]
}

// NewInstructorRepository constructs an empty InstructorRepository.
func NewInstructorRepository() *InstructorRepository {
	return &InstructorRepository{store: NewStore[*models.Instructor]()}
}

// Create assigns an ID when missing and saves the instructor.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	if instructor == nil {
		return ErrNilEntity
	}
	if instructor.ID == "" {
		instructor.ID = uuid.NewString()
	}
	return r.store.Save(ctx, instructor)
}

// Save upserts the instructor by ID.
func (r *InstructorRepository) Save(ctx context.Context, instructor *models.Instructor) error {
	return r.store.Save(ctx, instructor)
}

// FindByID returns the instructor stored under id or ErrNoRecord.
func (r *InstructorRepository) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	return r.store.FindByID(ctx, id)
}

// FindAll returns a snapshot of all instructors.
func (r *InstructorRepository) FindAll(ctx context.Context) []*models.Instructor {
	return r.store.FindAll(ctx)
}

// List applies the filter over a snapshot and returns the page window
// plus the total match count.
func (r *InstructorRepository) List(ctx context.Context, filter models.InstructorFilter) ([]*models.Instructor, int) {
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := r.store.Search(ctx, func(i *models.Instructor) bool {
		if filter.Active != nil && i.Active != *filter.Active {
			return false
		}
		if filter.Department != "" && i.Department != filter.Department {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(i.Name.Full()), needle) ||
			strings.Contains(strings.ToLower(i.EmployeeID), needle)
	})
	return paginate(matches, filter.Page, filter.PageSize)
}

// Delete soft-deletes the instructor; a missing id is a no-op.
func (r *InstructorRepository) Delete(ctx context.Context, id string) {
	r.store.Delete(ctx, id)
}

// Exists reports whether an instructor is stored under id.
func (r *InstructorRepository) Exists(ctx context.Context, id string) bool {
	return r.store.Exists(ctx, id)
}
