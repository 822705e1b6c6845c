package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/ccrm-api/internal/models"
)

// StudentRepository manages the in-memory student store.
type StudentRepository struct {
	store *Store[*models.Student]
}

// NewStudentRepository constructs an empty StudentRepository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{store: NewStore[*models.Student]()}
}

// Create assigns an ID when missing and saves the student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student == nil {
		return ErrNilEntity
	}
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	return r.store.Save(ctx, student)
}

// Save upserts the student by ID.
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	return r.store.Save(ctx, student)
}

// SaveAll saves students sequentially; not atomic.
func (r *StudentRepository) SaveAll(ctx context.Context, students []*models.Student) error {
	return r.store.SaveAll(ctx, students)
}

// FindByID returns the student stored under id or ErrNoRecord.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return r.store.FindByID(ctx, id)
}

// FindAll returns a snapshot of all students, soft-deleted included.
func (r *StudentRepository) FindAll(ctx context.Context) []*models.Student {
	return r.store.FindAll(ctx)
}

// FindByRegNo returns the student holding the registration number.
func (r *StudentRepository) FindByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	matches := r.store.Search(ctx, func(s *models.Student) bool {
		return s.RegNo == regNo
	})
	if len(matches) == 0 {
		return nil, ErrNoRecord
	}
	return matches[0], nil
}

// FindActive returns students that have not been soft-deleted.
func (r *StudentRepository) FindActive(ctx context.Context) []*models.Student {
	return r.store.Search(ctx, func(s *models.Student) bool {
		return s.Active
	})
}

// Search evaluates the predicate over a snapshot.
func (r *StudentRepository) Search(ctx context.Context, predicate func(*models.Student) bool) []*models.Student {
	return r.store.Search(ctx, predicate)
}

// List applies the filter over a snapshot and returns the page window
// plus the total match count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int) {
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := r.store.Search(ctx, func(s *models.Student) bool {
		if filter.Active != nil && s.Active != *filter.Active {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(s.Name.Full()), needle) ||
			strings.Contains(strings.ToLower(s.RegNo), needle)
	})
	return paginate(matches, filter.Page, filter.PageSize)
}

// Delete soft-deletes the student; a missing id is a no-op.
func (r *StudentRepository) Delete(ctx context.Context, id string) {
	r.store.Delete(ctx, id)
}

// Exists reports whether a student is stored under id.
func (r *StudentRepository) Exists(ctx context.Context, id string) bool {
	return r.store.Exists(ctx, id)
}

// Count returns the stored student count.
func (r *StudentRepository) Count(ctx context.Context) int {
	return r.store.Count(ctx)
}

func paginate[T any](items []T, page, size int) ([]T, int) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		return items, total
	}
	start := (page - 1) * size
	if start >= total {
		return []T{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], total
}
