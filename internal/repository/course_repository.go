package repository

import (
	"context"

	"github.com/noah-isme/ccrm-api/internal/models"
)

// CourseRepository manages the in-memory course catalog.
type CourseRepository struct {
	store *Store[*models.Course]
}

// NewCourseRepository constructs an empty CourseRepository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{store: NewStore[*models.Course]()}
}

// Save upserts the course by code.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	return r.store.Save(ctx, course)
}

// SaveAll saves courses sequentially; not atomic.
func (r *CourseRepository) SaveAll(ctx context.Context, courses []*models.Course) error {
	return r.store.SaveAll(ctx, courses)
}

// FindByID returns the course stored under code or ErrNoRecord.
func (r *CourseRepository) FindByID(ctx context.Context, code string) (*models.Course, error) {
	return r.store.FindByID(ctx, code)
}

// FindAll returns a snapshot of the catalog, soft-deleted included.
func (r *CourseRepository) FindAll(ctx context.Context) []*models.Course {
	return r.store.FindAll(ctx)
}

// FindActive returns courses that have not been soft-deleted.
func (r *CourseRepository) FindActive(ctx context.Context) []*models.Course {
	return r.store.Search(ctx, func(c *models.Course) bool {
		return c.Active
	})
}

// Search evaluates the predicate over a snapshot.
func (r *CourseRepository) Search(ctx context.Context, predicate func(*models.Course) bool) []*models.Course {
	return r.store.Search(ctx, predicate)
}

// List applies the filter over a snapshot and returns the page window
// plus the total match count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int) {
	matches := r.store.Search(ctx, func(c *models.Course) bool {
		if filter.Active != nil && c.Active != *filter.Active {
			return false
		}
		if filter.Department != "" && c.Department != filter.Department {
			return false
		}
		if filter.InstructorID != "" && c.InstructorID != filter.InstructorID {
			return false
		}
		if filter.Semester != "" && c.Semester != filter.Semester {
			return false
		}
		return true
	})
	return paginate(matches, filter.Page, filter.PageSize)
}

// Delete soft-deletes the course; a missing code is a no-op.
func (r *CourseRepository) Delete(ctx context.Context, code string) {
	r.store.Delete(ctx, code)
}

// Exists reports whether a course is stored under code.
func (r *CourseRepository) Exists(ctx context.Context, code string) bool {
	return r.store.Exists(ctx, code)
}

// Count returns the stored course count.
func (r *CourseRepository) Count(ctx context.Context) int {
	return r.store.Count(ctx)
}
