package repository

import (
	"context"

	"github.com/noah-isme/ccrm-api/internal/models"
)

// EnrollmentRepository stores enrollment records keyed by the composite
// (studentID, courseCode) identity. Unlike people and courses,
// enrollments are hard-deleted on unenroll.
type EnrollmentRepository struct {
	store *Store[*models.Enrollment]
}

// NewEnrollmentRepository constructs an empty EnrollmentRepository.
func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{store: NewStore[*models.Enrollment]()}
}

// Save upserts the enrollment record.
func (r *EnrollmentRepository) Save(ctx context.Context, enrollment *models.Enrollment) error {
	return r.store.Save(ctx, enrollment)
}

// Find returns the record for the (student, course) pair or ErrNoRecord.
func (r *EnrollmentRepository) Find(ctx context.Context, studentID, courseCode string) (*models.Enrollment, error) {
	return r.store.FindByID(ctx, models.EnrollmentKey(studentID, courseCode))
}

// Exists reports whether a record exists for the pair.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseCode string) bool {
	return r.store.Exists(ctx, models.EnrollmentKey(studentID, courseCode))
}

// Remove hard-deletes the record for the pair; absent pairs are a no-op.
func (r *EnrollmentRepository) Remove(ctx context.Context, studentID, courseCode string) {
	r.store.Remove(ctx, models.EnrollmentKey(studentID, courseCode))
}

// FindByStudent returns all records held for a student.
func (r *EnrollmentRepository) FindByStudent(ctx context.Context, studentID string) []*models.Enrollment {
	return r.store.Search(ctx, func(e *models.Enrollment) bool {
		return e.StudentID == studentID
	})
}

// FindByCourse returns all records held for a course.
func (r *EnrollmentRepository) FindByCourse(ctx context.Context, courseCode string) []*models.Enrollment {
	return r.store.Search(ctx, func(e *models.Enrollment) bool {
		return e.CourseCode == courseCode
	})
}

// FindAll returns a snapshot of every enrollment record.
func (r *EnrollmentRepository) FindAll(ctx context.Context) []*models.Enrollment {
	return r.store.FindAll(ctx)
}
