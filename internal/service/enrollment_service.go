package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

// creditsPerCourse is the flat per-course load used by the cap check.
// The course's declared credit value is intentionally not consulted; see
// DESIGN.md before changing this.
const creditsPerCourse = 3

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
}

type enrollmentStore interface {
	Save(ctx context.Context, enrollment *models.Enrollment) error
	Find(ctx context.Context, studentID, courseCode string) (*models.Enrollment, error)
	Remove(ctx context.Context, studentID, courseCode string)
	FindByStudent(ctx context.Context, studentID string) []*models.Enrollment
	FindAll(ctx context.Context) []*models.Enrollment
}

// EnrollmentService runs the registration and grading workflow. Rules
// fail fast with caller-recoverable errors; there is no cross-call
// atomicity between check and act for the same student.
type EnrollmentService struct {
	students    studentReader
	enrollments enrollmentStore
	maxCredits  int
	logger      *zap.Logger
}

// NewEnrollmentService constructs the workflow service. maxCredits is
// the per-semester cap, usually config.Registration.MaxCreditsPerSemester.
func NewEnrollmentService(students studentReader, enrollments enrollmentStore, maxCredits int, logger *zap.Logger) *EnrollmentService {
	if maxCredits <= 0 {
		maxCredits = 18
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{students: students, enrollments: enrollments, maxCredits: maxCredits, logger: logger}
}

// Enroll registers the student in the course. It fails when the student
// is unknown, already enrolled, or the flat credit load already meets
// the cap. On success the student's course set and the enrollment store
// are both updated.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseCode string) (*models.Enrollment, error) {
	if courseCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if student.IsEnrolledIn(courseCode) {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("student %s already enrolled in %s", studentID, courseCode))
	}
	load := len(student.EnrolledCourses) * creditsPerCourse
	if load >= s.maxCredits {
		return nil, appErrors.Clone(appErrors.ErrCreditLimit,
			fmt.Sprintf("credit load %d meets or exceeds the cap of %d", load, s.maxCredits))
	}

	student.AddCourse(courseCode)
	if err := s.students.Save(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}
	enrollment, err := models.NewEnrollment(studentID, courseCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment")
	}
	if err := s.enrollments.Save(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save enrollment")
	}
	s.logger.Info("student enrolled",
		zap.String("student_id", studentID),
		zap.String("course_code", courseCode))
	return enrollment, nil
}

// Unenroll drops the course from the student's set, clears any grade
// held for it and removes the enrollment record. Unlike Enroll, a pair
// that was never enrolled is not an error.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseCode string) error {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	student.RemoveCourse(courseCode)
	if err := s.students.Save(ctx, student); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}
	s.enrollments.Remove(ctx, studentID, courseCode)
	s.logger.Info("student unenrolled",
		zap.String("student_id", studentID),
		zap.String("course_code", courseCode))
	return nil
}

// AssignGrade records a grade for an enrolled course. The grade is
// written to the student's grade map and, when the enrollment record
// still exists, mirrored onto it; a missing record is tolerated.
func (s *EnrollmentService) AssignGrade(ctx context.Context, studentID, courseCode, rawGrade string) (*models.Student, error) {
	grade, err := models.ParseGrade(rawGrade)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !student.IsEnrolledIn(courseCode) {
		return nil, appErrors.Clone(appErrors.ErrNotEnrolled,
			fmt.Sprintf("student %s is not enrolled in %s", studentID, courseCode))
	}

	student.AssignGrade(courseCode, grade)
	if err := s.students.Save(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}
	if enrollment, err := s.enrollments.Find(ctx, studentID, courseCode); err == nil {
		enrollment.Grade = grade
		if err := s.enrollments.Save(ctx, enrollment); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save enrollment")
		}
	}
	s.logger.Info("grade assigned",
		zap.String("student_id", studentID),
		zap.String("course_code", courseCode),
		zap.String("grade", string(grade)))
	return student, nil
}

// Count returns the number of enrollment records held.
func (s *EnrollmentService) Count(ctx context.Context) int {
	return len(s.enrollments.FindAll(ctx))
}

// ListForStudent returns the enrollment records held for a student.
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return s.enrollments.FindByStudent(ctx, studentID), nil
}
