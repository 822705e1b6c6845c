package models

import (
	"fmt"
	"time"
)

// EnrollmentKey derives the composite identity for a (student, course)
// pair. Exactly one enrollment record exists per pair.
func EnrollmentKey(studentID, courseCode string) string {
	return studentID + "_" + courseCode
}

// Enrollment is a student's registration to a single course. The record
// is created on enroll, removed on unenroll and mutated in place when a
// grade is attached.
type Enrollment struct {
	StudentID      string    `json:"student_id"`
	CourseCode     string    `json:"course_code"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Grade          Grade     `json:"grade,omitempty"`
	Active         bool      `json:"active"`
}

// NewEnrollment constructs an active enrollment stamped with the current
// time.
func NewEnrollment(studentID, courseCode string) (*Enrollment, error) {
	if studentID == "" {
		return nil, fmt.Errorf("student id cannot be empty")
	}
	if courseCode == "" {
		return nil, fmt.Errorf("course code cannot be empty")
	}
	return &Enrollment{
		StudentID:      studentID,
		CourseCode:     courseCode,
		EnrollmentDate: time.Now().UTC(),
		Active:         true,
	}, nil
}

// Key returns the composite repository identity key.
func (e *Enrollment) Key() string {
	return EnrollmentKey(e.StudentID, e.CourseCode)
}

// Deactivate marks the enrollment inactive.
func (e *Enrollment) Deactivate() { e.Active = false }

// Graded reports whether a grade has been attached.
func (e *Enrollment) Graded() bool { return e.Grade != "" }

func (e *Enrollment) String() string {
	grade := "-"
	if e.Graded() {
		grade = e.Grade.String()
	}
	return fmt.Sprintf("Enrollment[student=%s, course=%s, grade=%s, date=%s]",
		e.StudentID, e.CourseCode, grade, e.EnrollmentDate.Format("2006-01-02"))
}
