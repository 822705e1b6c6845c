package models

import (
	"fmt"
	"sort"
	"time"
)

// Student is a learner registered with the institution. EnrolledCourses
// and Grades are keyed by course code; every graded course must also be
// enrolled (grade assignment is only allowed for enrolled courses and
// unenrolling clears the grade).
type Student struct {
	ID              string          `json:"id"`
	RegNo           string          `json:"reg_no"`
	Name            Name            `json:"name"`
	Email           string          `json:"email"`
	DateOfBirth     time.Time       `json:"date_of_birth"`
	Active          bool            `json:"active"`
	EnrollmentDate  time.Time       `json:"enrollment_date"`
	EnrolledCourses map[string]bool `json:"enrolled_courses"`
	Grades          map[string]Grade `json:"grades"`
}

// NewStudent constructs an active student; id, regNo, name and email are
// required.
func NewStudent(id, regNo string, name Name, email string, dateOfBirth time.Time) (*Student, error) {
	if id == "" {
		return nil, fmt.Errorf("student id cannot be empty")
	}
	if regNo == "" {
		return nil, fmt.Errorf("registration number cannot be empty")
	}
	if name.FirstName == "" || name.LastName == "" {
		return nil, fmt.Errorf("student name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("student email cannot be empty")
	}
	return &Student{
		ID:              id,
		RegNo:           regNo,
		Name:            name,
		Email:           email,
		DateOfBirth:     dateOfBirth,
		Active:          true,
		EnrollmentDate:  time.Now().UTC(),
		EnrolledCourses: make(map[string]bool),
		Grades:          make(map[string]Grade),
	}, nil
}

// Key returns the repository identity key.
func (s *Student) Key() string { return s.ID }

// Deactivate soft-deletes the student.
func (s *Student) Deactivate() { s.Active = false }

// Identity implements Person.
func (s *Student) Identity() string { return s.ID }

// DisplayName implements Person.
func (s *Student) DisplayName() string { return s.Name.Full() }

// ContactEmail implements Person.
func (s *Student) ContactEmail() string { return s.Email }

// Role implements Person.
func (s *Student) Role() string { return "Student" }

// ProfileSummary implements Person.
func (s *Student) ProfileSummary() string {
	status := "Active"
	if !s.Active {
		status = "Inactive"
	}
	return fmt.Sprintf("Student[id=%s, regNo=%s, name=%s, email=%s, status=%s, courses=%d]",
		s.ID, s.RegNo, s.Name.Full(), s.Email, status, len(s.EnrolledCourses))
}

// AddCourse records an enrollment in the student's course set.
func (s *Student) AddCourse(courseCode string) {
	if s.EnrolledCourses == nil {
		s.EnrolledCourses = make(map[string]bool)
	}
	s.EnrolledCourses[courseCode] = true
}

// RemoveCourse drops the course and clears any grade held for it.
// Removing an absent course is a no-op.
func (s *Student) RemoveCourse(courseCode string) {
	delete(s.EnrolledCourses, courseCode)
	delete(s.Grades, courseCode)
}

// IsEnrolledIn reports membership in the enrolled-course set.
func (s *Student) IsEnrolledIn(courseCode string) bool {
	return s.EnrolledCourses[courseCode]
}

// AssignGrade records a grade for an enrolled course.
func (s *Student) AssignGrade(courseCode string, grade Grade) {
	if s.Grades == nil {
		s.Grades = make(map[string]Grade)
	}
	s.Grades[courseCode] = grade
}

// GPA is the unweighted arithmetic mean of grade points over graded
// courses; ungraded enrollments are excluded. Zero when nothing is graded.
func (s *Student) GPA() float64 {
	if len(s.Grades) == 0 {
		return 0.0
	}
	total := 0.0
	for _, grade := range s.Grades {
		total += grade.Points()
	}
	return total / float64(len(s.Grades))
}

// CourseCodes returns the enrolled course codes in sorted order.
func (s *Student) CourseCodes() []string {
	codes := make([]string, 0, len(s.EnrolledCourses))
	for code := range s.EnrolledCourses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
}
