package models

import (
	"fmt"
	"strings"
)

// Semester identifies the academic term a course runs in.
type Semester string

// Defined semesters.
const (
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
	SemesterFall   Semester = "FALL"
)

// ParseSemester converts a raw name into a Semester.
func ParseSemester(raw string) (Semester, error) {
	s := Semester(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case SemesterSpring, SemesterSummer, SemesterFall:
		return s, nil
	}
	return "", fmt.Errorf("unknown semester %q", raw)
}

// Course is a catalog entry identified by its code.
type Course struct {
	Code         string   `json:"code"`
	Title        string   `json:"title"`
	Credits      int      `json:"credits"`
	InstructorID string   `json:"instructor_id,omitempty"`
	Semester     Semester `json:"semester,omitempty"`
	Department   string   `json:"department,omitempty"`
	Active       bool     `json:"active"`
}

// Key returns the repository identity key.
func (c *Course) Key() string { return c.Code }

// Deactivate soft-deletes the course.
func (c *Course) Deactivate() { c.Active = false }

func (c *Course) String() string {
	return fmt.Sprintf("Course[code=%s, title=%s, credits=%d, dept=%s, semester=%s]",
		c.Code, c.Title, c.Credits, c.Department, c.Semester)
}

// CourseBuilder stages course construction. Code and title are required
// up front; credits must be positive before the course exists, so an
// invalid value surfaces at Build time instead of on a live object.
type CourseBuilder struct {
	course Course
	err    error
}

// NewCourseBuilder starts a builder with the required identity fields.
func NewCourseBuilder(code, title string) *CourseBuilder {
	b := &CourseBuilder{course: Course{Code: code, Title: title, Active: true}}
	if code == "" {
		b.err = fmt.Errorf("course code cannot be empty")
	} else if title == "" {
		b.err = fmt.Errorf("course title cannot be empty")
	}
	return b
}

// Credits sets the credit count; non-positive values fail the build.
func (b *CourseBuilder) Credits(credits int) *CourseBuilder {
	if credits <= 0 && b.err == nil {
		b.err = fmt.Errorf("credits must be positive, got %d", credits)
	}
	b.course.Credits = credits
	return b
}

// Instructor sets the optional instructor reference.
func (b *CourseBuilder) Instructor(instructorID string) *CourseBuilder {
	b.course.InstructorID = instructorID
	return b
}

// Semester sets the optional term.
func (b *CourseBuilder) Semester(semester Semester) *CourseBuilder {
	b.course.Semester = semester
	return b
}

// Department sets the optional owning department.
func (b *CourseBuilder) Department(department string) *CourseBuilder {
	b.course.Department = department
	return b
}

// Build validates staged state and returns the course.
func (b *CourseBuilder) Build() (*Course, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.course.Credits <= 0 {
		return nil, fmt.Errorf("credits must be positive, got %d", b.course.Credits)
	}
	course := b.course
	return &course, nil
}

// CourseFilter encapsulates allowed search parameters for listing courses.
type CourseFilter struct {
	Department   string
	InstructorID string
	Semester     Semester
	Active       *bool
	Page         int
	PageSize     int
}
