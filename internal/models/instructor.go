package models

import (
	"fmt"
	"time"
)

// Instructor is a staff member who can be assigned to courses.
type Instructor struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Name            Name            `json:"name"`
	Email           string          `json:"email"`
	DateOfBirth     time.Time       `json:"date_of_birth"`
	Department      string          `json:"department"`
	Active          bool            `json:"active"`
	AssignedCourses map[string]bool `json:"assigned_courses"`
}

// NewInstructor constructs an active instructor; id, employeeID, name,
// email and department are required.
func NewInstructor(id, employeeID string, name Name, email string, dateOfBirth time.Time, department string) (*Instructor, error) {
	if id == "" {
		return nil, fmt.Errorf("instructor id cannot be empty")
	}
	if employeeID == "" {
		return nil, fmt.Errorf("employee id cannot be empty")
	}
	if name.FirstName == "" || name.LastName == "" {
		return nil, fmt.Errorf("instructor name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("instructor email cannot be empty")
	}
	if department == "" {
		return nil, fmt.Errorf("department cannot be empty")
	}
	return &Instructor{
		ID:              id,
		EmployeeID:      employeeID,
		Name:            name,
		Email:           email,
		DateOfBirth:     dateOfBirth,
		Department:      department,
		Active:          true,
		AssignedCourses: make(map[string]bool),
	}, nil
}

// Key returns the repository identity key.
func (i *Instructor) Key() string { return i.ID }

// Deactivate soft-deletes the instructor.
func (i *Instructor) Deactivate() { i.Active = false }

// Identity implements Person.
func (i *Instructor) Identity() string { return i.ID }

// DisplayName implements Person.
func (i *Instructor) DisplayName() string { return i.Name.Full() }

// ContactEmail implements Person.
func (i *Instructor) ContactEmail() string { return i.Email }

// Role implements Person.
func (i *Instructor) Role() string { return "Instructor" }

// ProfileSummary implements Person.
func (i *Instructor) ProfileSummary() string {
	status := "Active"
	if !i.Active {
		status = "Inactive"
	}
	return fmt.Sprintf("Instructor[id=%s, empId=%s, name=%s, dept=%s, status=%s, courses=%d]",
		i.ID, i.EmployeeID, i.Name.Full(), i.Department, status, len(i.AssignedCourses))
}

// AssignCourse records a course on the instructor's assigned set.
func (i *Instructor) AssignCourse(courseCode string) {
	if i.AssignedCourses == nil {
		i.AssignedCourses = make(map[string]bool)
	}
	i.AssignedCourses[courseCode] = true
}

// UnassignCourse removes a course from the assigned set.
func (i *Instructor) UnassignCourse(courseCode string) {
	delete(i.AssignedCourses, courseCode)
}

// InstructorFilter encapsulates search parameters for listing instructors.
type InstructorFilter struct {
	Search     string
	Department string
	Active     *bool
	Page       int
	PageSize   int
}
