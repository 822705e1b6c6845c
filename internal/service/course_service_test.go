package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

func newCourseFixture(t *testing.T) (*CourseService, *repository.CourseRepository, *repository.InstructorRepository) {
	t.Helper()
	courses := repository.NewCourseRepository()
	instructors := repository.NewInstructorRepository()
	svc := NewCourseService(courses, instructors, nil, nil)
	return svc, courses, instructors
}

func seedInstructor(t *testing.T, repo *repository.InstructorRepository, id string) *models.Instructor {
	t.Helper()
	name, err := models.NewName("Meera", "Nair")
	require.NoError(t, err)
	instructor, err := models.NewInstructor(id, "EMP-"+id, name, id+"@example.edu", time.Date(1980, 3, 15, 0, 0, 0, 0, time.UTC), "CSE")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), instructor))
	return instructor
}

func TestCourseCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCourseFixture(t)

	course, err := svc.Create(ctx, CreateCourseRequest{
		Code:     "CS101",
		Title:    "Intro to Programming",
		Credits:  4,
		Semester: "fall",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SemesterFall, course.Semester)
	assert.True(t, course.Active)
}

func TestCourseCreateDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCourseFixture(t)

	_, err := svc.Create(ctx, CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCourseRequest{Code: "CS101", Title: "Other", Credits: 3})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCourseCreateInvalidSemester(t *testing.T) {
	svc, _, _ := newCourseFixture(t)

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:     "CS101",
		Title:    "Intro",
		Credits:  4,
		Semester: "winter",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCourseAssignInstructorMirrorsAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _, instructors := newCourseFixture(t)
	seedInstructor(t, instructors, "ins-1")

	_, err := svc.Create(ctx, CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4})
	require.NoError(t, err)

	course, err := svc.AssignInstructor(ctx, "CS101", "ins-1")
	require.NoError(t, err)
	assert.Equal(t, "ins-1", course.InstructorID)

	instructor, err := instructors.FindByID(ctx, "ins-1")
	require.NoError(t, err)
	assert.True(t, instructor.AssignedCourses["CS101"])
}

func TestCourseAssignInstructorUnknownTargets(t *testing.T) {
	ctx := context.Background()
	svc, _, instructors := newCourseFixture(t)
	seedInstructor(t, instructors, "ins-1")

	_, err := svc.AssignInstructor(ctx, "GH404", "ins-1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Create(ctx, CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4})
	require.NoError(t, err)

	_, err = svc.AssignInstructor(ctx, "CS101", "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestCourseDeactivateKeepsRecord(t *testing.T) {
	ctx := context.Background()
	svc, courses, _ := newCourseFixture(t)

	_, err := svc.Create(ctx, CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, "CS101"))

	course, err := courses.FindByID(ctx, "CS101")
	require.NoError(t, err)
	assert.False(t, course.Active)

	err = svc.Deactivate(ctx, "GH404")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
