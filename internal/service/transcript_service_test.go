package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

func seedCourse(t *testing.T, repo *repository.CourseRepository, code, title string, credits int) {
	t.Helper()
	course, err := models.NewCourseBuilder(code, title).Credits(credits).Build()
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), course))
}

func newTranscriptFixture(t *testing.T) (*TranscriptService, *repository.StudentRepository, *repository.CourseRepository) {
	t.Helper()
	students := repository.NewStudentRepository()
	courses := repository.NewCourseRepository()
	svc := NewTranscriptService(students, courses, nil, nil, nil)
	return svc, students, courses
}

func TestTranscriptWeightedGPA(t *testing.T) {
	ctx := context.Background()
	svc, students, courses := newTranscriptFixture(t)
	student := seedStudent(t, students, "stu-1", "2023CS001")
	seedCourse(t, courses, "CS101", "Intro to Programming", 4)
	seedCourse(t, courses, "MA102", "Calculus", 3)

	student.AddCourse("CS101")
	student.AddCourse("MA102")
	student.AssignGrade("CS101", models.GradeA)
	student.AssignGrade("MA102", models.GradeC)

	transcript, err := svc.Build(ctx, "stu-1")
	require.NoError(t, err)

	require.Len(t, transcript.Lines, 2)
	assert.Equal(t, "CS101", transcript.Lines[0].CourseCode)
	assert.Equal(t, "MA102", transcript.Lines[1].CourseCode)
	assert.Equal(t, 7, transcript.TotalCredits)

	// weighted: (9.0*4 + 7.0*3) / 7 = 57/7
	assert.InDelta(t, 57.0/7.0, transcript.WeightedGPA, 1e-9)
	// unweighted: (9.0 + 7.0) / 2
	assert.InDelta(t, 8.0, transcript.UnweightedGPA, 1e-9)
}

func TestTranscriptUnknownCourseFallback(t *testing.T) {
	ctx := context.Background()
	svc, students, _ := newTranscriptFixture(t)
	student := seedStudent(t, students, "stu-1", "2023CS001")

	student.AddCourse("GH404")
	student.AssignGrade("GH404", models.GradeB)

	transcript, err := svc.Build(ctx, "stu-1")
	require.NoError(t, err)

	require.Len(t, transcript.Lines, 1)
	assert.Equal(t, "Unknown", transcript.Lines[0].CourseTitle)
	assert.Equal(t, 3, transcript.Lines[0].Credits)
	assert.InDelta(t, 8.0, transcript.WeightedGPA, 1e-9)
}

func TestTranscriptNoGrades(t *testing.T) {
	ctx := context.Background()
	svc, students, _ := newTranscriptFixture(t)
	seedStudent(t, students, "stu-1", "2023CS001")

	transcript, err := svc.Build(ctx, "stu-1")
	require.NoError(t, err)
	assert.Empty(t, transcript.Lines)
	assert.Equal(t, 0, transcript.TotalCredits)
	assert.Equal(t, 0.0, transcript.WeightedGPA)
	assert.Equal(t, 0.0, transcript.UnweightedGPA)
}

func TestTranscriptUnknownStudent(t *testing.T) {
	svc, _, _ := newTranscriptFixture(t)

	_, err := svc.Build(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestTranscriptRenderCSV(t *testing.T) {
	ctx := context.Background()
	svc, students, courses := newTranscriptFixture(t)
	student := seedStudent(t, students, "stu-1", "2023CS001")
	seedCourse(t, courses, "CS101", "Intro to Programming", 4)
	student.AddCourse("CS101")
	student.AssignGrade("CS101", models.GradeS)

	payload, err := svc.RenderCSV(ctx, "stu-1")
	require.NoError(t, err)

	text := string(payload)
	assert.True(t, strings.HasPrefix(text, "Course Code,Title,Credits,Grade,Grade Point"))
	assert.Contains(t, text, "CS101,Intro to Programming,4,S,10.0")
}

func TestTranscriptRenderPDF(t *testing.T) {
	ctx := context.Background()
	svc, students, courses := newTranscriptFixture(t)
	student := seedStudent(t, students, "stu-1", "2023CS001")
	seedCourse(t, courses, "CS101", "Intro to Programming", 4)
	student.AddCourse("CS101")
	student.AssignGrade("CS101", models.GradeA)

	payload, err := svc.RenderPDF(ctx, "stu-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}
