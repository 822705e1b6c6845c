package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseBuilder(t *testing.T) {
	course, err := NewCourseBuilder("CS101", "Intro to Programming").
		Credits(4).
		Department("CSE").
		Semester(SemesterFall).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)
	assert.Equal(t, 4, course.Credits)
	assert.Equal(t, SemesterFall, course.Semester)
	assert.True(t, course.Active)
}

func TestCourseBuilderRejectsMissingIdentity(t *testing.T) {
	_, err := NewCourseBuilder("", "Intro").Credits(4).Build()
	require.Error(t, err)

	_, err = NewCourseBuilder("CS101", "").Credits(4).Build()
	require.Error(t, err)
}

func TestCourseBuilderRejectsNonPositiveCredits(t *testing.T) {
	_, err := NewCourseBuilder("CS101", "Intro").Credits(0).Build()
	require.Error(t, err)

	_, err = NewCourseBuilder("CS101", "Intro").Credits(-3).Build()
	require.Error(t, err)

	// credits never set
	_, err = NewCourseBuilder("CS101", "Intro").Build()
	require.Error(t, err)
}

func TestParseSemester(t *testing.T) {
	semester, err := ParseSemester("fall")
	require.NoError(t, err)
	assert.Equal(t, SemesterFall, semester)

	_, err = ParseSemester("winter")
	require.Error(t, err)
}
