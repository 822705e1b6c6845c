package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	grade, err := ParseGrade("a")
	require.NoError(t, err)
	assert.Equal(t, GradeA, grade)

	grade, err = ParseGrade("  S ")
	require.NoError(t, err)
	assert.Equal(t, GradeS, grade)

	_, err = ParseGrade("X")
	require.Error(t, err)

	_, err = ParseGrade("")
	require.Error(t, err)
}

func TestGradePoints(t *testing.T) {
	assert.Equal(t, 10.0, GradeS.Points())
	assert.Equal(t, 9.0, GradeA.Points())
	assert.Equal(t, 8.0, GradeB.Points())
	assert.Equal(t, 7.0, GradeC.Points())
	assert.Equal(t, 6.0, GradeD.Points())
	assert.Equal(t, 5.0, GradeE.Points())
	assert.Equal(t, 0.0, GradeF.Points())
}

func TestGradeString(t *testing.T) {
	assert.Equal(t, "A (9.0)", GradeA.String())
	assert.Equal(t, "F (0.0)", GradeF.String())
	assert.Equal(t, "Q", Grade("Q").String())
}

func TestGradeDescription(t *testing.T) {
	assert.Equal(t, "Outstanding", GradeS.Description())
	assert.Equal(t, "Fail", GradeF.Description())
}
