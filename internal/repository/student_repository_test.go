package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
)

func TestStudentRepositoryCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	student := newStoredStudent(t, "placeholder", "2023CS001")
	student.ID = ""

	require.NoError(t, repo.Create(ctx, student))
	assert.NotEmpty(t, student.ID)

	found, err := repo.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Same(t, student, found)

	assert.ErrorIs(t, repo.Create(ctx, nil), ErrNilEntity)
}

func TestStudentRepositoryFindByRegNo(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	require.NoError(t, repo.Save(ctx, newStoredStudent(t, "stu-1", "2023CS001")))

	found, err := repo.FindByRegNo(ctx, "2023CS001")
	require.NoError(t, err)
	assert.Equal(t, "stu-1", found.ID)

	_, err = repo.FindByRegNo(ctx, "2023CS002")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestStudentRepositoryListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	for i := 0; i < 5; i++ {
		student := newStoredStudent(t, fmt.Sprintf("stu-%d", i), fmt.Sprintf("2023CS%03d", i))
		require.NoError(t, repo.Save(ctx, student))
	}
	repo.Delete(ctx, "stu-4")

	active := true
	matches, total := repo.List(ctx, models.StudentFilter{Active: &active})
	assert.Equal(t, 4, total)
	assert.Len(t, matches, 4)

	matches, total = repo.List(ctx, models.StudentFilter{Search: "2023cs003"})
	assert.Equal(t, 1, total)
	require.Len(t, matches, 1)
	assert.Equal(t, "stu-3", matches[0].ID)

	matches, total = repo.List(ctx, models.StudentFilter{Page: 2, PageSize: 2})
	assert.Equal(t, 5, total)
	require.Len(t, matches, 2)
	assert.Equal(t, "stu-2", matches[0].ID)

	matches, total = repo.List(ctx, models.StudentFilter{Page: 9, PageSize: 2})
	assert.Equal(t, 5, total)
	assert.Empty(t, matches)
}
