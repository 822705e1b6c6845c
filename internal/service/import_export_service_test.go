package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/pkg/config"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

func newImportExportFixture(t *testing.T) (*ImportExportService, config.FolderConfig) {
	t.Helper()
	root := t.TempDir()
	folders := config.FolderConfig{
		Data:   filepath.Join(root, "data"),
		Export: filepath.Join(root, "exports"),
		Backup: filepath.Join(root, "backups"),
	}
	require.NoError(t, os.MkdirAll(folders.Data, 0o755))
	return NewImportExportService(folders, nil), folders
}

func TestExportStudentsWritesFlatFile(t *testing.T) {
	ctx := context.Background()
	svc, folders := newImportExportFixture(t)

	name, err := models.NewName("Asha", "Verma")
	require.NoError(t, err)
	student, err := models.NewStudent("stu-1", "2023CS001", name, "asha@example.edu", time.Date(2004, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	path, err := svc.ExportStudents(ctx, []*models.Student{student}, "students.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(folders.Export, "students.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,regNo,firstName,lastName,email,dateOfBirth,active,enrollmentDate", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "stu-1,2023CS001,Asha,Verma,asha@example.edu,2004-05-01,true,"))
}

func TestStudentRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newImportExportFixture(t)

	name, err := models.NewName("Asha", "Verma")
	require.NoError(t, err)
	student, err := models.NewStudent("stu-1", "2023CS001", name, "asha@example.edu", time.Date(2004, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	path, err := svc.ExportStudents(ctx, []*models.Student{student}, "students.csv")
	require.NoError(t, err)

	imported, err := svc.ImportStudents(ctx, path)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "stu-1", imported[0].ID)
	assert.Equal(t, "2023CS001", imported[0].RegNo)
	assert.Equal(t, "Asha Verma", imported[0].Name.Full())
	assert.Equal(t, "asha@example.edu", imported[0].Email)
	assert.Equal(t, student.DateOfBirth, imported[0].DateOfBirth)
	// active and enrollmentDate are not reconstructed from the file
	assert.True(t, imported[0].Active)
}

func TestImportStudentsSkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	svc, folders := newImportExportFixture(t)

	content := strings.Join([]string{
		"id,regNo,firstName,lastName,email,dateOfBirth,active,enrollmentDate",
		"stu-1,2023CS001,Asha,Verma,asha@example.edu,2004-05-01,true,2023-08-01",
		"garbage-row-with-too-few-fields",
		"stu-2,2023CS002,Ravi,Iyer,ravi@example.edu,2004-07-12,true,2023-08-01",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(folders.Data, "students.csv"), []byte(content), 0o644))

	imported, err := svc.ImportStudents(ctx, "students.csv")
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "stu-1", imported[0].ID)
	assert.Equal(t, "stu-2", imported[1].ID)
}

func TestImportMissingFile(t *testing.T) {
	svc, _ := newImportExportFixture(t)

	_, err := svc.ImportStudents(context.Background(), "nope.csv")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestCourseRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newImportExportFixture(t)

	course, err := models.NewCourseBuilder("CS101", "Intro to Programming").
		Credits(4).
		Instructor("ins-1").
		Semester(models.SemesterFall).
		Department("CSE").
		Build()
	require.NoError(t, err)
	course.Active = false

	path, err := svc.ExportCourses(ctx, []*models.Course{course}, "courses.csv")
	require.NoError(t, err)

	imported, err := svc.ImportCourses(ctx, path)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	got := imported[0]
	assert.Equal(t, "CS101", got.Code)
	assert.Equal(t, "Intro to Programming", got.Title)
	assert.Equal(t, 4, got.Credits)
	assert.Equal(t, "ins-1", got.InstructorID)
	assert.Equal(t, models.SemesterFall, got.Semester)
	assert.Equal(t, "CSE", got.Department)
	assert.False(t, got.Active)
}

func TestImportCoursesSkipsBadCredits(t *testing.T) {
	ctx := context.Background()
	svc, folders := newImportExportFixture(t)

	content := strings.Join([]string{
		"code,title,credits,instructorId,semester,department,active",
		"CS101,Intro,four,,,CSE,true",
		"MA102,Calculus,3,,,MTH,true",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(folders.Data, "courses.csv"), []byte(content), 0o644))

	imported, err := svc.ImportCourses(ctx, "courses.csv")
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "MA102", imported[0].Code)
}
