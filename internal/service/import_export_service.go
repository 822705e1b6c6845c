package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/pkg/config"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

// Flat-file export format. Field order is fixed; values are joined with
// commas and NOT quoted or escaped, so embedded delimiters corrupt the
// row. That is a known limitation of the format carried over from the
// legacy data files, kept for compatibility with existing tooling.
const (
	studentCSVHeader = "id,regNo,firstName,lastName,email,dateOfBirth,active,enrollmentDate"
	courseCSVHeader  = "code,title,credits,instructorId,semester,department,active"

	csvDateLayout = "2006-01-02"
)

// ImportExportService serializes repository snapshots to flat CSV files
// and parses them back into value objects. Exports land under the export
// folder; relative import paths resolve against the data folder.
type ImportExportService struct {
	exportDir string
	dataDir   string
	logger    *zap.Logger
}

// NewImportExportService constructs the flat-file serializer.
func NewImportExportService(folders config.FolderConfig, logger *zap.Logger) *ImportExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportExportService{exportDir: folders.Export, dataDir: folders.Data, logger: logger}
}

// ExportStudents writes the header plus one line per student, creating
// the export folder when absent and truncating an existing file. Returns
// the written path.
func (s *ImportExportService) ExportStudents(ctx context.Context, students []*models.Student, filename string) (string, error) {
	lines := make([]string, 0, len(students)+1)
	lines = append(lines, studentCSVHeader)
	for _, student := range students {
		lines = append(lines, strings.Join([]string{
			student.ID,
			student.RegNo,
			student.Name.FirstName,
			student.Name.LastName,
			student.Email,
			student.DateOfBirth.Format(csvDateLayout),
			strconv.FormatBool(student.Active),
			student.EnrollmentDate.Format(csvDateLayout),
		}, ","))
	}
	return s.writeExport(filename, lines)
}

// ExportCourses writes the header plus one line per course. Optional
// fields (instructor, semester, department) export as empty strings.
func (s *ImportExportService) ExportCourses(ctx context.Context, courses []*models.Course, filename string) (string, error) {
	lines := make([]string, 0, len(courses)+1)
	lines = append(lines, courseCSVHeader)
	for _, course := range courses {
		lines = append(lines, strings.Join([]string{
			course.Code,
			course.Title,
			strconv.Itoa(course.Credits),
			course.InstructorID,
			string(course.Semester),
			course.Department,
			strconv.FormatBool(course.Active),
		}, ","))
	}
	return s.writeExport(filename, lines)
}

func (s *ImportExportService) writeExport(filename string, lines []string) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export folder")
	}
	path := filepath.Join(s.exportDir, filename)
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write export file")
	}
	s.logger.Info("export written", zap.String("path", path), zap.Int("rows", len(lines)-1))
	return path, nil
}

// ImportStudents reads a student CSV, skipping the header. Rows that
// fail to parse are logged and dropped; the batch never aborts. Only
// id, regNo, name, email and dateOfBirth are reconstructed — the
// exported active and enrollmentDate columns are not applied (fresh
// records come back active with a new enrollment date).
func (s *ImportExportService) ImportStudents(ctx context.Context, filename string) ([]*models.Student, error) {
	rows, err := s.readImport(filename)
	if err != nil {
		return nil, err
	}
	students := make([]*models.Student, 0, len(rows))
	for i, row := range rows {
		student, err := parseStudentRow(row)
		if err != nil {
			s.logger.Warn("skipping malformed student row",
				zap.Int("line", i+2), zap.Error(err))
			continue
		}
		students = append(students, student)
	}
	return students, nil
}

// ImportCourses reads a course CSV, skipping the header; malformed rows
// are logged and dropped.
func (s *ImportExportService) ImportCourses(ctx context.Context, filename string) ([]*models.Course, error) {
	rows, err := s.readImport(filename)
	if err != nil {
		return nil, err
	}
	courses := make([]*models.Course, 0, len(rows))
	for i, row := range rows {
		course, err := parseCourseRow(row)
		if err != nil {
			s.logger.Warn("skipping malformed course row",
				zap.Int("line", i+2), zap.Error(err))
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (s *ImportExportService) readImport(filename string) ([]string, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dataDir, filename)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("import file not found: %s", path))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read import file")
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	rows := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows, nil
}

func parseStudentRow(row string) (*models.Student, error) {
	fields := strings.Split(row, ",")
	if len(fields) != 8 {
		return nil, fmt.Errorf("expected 8 fields, got %d", len(fields))
	}
	dateOfBirth, err := time.Parse(csvDateLayout, fields[5])
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}
	name, err := models.NewName(fields[2], fields[3])
	if err != nil {
		return nil, err
	}
	return models.NewStudent(fields[0], fields[1], name, fields[4], dateOfBirth)
}

func parseCourseRow(row string) (*models.Course, error) {
	fields := strings.Split(row, ",")
	if len(fields) != 7 {
		return nil, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	credits, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid credits: %w", err)
	}
	builder := models.NewCourseBuilder(fields[0], fields[1]).
		Credits(credits).
		Instructor(fields[3]).
		Department(fields[5])
	if fields[4] != "" {
		semester, err := models.ParseSemester(fields[4])
		if err != nil {
			return nil, err
		}
		builder = builder.Semester(semester)
	}
	active, err := strconv.ParseBool(fields[6])
	if err != nil {
		return nil, fmt.Errorf("invalid active flag: %w", err)
	}
	course, err := builder.Build()
	if err != nil {
		return nil, err
	}
	course.Active = active
	return course, nil
}
