package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/export"
)

// Fallbacks used when a graded course has been deleted from the catalog
// or never existed.
const (
	unknownCourseTitle   = "Unknown"
	unknownCourseCredits = 3
)

type courseReader interface {
	FindByID(ctx context.Context, code string) (*models.Course, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, summary ...string) ([]byte, error)
}

// TranscriptService builds read-only GPA reports over the repositories.
type TranscriptService struct {
	students studentReader
	courses  courseReader
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewTranscriptService constructs the transcript builder.
func NewTranscriptService(students studentReader, courses courseReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *TranscriptService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{students: students, courses: courses, csv: csv, pdf: pdf, logger: logger}
}

// Build aggregates the student's graded courses against the catalog.
// The weighted GPA multiplies grade points by course credits; the
// unweighted figure is the plain mean the student record reports. The
// two are exposed side by side and are not required to match.
func (s *TranscriptService) Build(ctx context.Context, studentID string) (*models.Transcript, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	codes := make([]string, 0, len(student.Grades))
	for code := range student.Grades {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	lines := make([]models.TranscriptLine, 0, len(codes))
	totalCredits := 0
	weightedPoints := 0.0
	for _, code := range codes {
		grade := student.Grades[code]
		title := unknownCourseTitle
		credits := unknownCourseCredits
		if course, err := s.courses.FindByID(ctx, code); err == nil {
			title = course.Title
			credits = course.Credits
		}
		lines = append(lines, models.TranscriptLine{
			CourseCode:  code,
			CourseTitle: title,
			Credits:     credits,
			Grade:       grade,
			GradePoint:  grade.Points(),
		})
		totalCredits += credits
		weightedPoints += grade.Points() * float64(credits)
	}

	weightedGPA := 0.0
	if totalCredits > 0 {
		weightedGPA = weightedPoints / float64(totalCredits)
	}

	return &models.Transcript{
		StudentID:      student.ID,
		RegNo:          student.RegNo,
		StudentName:    student.Name.Full(),
		ProfileSummary: student.ProfileSummary(),
		Lines:          lines,
		TotalCredits:   totalCredits,
		WeightedGPA:    weightedGPA,
		UnweightedGPA:  student.GPA(),
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

// RenderCSV renders the transcript as a downloadable CSV report.
func (s *TranscriptService) RenderCSV(ctx context.Context, studentID string) ([]byte, error) {
	transcript, err := s.Build(ctx, studentID)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(transcriptDataset(transcript))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript csv")
	}
	return payload, nil
}

// RenderPDF renders the transcript as a downloadable PDF report.
func (s *TranscriptService) RenderPDF(ctx context.Context, studentID string) ([]byte, error) {
	transcript, err := s.Build(ctx, studentID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Transcript - %s (%s)", transcript.StudentName, transcript.RegNo)
	summary := []string{
		fmt.Sprintf("Total Credits: %d", transcript.TotalCredits),
		fmt.Sprintf("Weighted GPA: %.2f", transcript.WeightedGPA),
		fmt.Sprintf("Unweighted GPA: %.2f", transcript.UnweightedGPA),
	}
	payload, err := s.pdf.Render(transcriptDataset(transcript), title, summary...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript pdf")
	}
	return payload, nil
}

func transcriptDataset(transcript *models.Transcript) export.Dataset {
	headers := []string{"Course Code", "Title", "Credits", "Grade", "Grade Point"}
	rows := make([]map[string]string, 0, len(transcript.Lines))
	for _, line := range transcript.Lines {
		rows = append(rows, map[string]string{
			"Course Code": line.CourseCode,
			"Title":       line.CourseTitle,
			"Credits":     fmt.Sprintf("%d", line.Credits),
			"Grade":       string(line.Grade),
			"Grade Point": fmt.Sprintf("%.1f", line.GradePoint),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
