package models

import "time"

// TranscriptLine is one graded course resolved against the catalog. When
// the course was deleted or never existed the title falls back to
// "Unknown" and credits to 3.
type TranscriptLine struct {
	CourseCode  string  `json:"course_code"`
	CourseTitle string  `json:"course_title"`
	Credits     int     `json:"credits"`
	Grade       Grade   `json:"grade"`
	GradePoint  float64 `json:"grade_point"`
}

// Transcript aggregates a student's graded work. WeightedGPA weights
// grade points by course credits; UnweightedGPA is the plain mean the
// student record reports. The two figures are not required to match.
type Transcript struct {
	StudentID      string           `json:"student_id"`
	RegNo          string           `json:"reg_no"`
	StudentName    string           `json:"student_name"`
	ProfileSummary string           `json:"profile_summary"`
	Lines          []TranscriptLine `json:"lines"`
	TotalCredits   int              `json:"total_credits"`
	WeightedGPA    float64          `json:"weighted_gpa"`
	UnweightedGPA  float64          `json:"unweighted_gpa"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
