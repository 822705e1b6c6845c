package models

import (
	"fmt"
	"strings"
)

// Grade is the closed letter-grade scale used for all course work.
type Grade string

// Letter grades ordered by grade point descending.
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

type gradeInfo struct {
	points      float64
	description string
}

var gradeTable = map[Grade]gradeInfo{
	GradeS: {10.0, "Outstanding"},
	GradeA: {9.0, "Excellent"},
	GradeB: {8.0, "Very Good"},
	GradeC: {7.0, "Good"},
	GradeD: {6.0, "Satisfactory"},
	GradeE: {5.0, "Pass"},
	GradeF: {0.0, "Fail"},
}

// ParseGrade converts a raw letter into a Grade.
func ParseGrade(raw string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := gradeTable[g]; !ok {
		return "", fmt.Errorf("unknown grade %q", raw)
	}
	return g, nil
}

// Valid reports whether g is one of the defined letters.
func (g Grade) Valid() bool {
	_, ok := gradeTable[g]
	return ok
}

// Points returns the fixed grade-point value for the letter.
func (g Grade) Points() float64 {
	return gradeTable[g].points
}

// Description returns the human-readable meaning of the letter.
func (g Grade) Description() string {
	return gradeTable[g].description
}

func (g Grade) String() string {
	if !g.Valid() {
		return string(g)
	}
	return fmt.Sprintf("%s (%.1f)", string(g), g.Points())
}
