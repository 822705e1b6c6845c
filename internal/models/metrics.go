package models

import "time"

// SystemMetrics is a lightweight snapshot exposed by the stats endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	Students                 int       `json:"students"`
	Courses                  int       `json:"courses"`
	Enrollments              int       `json:"enrollments"`
	BackupSizeBytes          int64     `json:"backup_size_bytes"`
	GeneratedAt              time.Time `json:"generated_at"`
}
