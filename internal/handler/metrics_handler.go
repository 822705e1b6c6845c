package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/service"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics     *service.MetricsService
	students    *service.StudentService
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	backups     *service.BackupService
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, students *service.StudentService, courses *service.CourseService, enrollments *service.EnrollmentService, backups *service.BackupService) *MetricsHandler {
	return &MetricsHandler{
		metrics:     metrics,
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		backups:     backups,
	}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Stats godoc
// @Summary Snapshot of runtime and record statistics
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /data/stats [get]
func (h *MetricsHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	requests, avgMs := h.metrics.RequestStats()
	studentCount := len(h.students.All(ctx))
	courseCount := len(h.courses.All(ctx))
	enrollmentCount := h.enrollments.Count(ctx)

	h.metrics.SetRecordCount("students", studentCount)
	h.metrics.SetRecordCount("courses", courseCount)
	h.metrics.SetRecordCount("enrollments", enrollmentCount)

	backupSize, err := h.backups.BackupSize(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot := models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgMs,
		Goroutines:               runtime.NumGoroutine(),
		Students:                 studentCount,
		Courses:                  courseCount,
		Enrollments:              enrollmentCount,
		BackupSizeBytes:          backupSize,
		GeneratedAt:              time.Now().UTC(),
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}
