package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/internal/service"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

// Default export filenames, matching what the legacy data folder ships.
const (
	defaultStudentExport = "students.csv"
	defaultCourseExport  = "courses.csv"
)

// DataHandler exposes flat-file export/import and backup endpoints.
type DataHandler struct {
	students *service.StudentService
	courses  *service.CourseService
	files    *service.ImportExportService
	backups  *service.BackupService
}

// NewDataHandler constructs DataHandler.
func NewDataHandler(students *service.StudentService, courses *service.CourseService, files *service.ImportExportService, backups *service.BackupService) *DataHandler {
	return &DataHandler{students: students, courses: courses, files: files, backups: backups}
}

type importRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// ExportStudents godoc
// @Summary Export the student roster to a CSV file
// @Tags Data
// @Produce json
// @Param filename query string false "Target filename"
// @Success 200 {object} response.Envelope
// @Router /data/export/students [post]
func (h *DataHandler) ExportStudents(c *gin.Context) {
	filename := c.DefaultQuery("filename", defaultStudentExport)
	students := h.students.All(c.Request.Context())
	path, err := h.files.ExportStudents(c.Request.Context(), students, filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"path": path, "rows": len(students)}, nil)
}

// ExportCourses godoc
// @Summary Export the course catalog to a CSV file
// @Tags Data
// @Produce json
// @Param filename query string false "Target filename"
// @Success 200 {object} response.Envelope
// @Router /data/export/courses [post]
func (h *DataHandler) ExportCourses(c *gin.Context) {
	filename := c.DefaultQuery("filename", defaultCourseExport)
	courses := h.courses.All(c.Request.Context())
	path, err := h.files.ExportCourses(c.Request.Context(), courses, filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"path": path, "rows": len(courses)}, nil)
}

// ImportStudents godoc
// @Summary Import students from a CSV file
// @Description Parses the file and upserts every well-formed row; malformed rows are skipped.
// @Tags Data
// @Accept json
// @Produce json
// @Param payload body importRequest true "Import payload"
// @Success 200 {object} response.Envelope
// @Router /data/import/students [post]
func (h *DataHandler) ImportStudents(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	students, err := h.files.ImportStudents(c.Request.Context(), req.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.Restore(c.Request.Context(), students); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": len(students)}, nil)
}

// ImportCourses godoc
// @Summary Import courses from a CSV file
// @Tags Data
// @Accept json
// @Produce json
// @Param payload body importRequest true "Import payload"
// @Success 200 {object} response.Envelope
// @Router /data/import/courses [post]
func (h *DataHandler) ImportCourses(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	courses, err := h.files.ImportCourses(c.Request.Context(), req.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.courses.Restore(c.Request.Context(), courses); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": len(courses)}, nil)
}

// Backup godoc
// @Summary Snapshot the export folder into a timestamped backup
// @Tags Data
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /data/backup [post]
func (h *DataHandler) Backup(c *gin.Context) {
	path, err := h.backups.CreateBackup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"path": path})
}

// BackupSize godoc
// @Summary Report the total size of all backups
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /data/backup/size [get]
func (h *DataHandler) BackupSize(c *gin.Context) {
	size, err := h.backups.BackupSize(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"bytes": size}, nil)
}

// Files godoc
// @Summary List files under the backup folder by depth
// @Tags Data
// @Produce json
// @Param depth query int false "Maximum recursion depth"
// @Success 200 {object} response.Envelope
// @Router /data/files [get]
func (h *DataHandler) Files(c *gin.Context) {
	depth, err := strconv.Atoi(c.DefaultQuery("depth", "3"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "depth must be an integer"))
		return
	}
	lines, err := h.backups.ListFilesByDepth(c.Request.Context(), "", depth)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lines, nil)
}
