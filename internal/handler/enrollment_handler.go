package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/internal/models"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

type enrollmentWorkflow interface {
	Enroll(ctx context.Context, studentID, courseCode string) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseCode string) error
	AssignGrade(ctx context.Context, studentID, courseCode, rawGrade string) (*models.Student, error)
	ListForStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error)
}

// EnrollmentHandler exposes the registration and grading workflow under
// the student resource.
type EnrollmentHandler struct {
	enrollments enrollmentWorkflow
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentWorkflow) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollRequest struct {
	CourseCode string `json:"course_code" binding:"required"`
}

type assignGradeRequest struct {
	Grade string `json:"grade" binding:"required"`
}

// List godoc
// @Summary List a student's enrollments
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.enrollments.ListForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// Enroll godoc
// @Summary Enroll a student in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body enrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), c.Param("id"), req.CourseCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Unenroll godoc
// @Summary Drop a course for a student
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Param code path string true "Course code"
// @Success 204
// @Router /students/{id}/enrollments/{code} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	if err := h.enrollments.Unenroll(c.Request.Context(), c.Param("id"), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignGrade godoc
// @Summary Record a grade for an enrolled course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param code path string true "Course code"
// @Param payload body assignGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/enrollments/{code}/grade [put]
func (h *EnrollmentHandler) AssignGrade(c *gin.Context) {
	var req assignGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.enrollments.AssignGrade(c.Request.Context(), c.Param("id"), c.Param("code"), req.Grade)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}
