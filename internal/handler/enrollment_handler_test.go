package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type enrollmentWorkflowMock struct {
	enrollResp   *models.Enrollment
	enrollErr    error
	unenrollErr  error
	gradeResp    *models.Student
	gradeErr     error
	listResp     []*models.Enrollment
	listErr      error
	lastStudent  string
	lastCourse   string
	lastGrade    string
	enrollCalled bool
	gradeCalled  bool
}

func (m *enrollmentWorkflowMock) Enroll(ctx context.Context, studentID, courseCode string) (*models.Enrollment, error) {
	m.enrollCalled = true
	m.lastStudent = studentID
	m.lastCourse = courseCode
	return m.enrollResp, m.enrollErr
}

func (m *enrollmentWorkflowMock) Unenroll(ctx context.Context, studentID, courseCode string) error {
	m.lastStudent = studentID
	m.lastCourse = courseCode
	return m.unenrollErr
}

func (m *enrollmentWorkflowMock) AssignGrade(ctx context.Context, studentID, courseCode, rawGrade string) (*models.Student, error) {
	m.gradeCalled = true
	m.lastStudent = studentID
	m.lastCourse = courseCode
	m.lastGrade = rawGrade
	return m.gradeResp, m.gradeErr
}

func (m *enrollmentWorkflowMock) ListForStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	m.lastStudent = studentID
	return m.listResp, m.listErr
}

func enrollContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	return c, w
}

func TestEnrollHandlerSuccess(t *testing.T) {
	enrollment, err := models.NewEnrollment("stu-1", "CS101")
	require.NoError(t, err)
	mockSvc := &enrollmentWorkflowMock{enrollResp: enrollment}
	h := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(enrollRequest{CourseCode: "CS101"})
	c, w := enrollContext(t, http.MethodPost, "/students/stu-1/enrollments", payload)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	h.Enroll(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.enrollCalled)
	assert.Equal(t, "stu-1", mockSvc.lastStudent)
	assert.Equal(t, "CS101", mockSvc.lastCourse)
}

func TestEnrollHandlerInvalidBody(t *testing.T) {
	h := NewEnrollmentHandler(&enrollmentWorkflowMock{})

	c, w := enrollContext(t, http.MethodPost, "/students/stu-1/enrollments", []byte(`{"course_code":`))
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	h.Enroll(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollHandlerConflict(t *testing.T) {
	mockSvc := &enrollmentWorkflowMock{enrollErr: appErrors.Clone(appErrors.ErrConflict, "already enrolled")}
	h := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(enrollRequest{CourseCode: "CS101"})
	c, w := enrollContext(t, http.MethodPost, "/students/stu-1/enrollments", payload)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	h.Enroll(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestEnrollHandlerCreditLimit(t *testing.T) {
	mockSvc := &enrollmentWorkflowMock{enrollErr: appErrors.Clone(appErrors.ErrCreditLimit, "cap reached")}
	h := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(enrollRequest{CourseCode: "CS101"})
	c, w := enrollContext(t, http.MethodPost, "/students/stu-1/enrollments", payload)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	h.Enroll(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestUnenrollHandlerNoContent(t *testing.T) {
	mockSvc := &enrollmentWorkflowMock{}
	h := NewEnrollmentHandler(mockSvc)

	c, w := enrollContext(t, http.MethodDelete, "/students/stu-1/enrollments/CS101", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}, {Key: "code", Value: "CS101"}}

	h.Unenroll(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "CS101", mockSvc.lastCourse)
}

func TestAssignGradeHandlerNotEnrolled(t *testing.T) {
	mockSvc := &enrollmentWorkflowMock{gradeErr: appErrors.Clone(appErrors.ErrNotEnrolled, "not enrolled")}
	h := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(assignGradeRequest{Grade: "A"})
	c, w := enrollContext(t, http.MethodPut, "/students/stu-1/enrollments/CS101/grade", payload)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}, {Key: "code", Value: "CS101"}}

	h.AssignGrade(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.True(t, mockSvc.gradeCalled)
	assert.Equal(t, "A", mockSvc.lastGrade)
}

func TestListEnrollmentsHandlerNotFound(t *testing.T) {
	mockSvc := &enrollmentWorkflowMock{listErr: appErrors.Clone(appErrors.ErrNotFound, "student not found")}
	h := NewEnrollmentHandler(mockSvc)

	c, w := enrollContext(t, http.MethodGet, "/students/ghost/enrollments", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	h.List(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
