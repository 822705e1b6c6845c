package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/repository"
	"github.com/noah-isme/ccrm-api/internal/service"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

func newStudentRouter(t *testing.T) (*gin.Engine, *repository.StudentRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := repository.NewStudentRepository()
	h := NewStudentHandler(service.NewStudentService(repo, nil, nil))

	r := gin.New()
	r.GET("/students", h.List)
	r.POST("/students", h.Create)
	r.GET("/students/:id", h.Get)
	r.PUT("/students/:id", h.Update)
	r.DELETE("/students/:id", h.Delete)
	return r, repo
}

func createStudentPayload(regNo string) []byte {
	payload, _ := json.Marshal(service.CreateStudentRequest{
		RegNo:       regNo,
		FirstName:   "Asha",
		LastName:    "Verma",
		Email:       "asha@example.edu",
		DateOfBirth: time.Date(2004, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	return payload
}

func TestStudentHandlerCreateAndGet(t *testing.T) {
	r, _ := newStudentRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(createStudentPayload("2023CS001")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	created, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/students/"+id, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2023CS001")
}

func TestStudentHandlerDuplicateRegNo(t *testing.T) {
	r, _ := newStudentRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(createStudentPayload("2023CS001")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(createStudentPayload("2023CS001")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestStudentHandlerGetMissing(t *testing.T) {
	r, _ := newStudentRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/ghost", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlerDeleteIsSoft(t *testing.T) {
	r, repo := newStudentRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(createStudentPayload("2023CS001")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	created := envelope.Data.(map[string]interface{})
	id := created["id"].(string)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/students/"+id, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	student, err := repo.FindByID(req.Context(), id)
	require.NoError(t, err)
	assert.False(t, student.Active)
}

func TestStudentHandlerListPagination(t *testing.T) {
	r, _ := newStudentRouter(t)

	for _, regNo := range []string{"2023CS001", "2023CS002", "2023CS003"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(createStudentPayload(regNo)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students?page=1&limit=2", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 3, envelope.Pagination.TotalCount)
	items, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}
