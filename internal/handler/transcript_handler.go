package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/internal/models"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

type transcriptBuilder interface {
	Build(ctx context.Context, studentID string) (*models.Transcript, error)
	RenderCSV(ctx context.Context, studentID string) ([]byte, error)
	RenderPDF(ctx context.Context, studentID string) ([]byte, error)
}

// TranscriptHandler exposes the GPA report endpoint.
type TranscriptHandler struct {
	transcripts transcriptBuilder
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(transcripts transcriptBuilder) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// Get godoc
// @Summary Get a student's transcript
// @Description Returns the transcript as JSON, or as a downloadable file when format=csv or format=pdf.
// @Tags Transcripts
// @Produce json
// @Param id path string true "Student ID"
// @Param format query string false "Download format (csv or pdf)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	studentID := c.Param("id")
	switch c.Query("format") {
	case "":
		transcript, err := h.transcripts.Build(c.Request.Context(), studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, transcript, nil)
	case "csv":
		payload, err := h.transcripts.RenderCSV(c.Request.Context(), studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transcript_%s.csv", studentID))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.transcripts.RenderPDF(c.Request.Context(), studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transcript_%s.pdf", studentID))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
