package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tutor/internal/submission"
	"github.com/abhisek/tutor/internal/tutor"
)

// apiKeyHeader carries the credential for GET requests.
const apiKeyHeader = "X-API-Key"

type askResponse struct {
	Answer    string `json:"answer"`
	Model     string `json:"model"`
	RequestID string `json:"request_id,omitempty"`
}

type modelJSON struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	CanGenerate bool   `json:"can_generate"`
}

type modelsResponse struct {
	Models   []modelJSON `json:"models"`
	Selected string      `json:"selected"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    "Math & Physics Tutor",
		"Subtitle": s.cfg.Subtitle,
		"NeedKey":  !s.hasPreconfiguredKey(),
		"Accept":   strings.Join(submission.AcceptedExtensions, ","),
	})
}

func (s *Server) handleAsk(c *gin.Context) {
	img, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   err.Error(),
			Kind:    "invalid_image",
			Message: "Please attach a .jpg, .jpeg or .png image.",
		})
		return
	}

	key, err := s.resolveCredential(c.PostForm("api_key"))
	if err != nil {
		writeError(c, err)
		return
	}

	answer, err := s.tutor.Ask(c.Request.Context(), key, submission.New(c.PostForm("text"), img))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, askResponse{
		Answer:    answer.Text,
		Model:     answer.Model,
		RequestID: answer.RequestID,
	})
}

func (s *Server) handleModels(c *gin.Context) {
	key, err := s.resolveCredential(c.GetHeader(apiKeyHeader))
	if err != nil {
		writeError(c, err)
		return
	}

	models, selected, err := s.tutor.Discover(c.Request.Context(), key)
	if err != nil && tutor.Classify(err) != tutor.KindNoUsableModel {
		writeError(c, err)
		return
	}

	resp := modelsResponse{Models: make([]modelJSON, 0, len(models)), Selected: selected}
	for _, m := range models {
		resp.Models = append(resp.Models, modelJSON{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			CanGenerate: m.CanGenerate,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// readImage returns the uploaded image, or nil when the field is absent or
// empty.
func readImage(c *gin.Context) (*submission.Image, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return submission.ImageFromBytes(fh.Filename, data)
}

func writeError(c *gin.Context, err error) {
	kind := tutor.Classify(err)
	c.JSON(statusFor(kind), errorResponse{
		Error:   err.Error(),
		Kind:    kind.String(),
		Message: tutor.UserMessage(err),
	})
}

func statusFor(k tutor.Kind) int {
	switch k {
	case tutor.KindMissingCredential:
		return http.StatusUnauthorized
	case tutor.KindEmptySubmission:
		return http.StatusBadRequest
	case tutor.KindNoUsableModel:
		return http.StatusUnprocessableEntity
	case tutor.KindBackendUnreachable, tutor.KindGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
