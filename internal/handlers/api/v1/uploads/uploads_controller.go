package uploads

import (
	"net/http"

	"placementhub/internal/contextutils"
	"placementhub/internal/response"
	"placementhub/internal/services"
	"placementhub/internal/storage"

	"go.uber.org/zap"
)

// memoryLimit caps how much of the multipart body is buffered in memory.
const memoryLimit = 8 << 20

// Controller handles resume uploads.
type Controller struct {
	students    services.StudentService
	maxFileSize int64
	rb          *response.Builder
	logger      *zap.Logger
}

// NewController creates a new uploads controller
func NewController(students services.StudentService, maxFileSize int64, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{students: students, maxFileSize: maxFileSize, rb: rb, logger: logger}
}

// UploadResume handles POST /api/upload/resume. The file arrives in the
// multipart field "resume".
func (c *Controller) UploadResume(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	// Bound the request body before parsing so an oversized upload is
	// rejected early.
	r.Body = http.MaxBytesReader(w, r.Body, c.maxFileSize+memoryLimit)
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid multipart request", err))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("resume file is required", err))
		return
	}
	defer file.Close()

	url, err := c.students.StoreResume(r.Context(), caller, storage.UploadInput{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}

	c.rb.WriteSuccess(w, r, map[string]string{"resumeUrl": url})
}
