package handlers

import (
	"errors"
	"io"
	"iter"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/examprep-service/internal/services"
	"github.com/SAP-F-2025/examprep-service/internal/utils"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

type ExamHandler struct {
	BaseHandler
	examService    services.ExamService
	maxUploadBytes int64
}

func NewExamHandler(examService services.ExamService, maxUploadBytes int64, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler:    NewBaseHandler(logger),
		examService:    examService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Generate streams a generated exam for a topic
// @Summary Generate exam
// @Tags exam
// @Accept json
// @Produce plain
// @Param request body validator.ExamRequest true "Exam request"
// @Router /exam/generate [post]
func (h *ExamHandler) Generate(c *gin.Context) {
	var req validator.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	fragments, err := h.examService.GenerateFromTopic(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.streamText(c, fragments)
}

// GenerateFromPDF streams an exam generated from an uploaded document
// @Summary Generate exam from a document
// @Tags exam
// @Accept mpfd
// @Produce plain
// @Param file formData file true "PDF, XLSX or text document"
// @Param difficulty formData string true "Difficulty"
// @Param total_questions formData int false "Number of questions"
// @Param q_types formData string true "Question types"
// @Router /exam/generate-from-pdf [post]
func (h *ExamHandler) GenerateFromPDF(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	var form validator.DocumentExamForm
	if err := c.ShouldBind(&form); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form data", err.Error())
		return
	}

	h.LogRequest(c, "Generating exam from document", "filename", upload.Filename, "size", len(upload.Data))

	fragments, err := h.examService.GenerateFromDocument(c.Request.Context(), upload, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.streamText(c, fragments)
}

// ExtractPYQ streams questions copied out of a past paper, starting at a
// given question
// @Summary Extract past-paper questions
// @Tags exam
// @Accept mpfd
// @Produce plain
// @Param file formData file true "Question paper"
// @Param start_index formData int false "First question, by position (default 1)"
// @Param questions_limit formData int false "Number of questions (default 20)"
// @Failure 404 {object} ErrorResponse
// @Router /exam/api/extract-pyq [post]
func (h *ExamHandler) ExtractPYQ(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	var form validator.ExtractionForm
	if err := c.ShouldBind(&form); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form data", err.Error())
		return
	}

	extraction, err := h.examService.ExtractQuestions(c.Request.Context(), upload, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("X-Question-Count", strconv.Itoa(extraction.QuestionCount))
	if len(extraction.DiagramPages) > 0 {
		pages := make([]string, len(extraction.DiagramPages))
		for i, p := range extraction.DiagramPages {
			pages[i] = strconv.Itoa(p)
		}
		c.Header("X-Diagram-Pages", strings.Join(pages, ","))
	}

	h.streamText(c, extraction.Fragments)
}

// GenerateFromWeb streams an exam generated from the text of a web page
// @Summary Generate exam from a web page
// @Tags exam
// @Accept json
// @Produce plain
// @Param request body validator.ExamRequest true "topic holds the page URL"
// @Failure 502 {object} ErrorResponse
// @Router /exam/generate-from-web [post]
func (h *ExamHandler) GenerateFromWeb(c *gin.Context) {
	var req validator.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	fragments, err := h.examService.GenerateFromWeb(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.streamText(c, fragments)
}

func (h *ExamHandler) readUpload(c *gin.Context) (*services.Upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.RespondWithError(c, http.StatusRequestEntityTooLarge, "File too large", tooLarge.Limit)
			return nil, false
		}
		h.RespondWithError(c, http.StatusBadRequest, "A file upload is required", err.Error())
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Unreadable upload", err.Error())
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Unreadable upload", err.Error())
		return nil, false
	}

	return &services.Upload{Filename: header.Filename, Data: data}, true
}

// streamText writes each fragment as it arrives. A failed write means the
// client went away; returning stops the sequence and with it the upstream call.
func (h *ExamHandler) streamText(c *gin.Context, fragments iter.Seq[string]) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	for fragment := range fragments {
		if _, err := c.Writer.WriteString(fragment); err != nil {
			utils.GetLogger(c, h.logger).Warn("Client disconnected during stream", "error", err)
			return
		}
		c.Writer.Flush()
	}
}
