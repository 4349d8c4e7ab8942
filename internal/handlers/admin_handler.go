package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirelens/interview-service/internal/repositories"
	"github.com/hirelens/interview-service/internal/services"
	"github.com/hirelens/interview-service/internal/utils"
	"github.com/hirelens/interview-service/internal/validator"
)

type AdminHandler struct {
	BaseHandler
	questionSetService services.QuestionSetService
	ingestService      services.IngestService
	gradingService     services.GradingService
	sessionService     services.SessionService
	reportService      services.ReportService
	validator          *validator.Validator
}

func NewAdminHandler(
	questionSetService services.QuestionSetService,
	ingestService services.IngestService,
	gradingService services.GradingService,
	sessionService services.SessionService,
	reportService services.ReportService,
	v *validator.Validator,
	logger utils.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        NewBaseHandler(logger),
		questionSetService: questionSetService,
		ingestService:      ingestService,
		gradingService:     gradingService,
		sessionService:     sessionService,
		reportService:      reportService,
		validator:          v,
	}
}

// CreateQuestionSet creates an empty question set
// @Summary Create question set
// @Tags admin
// @Accept json
// @Produce json
// @Param set body services.CreateQuestionSetRequest true "Question set data"
// @Success 201 {object} models.QuestionSet
// @Failure 400 {object} ErrorResponse
// @Router /admin/question-sets [post]
func (h *AdminHandler) CreateQuestionSet(c *gin.Context) {
	var req services.CreateQuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating question set", "title", req.Title)

	set, err := h.questionSetService.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, set)
}

// ListQuestionSets lists question sets
// @Summary List question sets
// @Tags admin
// @Produce json
// @Success 200 {object} PaginatedResponse
// @Router /admin/question-sets [get]
func (h *AdminHandler) ListQuestionSets(c *gin.Context) {
	filters := repositories.QuestionSetFilters{
		Limit:     parseQueryInt(c, "limit", 50),
		Offset:    parseQueryInt(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if active := c.Query("is_active"); active != "" {
		value := active == "true"
		filters.IsActive = &value
	}

	sets, total, err := h.questionSetService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{Data: sets, Total: total})
}

// GetQuestionSet returns a set with its questions, answers included
// @Summary Get question set
// @Tags admin
// @Produce json
// @Param id path uint true "Question set ID"
// @Success 200 {object} models.QuestionSet
// @Failure 404 {object} ErrorResponse
// @Router /admin/question-sets/{id} [get]
func (h *AdminHandler) GetQuestionSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	set, err := h.questionSetService.GetWithQuestions(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// SetQuestionSetActive toggles whether candidates can see a set
// @Summary Activate or deactivate a question set
// @Tags admin
// @Accept json
// @Produce json
// @Param id path uint true "Question set ID"
// @Success 200 {object} models.QuestionSet
// @Failure 404 {object} ErrorResponse
// @Router /admin/question-sets/{id}/active [put]
func (h *AdminHandler) SetQuestionSetActive(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	set, err := h.questionSetService.SetActive(c.Request.Context(), id, req.IsActive)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// DeleteQuestionSet removes a set that has no completed sessions
// @Summary Delete question set
// @Tags admin
// @Param id path uint true "Question set ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/question-sets/{id} [delete]
func (h *AdminHandler) DeleteQuestionSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting question set", "set_id", id)

	if err := h.questionSetService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadQuestions ingests a question PDF into a set
// @Summary Upload question PDF
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path uint true "Question set ID"
// @Param file formData file true "Question PDF"
// @Success 200 {object} services.IngestReport
// @Failure 400 {object} ErrorResponse
// @Router /admin/question-sets/{id}/questions [post]
func (h *AdminHandler) UploadQuestions(c *gin.Context) {
	h.ingestUpload(c, h.ingestService.IngestQuestionsPDF)
}

// UploadAnswerKey ingests an answer key PDF into a set
// @Summary Upload answer key PDF
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path uint true "Question set ID"
// @Param file formData file true "Answer key PDF"
// @Success 200 {object} services.IngestReport
// @Failure 400 {object} ErrorResponse
// @Router /admin/question-sets/{id}/answer-key [post]
func (h *AdminHandler) UploadAnswerKey(c *gin.Context) {
	h.ingestUpload(c, h.ingestService.IngestAnswerKeyPDF)
}

type ingestFunc func(ctx context.Context, setID uint, path string) (*services.IngestReport, error)

func (h *AdminHandler) ingestUpload(c *gin.Context, ingest ingestFunc) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}

	// Stage the upload in a temp file for the extractor.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s.pdf", uuid.NewString()))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}
	defer os.Remove(tmpPath)

	h.LogRequest(c, "Ingesting PDF", "set_id", id, "filename", file.Filename)

	report, err := ingest(c.Request.Context(), id, tmpPath)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListSessions lists test sessions
// @Summary List sessions
// @Tags admin
// @Produce json
// @Success 200 {object} PaginatedResponse
// @Router /admin/sessions [get]
func (h *AdminHandler) ListSessions(c *gin.Context) {
	filters := repositories.SessionFilters{
		Limit:  parseQueryInt(c, "limit", 50),
		Offset: parseQueryInt(c, "offset", 0),
	}
	if setID := parseQueryUint(c, "question_set_id"); setID != 0 {
		filters.QuestionSetID = &setID
	}
	if completed := c.Query("is_completed"); completed != "" {
		value := completed == "true"
		filters.IsCompleted = &value
	}

	sessions, total, err := h.sessionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{Data: sessions, Total: total})
}

// GradeSession recomputes a session's score from stored answers
// @Summary Grade session
// @Tags admin
// @Produce json
// @Param id path uint true "Session ID"
// @Success 200 {object} services.ScoreReport
// @Failure 404 {object} ErrorResponse
// @Router /admin/sessions/{id}/grade [post]
func (h *AdminHandler) GradeSession(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	report, err := h.gradingService.Grade(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSessionReport returns the stored score report for a session
// @Summary Get session report
// @Tags admin
// @Produce json
// @Param id path uint true "Session ID"
// @Success 200 {object} services.ScoreReport
// @Failure 404 {object} ErrorResponse
// @Router /admin/sessions/{id}/report [get]
func (h *AdminHandler) GetSessionReport(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListResults lists results for a question set
// @Summary List results
// @Tags admin
// @Produce json
// @Param id path uint true "Question set ID"
// @Success 200 {object} PaginatedResponse
// @Router /admin/question-sets/{id}/results [get]
func (h *AdminHandler) ListResults(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	filters := repositories.ResultFilters{
		Limit:     parseQueryInt(c, "limit", 50),
		Offset:    parseQueryInt(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if passed := c.Query("passed"); passed != "" {
		value := passed == "true"
		filters.Passed = &value
	}

	results, total, err := h.reportService.ListBySet(c.Request.Context(), id, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{Data: results, Total: total})
}

// ExportResults downloads all results of a set as an xlsx workbook
// @Summary Export results
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Question set ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /admin/question-sets/{id}/results/export [get]
func (h *AdminHandler) ExportResults(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Exporting results", "set_id", id)

	data, err := h.reportService.ExportExcel(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("results-set-%d.xlsx", id)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func parseQueryUint(c *gin.Context, name string) uint {
	value, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}
