package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirelens/interview-service/internal/repositories"
	"github.com/hirelens/interview-service/internal/services"
	"github.com/hirelens/interview-service/internal/utils"
)

type CandidateHandler struct {
	BaseHandler
	questionSetService services.QuestionSetService
	sessionService     services.SessionService
	reportService      services.ReportService
}

func NewCandidateHandler(
	questionSetService services.QuestionSetService,
	sessionService services.SessionService,
	reportService services.ReportService,
	logger utils.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:        NewBaseHandler(logger),
		questionSetService: questionSetService,
		sessionService:     sessionService,
		reportService:      reportService,
	}
}

// ListQuestionSets lists the sets a candidate can take
// @Summary List available question sets
// @Tags candidate
// @Produce json
// @Success 200 {object} PaginatedResponse
// @Router /question-sets [get]
func (h *CandidateHandler) ListQuestionSets(c *gin.Context) {
	active := true
	filters := repositories.QuestionSetFilters{
		IsActive: &active,
		Limit:    parseQueryInt(c, "limit", 50),
		Offset:   parseQueryInt(c, "offset", 0),
	}

	sets, total, err := h.questionSetService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{Data: sets, Total: total})
}

// StartSession opens a test session on a question set
// @Summary Start session
// @Tags candidate
// @Produce json
// @Param id path uint true "Question set ID"
// @Success 201 {object} models.TestSession
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /question-sets/{id}/sessions [post]
func (h *CandidateHandler) StartSession(c *gin.Context) {
	setID := h.parseIDParam(c, "id")
	if setID == 0 {
		return
	}

	h.LogRequest(c, "Starting session", "set_id", setID)

	session, err := h.sessionService.Start(c.Request.Context(), currentUserID(c), setID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSessionQuestions returns the questions to answer, without answers
// @Summary Get session questions
// @Tags candidate
// @Produce json
// @Param id path uint true "Session ID"
// @Success 200 {array} models.Question
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/questions [get]
func (h *CandidateHandler) GetSessionQuestions(c *gin.Context) {
	sessionID := h.parseIDParam(c, "id")
	if sessionID == 0 {
		return
	}

	questions, err := h.sessionService.GetQuestions(c.Request.Context(), currentUserID(c), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// SubmitSessionRequest carries the candidate's answers keyed by question ID.
type SubmitSessionRequest struct {
	Answers map[uint]string `json:"answers"`
}

// SubmitSession submits answers and returns the graded report
// @Summary Submit session
// @Tags candidate
// @Accept json
// @Produce json
// @Param id path uint true "Session ID"
// @Param answers body SubmitSessionRequest true "Answers keyed by question ID"
// @Success 200 {object} services.ScoreReport
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *CandidateHandler) SubmitSession(c *gin.Context) {
	sessionID := h.parseIDParam(c, "id")
	if sessionID == 0 {
		return
	}

	var req SubmitSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting session", "session_id", sessionID, "answers", len(req.Answers))

	report, err := h.sessionService.Submit(c.Request.Context(), currentUserID(c), sessionID, req.Answers)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSessionReport returns the candidate's own score report
// @Summary Get own session report
// @Tags candidate
// @Produce json
// @Param id path uint true "Session ID"
// @Success 200 {object} services.ScoreReport
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/report [get]
func (h *CandidateHandler) GetSessionReport(c *gin.Context) {
	sessionID := h.parseIDParam(c, "id")
	if sessionID == 0 {
		return
	}

	report, err := h.reportService.GetReportForCandidate(c.Request.Context(), currentUserID(c), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
