package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/internal/controller"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
}

func NewUserTestController(uts service.UserTestService, tss service.TestSubmissionService) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
	}
}

// GetAllTests godoc
// @Summary List active tests
// @Description Active tests with their question counts, newest first.
// @Tags Tests
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.TestSummaryDTO}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "GetAllTests", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(tests))
}

// GetTestDetails godoc
// @Summary Get a test with its questions
// @Description Test metadata and ordered questions. Correct answers are not included.
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.Response{data=dto.TestDetailDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	test, err := c.userTestService.GetTestDetails(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "GetTestDetails", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(test))
}

// SubmitTest godoc
// @Summary Submit answers for a test
// @Description Grades the answers against the answer key and stores a new result. Every call creates a new result.
// @Tags Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.SubmitTestRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.Response{data=dto.SubmissionResultDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input or test has no questions"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Result could not be saved"
// @Router /tests/{test_id}/submit [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.SubmitTestRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	log.Info().Uint("testID", testID).Int("answerCount", len(req.Answers)).Msg("Received test submission")

	result, err := c.testSubmissionService.SubmitTest(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, "SubmitTest", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(result, result.Message))
}

// GetTestResults godoc
// @Summary List results of a test
// @Description Test metadata and every stored result, newest first.
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.Response{data=dto.TestResultsDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/results [get]
func (c *UserTestController) GetTestResults(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	results, err := c.testSubmissionService.GetTestResults(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "GetTestResults", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(results))
}
