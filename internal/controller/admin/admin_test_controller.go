package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/internal/controller"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/service"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
	questionService  service.QuestionService
}

func NewAdminTestController(adminTestService service.AdminTestService, questionService service.QuestionService) *AdminTestController {
	return &AdminTestController{
		adminTestService: adminTestService,
		questionService:  questionService,
	}
}

// CreateTest godoc
// @Summary (Admin) Create a test
// @Description Creates a test together with its questions. Missing time limit, passing score and active flag get defaults.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security AdminToken
// @Param test_data body dto.TestCreateDTO true "Test with questions"
// @Success 201 {object} dto.Response{data=dto.TestAdminDetailDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 401 {object} dto.ErrorResponse "Missing admin token"
// @Failure 403 {object} dto.ErrorResponse "Invalid admin token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	test, err := c.adminTestService.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "CreateTest", err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.OKWithMessage(test, "Test created"))
}

// GetTest godoc
// @Summary (Admin) Get a test with its answer key
// @Tags Admin - Tests
// @Produce json
// @Security AdminToken
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.Response{data=dto.TestAdminDetailDTO}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [get]
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	test, err := c.adminTestService.GetTest(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "GetTest", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(test))
}

// UpdateTest godoc
// @Summary (Admin) Update test metadata
// @Description Partial update. Absent fields are left untouched.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security AdminToken
// @Param test_id path int true "Test ID"
// @Param test_data body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.TestAdminDetailDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.TestUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	test, err := c.adminTestService.UpdateTest(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, "UpdateTest", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(test, "Test updated"))
}

// DeleteTest godoc
// @Summary (Admin) Delete a test and its questions
// @Tags Admin - Tests
// @Produce json
// @Security AdminToken
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.adminTestService.DeleteTest(ctx.Request.Context(), testID); err != nil {
		controller.RespondError(ctx, "DeleteTest", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(nil, "Test deleted"))
}

// AddQuestion godoc
// @Summary (Admin) Add a question to a test
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security AdminToken
// @Param test_id path int true "Test ID"
// @Param question body dto.QuestionCreateDTO true "Question"
// @Success 201 {object} dto.Response{data=dto.QuestionDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/questions [post]
func (c *AdminTestController) AddQuestion(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.AddQuestionToTest(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, "AddQuestion", err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.OKWithMessage(question, "Question added"))
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Partial update. Rejected once the owning test has results.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security AdminToken
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.QuestionDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Test already has results"
// @Router /admin/questions/{question_id} [put]
func (c *AdminTestController) UpdateQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, "UpdateQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(question, "Question updated"))
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Security AdminToken
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Test already has results"
// @Router /admin/questions/{question_id} [delete]
func (c *AdminTestController) DeleteQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, "DeleteQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(nil, "Question deleted"))
}

// GetStats godoc
// @Summary (Admin) Content and usage counters
// @Tags Admin - Stats
// @Produce json
// @Security AdminToken
// @Success 200 {object} dto.Response{data=dto.StatsDTO}
// @Router /admin/stats [get]
func (c *AdminTestController) GetStats(ctx *gin.Context) {
	stats, err := c.adminTestService.GetStats(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "GetStats", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(stats))
}
