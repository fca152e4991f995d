package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/internal/controller"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/service"
)

type CompilerController struct {
	compilerService service.CompilerService
}

func NewCompilerController(cs service.CompilerService) *CompilerController {
	return &CompilerController{compilerService: cs}
}

// Execute godoc
// @Summary Run Python code
// @Description Runs the code in a sandbox with a wall-clock timeout. A failing program still answers 200 with success=false.
// @Tags Compiler
// @Accept json
// @Produce json
// @Param request body dto.ExecuteRequest true "Source code"
// @Success 200 {object} dto.ExecuteResponse
// @Failure 400 {object} dto.ErrorResponse "Code is missing"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /compiler/execute [post]
func (c *CompilerController) Execute(ctx *gin.Context) {
	var req dto.ExecuteRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.compilerService.Execute(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "Execute", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Check godoc
// @Summary Check interpreter availability
// @Tags Compiler
// @Produce json
// @Success 200 {object} dto.CompilerCheckResponse
// @Router /compiler/check [get]
func (c *CompilerController) Check(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.compilerService.Check(ctx.Request.Context()))
}
