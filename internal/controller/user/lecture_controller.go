package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/internal/controller"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/service"
)

type LectureController struct {
	lectureService service.LectureService
}

func NewLectureController(ls service.LectureService) *LectureController {
	return &LectureController{lectureService: ls}
}

// GetAllLectures godoc
// @Summary List lectures
// @Tags Lectures
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.LectureDTO}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures [get]
func (c *LectureController) GetAllLectures(ctx *gin.Context) {
	lectures, err := c.lectureService.GetAllLectures(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "GetAllLectures", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(lectures))
}

// GetLecture godoc
// @Summary Get a lecture
// @Tags Lectures
// @Produce json
// @Param lecture_id path int true "Lecture ID"
// @Success 200 {object} dto.Response{data=dto.LectureDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid Lecture ID format"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Router /lectures/{lecture_id} [get]
func (c *LectureController) GetLecture(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "lecture_id")
	if !ok {
		return
	}
	lecture, err := c.lectureService.GetLecture(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, "GetLecture", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(lecture))
}
