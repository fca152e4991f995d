package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/internal/controller"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/service"
)

type AdminLectureController struct {
	lectureService service.LectureService
}

func NewAdminLectureController(ls service.LectureService) *AdminLectureController {
	return &AdminLectureController{lectureService: ls}
}

// CreateLecture godoc
// @Summary (Admin) Create a lecture
// @Tags Admin - Lectures
// @Accept json
// @Produce json
// @Security AdminToken
// @Param lecture body dto.LectureCreateDTO true "Lecture"
// @Success 201 {object} dto.Response{data=dto.LectureDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Router /admin/lectures [post]
func (c *AdminLectureController) CreateLecture(ctx *gin.Context) {
	var req dto.LectureCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	lecture, err := c.lectureService.CreateLecture(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "CreateLecture", err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.OKWithMessage(lecture, "Lecture created"))
}

// UpdateLecture godoc
// @Summary (Admin) Update a lecture
// @Description Partial update. Absent fields are left untouched.
// @Tags Admin - Lectures
// @Accept json
// @Produce json
// @Security AdminToken
// @Param lecture_id path int true "Lecture ID"
// @Param lecture body dto.LectureUpdateDTO true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.LectureDTO}
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Router /admin/lectures/{lecture_id} [put]
func (c *AdminLectureController) UpdateLecture(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "lecture_id")
	if !ok {
		return
	}
	var req dto.LectureUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	lecture, err := c.lectureService.UpdateLecture(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, "UpdateLecture", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(lecture, "Lecture updated"))
}

// DeleteLecture godoc
// @Summary (Admin) Delete a lecture
// @Tags Admin - Lectures
// @Produce json
// @Security AdminToken
// @Param lecture_id path int true "Lecture ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Router /admin/lectures/{lecture_id} [delete]
func (c *AdminLectureController) DeleteLecture(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "lecture_id")
	if !ok {
		return
	}
	if err := c.lectureService.DeleteLecture(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, "DeleteLecture", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKWithMessage(nil, "Lecture deleted"))
}
