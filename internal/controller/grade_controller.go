package controller

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	Service *service.GradeService
}

func NewGradeController(svc *service.GradeService) *GradeController {
	return &GradeController{Service: svc}
}

func (c *GradeController) authorize(ctx *gin.Context, courseID uint) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	isAdmin := claims.Role == model.Admin
	if err := c.Service.AuthorizeCourseTeacher(claims.UserID, courseID, isAdmin); err != nil {
		util.FromError(ctx, err)
		return false
	}
	return true
}

// @Summary 课程成绩花名册
// @Description 每个选课学生一行，跨测验合并汇总，按选课时间倒序
// @Tags 成绩
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/roster [get]
func (c *GradeController) CourseRoster(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if !c.authorize(ctx, courseID) {
		return
	}

	rows, err := c.Service.CourseRoster(courseID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// @Summary 单个学生的课程成绩明细
// @Description 按测验分组汇总该学生在本课程的全部评分记录，无记录的测验不出现
// @Tags 成绩
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/students/{studentId}/grades [get]
func (c *GradeController) StudentCourseDetail(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if !c.authorize(ctx, courseID) {
		return
	}

	studentID := util.MustParseUint(ctx.Param("studentId"))
	rows, err := c.Service.StudentCourseDetail(courseID, studentID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
