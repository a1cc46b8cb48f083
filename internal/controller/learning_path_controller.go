package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

// @Summary 提交学前测评并生成学习路径
// @Description 服务端判分、定级、调用 AI 推荐，持久化一条 NOT_STARTED 路径；
// @Description 同一用户并发重复提交会被拒绝
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PlacementSubmission true "测评答卷"
// @Success 200 {object} util.Response
// @Router /api/assessment/submit [post]
func (c *LearningPathController) SubmitPlacement(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PlacementSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.GenerateFromPlacement(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 我的学习路径
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/learning-paths [get]
func (c *LearningPathController) ListMyPaths(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	paths, err := c.Service.ListMyPaths(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, paths)
}

// @Summary 选修路径中的单门课程
// @Description 课程必须属于该路径；重复选课等价于一次。
// @Description 路径为 NOT_STARTED 时置为 IN_PROGRESS
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径UID"
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/learning-paths/{id}/courses/{courseId}/enroll [post]
func (c *LearningPathController) EnrollCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	pathID := ctx.Param("id")
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if err := c.Service.EnrollCourse(claims.UserID, pathID, courseID); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"enrolled": courseID})
}

// @Summary 一键选修路径全部课程
// @Description 整个操作可重复执行，已选课程直接跳过
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径UID"
// @Success 200 {object} util.Response
// @Router /api/learning-paths/{id}/enroll-all [post]
func (c *LearningPathController) EnrollAll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.EnrollAll(claims.UserID, ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"pathId": ctx.Param("id")})
}
