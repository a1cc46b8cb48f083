package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 学生获取测验题目
// @Description 返回测验内容，选项不带答案标记
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	resp, err := c.Service.GetQuizForStudent(claims.UserID, quizID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 提交测验答案
// @Description 服务端按实时题目评分，生成一条不可变的评分记录
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizSubmissionRequest true "答案映射"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	result, err := c.Service.SubmitQuiz(claims.UserID, quizID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 我的测验成绩汇总
// @Description 当前学生在该测验上的次数、均分、最高分和最近记录
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/my-summary [get]
func (c *QuizController) MySummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	summary, err := c.Service.MyQuizSummary(claims.UserID, quizID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 新增测验题目
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param body body service.QuestionRequest true "题目内容"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes/{id}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	question, err := c.Service.CreateQuestion(quizID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary 更新测验题目
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body service.QuestionRequest true "题目内容"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questionID := util.MustParseUint(ctx.Param("id"))
	question, err := c.Service.UpdateQuestion(questionID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary 删除测验题目
// @Tags 测验管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Param("id"))
	if err := c.Service.DeleteQuestion(questionID); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": questionID})
}
