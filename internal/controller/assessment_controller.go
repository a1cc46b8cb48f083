package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
	AI      *service.AIService
}

func NewAssessmentController(svc *service.AssessmentService, ai *service.AIService) *AssessmentController {
	return &AssessmentController{Service: svc, AI: ai}
}

// @Summary 知识点列表
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/assessment/topics [get]
func (c *AssessmentController) ListTopics(ctx *gin.Context) {
	topics, err := c.Service.ListTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// @Summary 随机抽取测评题
// @Description 从指定知识点的题池里无放回随机抽取，题池不足时返回全部
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param topicId query int true "知识点ID"
// @Param count query int false "抽取数量" default(5)
// @Success 200 {object} util.Response
// @Router /api/assessment/questions [get]
func (c *AssessmentController) RandomQuestions(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Query("topicId"))
	count := util.ParseIntDefault(ctx.Query("count"), 5)

	questions, err := c.Service.RandomQuestions(topicID, count)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

type FeedbackRequest struct {
	Question    string `json:"question" binding:"required"`
	QuestionUID string `json:"questionUid"`
}

// @Summary 单题 AI 讲解
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FeedbackRequest true "题目内容"
// @Success 200 {object} util.Response
// @Router /api/assessment/feedback [post]
func (c *AssessmentController) QuestionFeedback(ctx *gin.Context) {
	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.AI.QuestionFeedback(ctx.Request.Context(), req.Question, req.QuestionUID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"feedback": feedback})
}

// @Summary 新增知识点
// @Tags 测评管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TopicRequest true "知识点"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessment/topics [post]
func (c *AssessmentController) CreateTopic(ctx *gin.Context) {
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.Service.CreateTopic(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, topic)
}

// @Summary 新增测评题
// @Tags 测评管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentQuestionRequest true "题目内容"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessment/questions [post]
func (c *AssessmentController) CreateQuestion(ctx *gin.Context) {
	var req service.AssessmentQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.CreateQuestion(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary 测评题详情
// @Tags 测评管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessment/questions/{id} [get]
func (c *AssessmentController) GetQuestion(ctx *gin.Context) {
	question, err := c.Service.GetQuestion(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary 删除测评题
// @Tags 测评管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessment/questions/{id} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.Service.DeleteQuestion(id); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
