package controller

import (
	"question_bank_backend/internal/service"
	"question_bank_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 题目录入
// @Tags 题目
// @Accept json
// @Produce json
// @Param body body service.SubmitQuestionRequest true "题目信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /submit_question [post]
func (c *QuestionController) SubmitQuestion(ctx *gin.Context) {
	var req service.SubmitQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing required fields: "+err.Error())
		return
	}

	q, err := c.Service.SubmitQuestion(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, "Failed to submit question", err)
		return
	}

	util.Created(ctx, gin.H{
		"message":     "Question submitted successfully",
		"question_id": q.ID,
	})
}

// @Summary 题目分类
// @Description 调用分类模型，返回学科、难度、题型和知识点，不修改已存储的题目
// @Tags 题目
// @Accept json
// @Produce json
// @Param body body service.QuestionIDRequest true "题目ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /classify_question [post]
func (c *QuestionController) ClassifyQuestion(ctx *gin.Context) {
	var req service.QuestionIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing question_id")
		return
	}

	result, err := c.Service.ClassifyQuestion(ctx.Request.Context(), req.QuestionID)
	if err != nil {
		util.HandleError(ctx, "Failed to classify question", err)
		return
	}

	util.Success(ctx, gin.H{"classification": result})
}

// @Summary 添加标签
// @Description 用提交的标签整体替换题目原有标签
// @Tags 题目
// @Accept json
// @Produce json
// @Param body body service.TagQuestionRequest true "题目ID和标签"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tag_question [post]
func (c *QuestionController) TagQuestion(ctx *gin.Context) {
	var req service.TagQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing question_id or tags")
		return
	}

	tags, err := c.Service.TagQuestion(ctx.Request.Context(), req.QuestionID, req.Tags)
	if err != nil {
		util.HandleError(ctx, "Failed to add tags", err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "Tags added successfully",
		"tags":    tags,
	})
}

// @Summary 自动生成标签
// @Description 根据题目文本中的关键词生成标签并替换原有标签
// @Tags 题目
// @Accept json
// @Produce json
// @Param body body service.QuestionIDRequest true "题目ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /auto_tag_question [post]
func (c *QuestionController) AutoTagQuestion(ctx *gin.Context) {
	var req service.QuestionIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing question_id")
		return
	}

	tags, err := c.Service.AutoTagQuestion(ctx.Request.Context(), req.QuestionID)
	if err != nil {
		util.HandleError(ctx, "Failed to generate tags", err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "Tags generated successfully",
		"tags":    tags,
	})
}

// @Summary 检索题目
// @Tags 题目
// @Produce json
// @Param question_id query int true "题目ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /get_question [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := util.ParseID(ctx.Query("question_id"))
	if !ok {
		util.BadRequest(ctx, "Missing question_id parameter")
		return
	}

	q, err := c.Service.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, "Failed to retrieve question", err)
		return
	}

	util.Success(ctx, gin.H{"question": q})
}
