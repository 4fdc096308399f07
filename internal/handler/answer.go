package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grinstore/atendebot/internal/service"
)

type AnswerHandler struct {
	sessions *service.SessionService
}

func NewAnswerHandler(sessions *service.SessionService) *AnswerHandler {
	return &AnswerHandler{sessions: sessions}
}

type answerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Field     string `json:"field" binding:"required"`
	// Answer 允许为空串，空答案由校验策略处理
	Answer string `json:"answer"`
}

// SubmitAnswer 处理 POST /responder。
// 可恢复的结果（字段不匹配、校验拒绝）返回 200 并告知如何重发；
// 会话缺失和未知字段是客户端错误，协作方失败是服务端错误。
func (h *AnswerHandler) SubmitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessions.SubmitAnswer(c.Request.Context(), req.SessionID, req.Field, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sessão não encontrada. Inicie com /classificar."})
		case errors.Is(err, service.ErrWrongFlow):
			c.JSON(http.StatusOK, gin.H{"message": "Esta sessão não está em coleta de informações. Use /chat ou reclassifique com /classificar."})
		case errors.Is(err, service.ErrUnknownField):
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Campo '%s' não reconhecido.", req.Field)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	switch result.Status {
	case service.AnswerMismatch:
		c.JSON(http.StatusOK, gin.H{
			"message":       result.Message,
			"next_question": result.NextQuestion,
			"field":         result.Field,
		})
	case service.AnswerRejected:
		c.JSON(http.StatusOK, gin.H{
			"message":       result.Message,
			"explanation":   result.Explanation,
			"next_question": result.NextQuestion,
			"field":         result.Field,
		})
	case service.AnswerAccepted:
		c.JSON(http.StatusOK, gin.H{
			"message":         result.Message,
			"explanation":     result.Explanation,
			"next_question":   result.NextQuestion,
			"field":           result.Field,
			"dados_coletados": result.Collected,
		})
	default: // AnswerComplete
		c.JSON(http.StatusOK, gin.H{
			"message":         result.Message,
			"dados_coletados": result.Collected,
		})
	}
}
