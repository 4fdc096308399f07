package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grinstore/atendebot/internal/flow"
	"github.com/grinstore/atendebot/internal/service"
)

type ClassifyHandler struct {
	service *service.ClassifyService
}

func NewClassifyHandler(service *service.ClassifyService) *ClassifyHandler {
	return &ClassifyHandler{service: service}
}

type classifyRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// Classify 处理 POST /classificar
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Classify(c.Request.Context(), req.SessionID, req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch result.Destination {
	case flow.DestinationServicos:
		c.JSON(http.StatusOK, gin.H{
			"destination":   result.Destination,
			"next_question": result.NextQuestion,
			"field":         result.Field,
		})
	case flow.DestinationResposta:
		resp := gin.H{
			"destination": result.Destination,
			"answer":      result.Answer,
		}
		if result.FollowUp != "" {
			resp["next_question"] = result.FollowUp
		}
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusOK, gin.H{
			"destination": result.Destination,
			"message":     result.Message,
		})
	}
}
