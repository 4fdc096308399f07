package service

import (
	"context"
	"fmt"

	"github.com/grinstore/atendebot/internal/model"
	"github.com/grinstore/atendebot/internal/repository"
	"k8s.io/klog/v2"
)

const chatSystemPrompt = "Você é o assistente virtual da Grinstore, uma agência de e-commerce. " +
	"Responda de forma clara e objetiva, em português."

// ChatService 开放对话：加载记录、追加用户消息、生成回复、整批落库。
// 无校验、无状态机，每次调用恰好一次生成请求和一次持久化写入。
type ChatService struct {
	transcripts repository.TranscriptRepository
	generator   Generator
}

func NewChatService(transcripts repository.TranscriptRepository, generator Generator) *ChatService {
	return &ChatService{
		transcripts: transcripts,
		generator:   generator,
	}
}

// AppendTurn 追加一轮对话并返回助手回复。
// 记录不存在时以 system 消息初始化，随本轮一起写入。
func (s *ChatService) AppendTurn(ctx context.Context, sessionID, userMessage string) (string, error) {
	history, err := s.transcripts.GetBySession(sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load transcript: %w", err)
	}

	var pending []*model.ChatMessage
	if len(history) == 0 {
		pending = append(pending, &model.ChatMessage{
			SessionID: sessionID,
			Seq:       0,
			Role:      model.RoleSystem,
			Content:   chatSystemPrompt,
		})
		history = append(history, *pending[0])
	}

	userEntry := &model.ChatMessage{
		SessionID: sessionID,
		Seq:       len(history),
		Role:      model.RoleUser,
		Content:   userMessage,
	}
	pending = append(pending, userEntry)
	history = append(history, *userEntry)

	reply, err := s.generator.Generate(ctx, history)
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	pending = append(pending, &model.ChatMessage{
		SessionID: sessionID,
		Seq:       len(history),
		Role:      model.RoleAssistant,
		Content:   reply,
	})

	if err := s.transcripts.Append(pending); err != nil {
		return "", fmt.Errorf("failed to persist transcript: %w", err)
	}

	klog.V(6).Infof("turno de chat registrado: session_id=%s, mensagens=%d", sessionID, len(history)+1)
	return reply, nil
}
