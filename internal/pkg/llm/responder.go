package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/grinstore/atendebot/internal/service"
	"k8s.io/klog/v2"
)

const responderSystemPrompt = "Você responde perguntas abertas sobre a Grinstore, uma agência de e-commerce. " +
	"Responda em português e retorne um JSON com 'answer' (sua resposta) e, " +
	"quando fizer sentido continuar a conversa, 'next_question' com uma pergunta de follow-up. " +
	"Retorne apenas o JSON."

// Responder 开放问题的兜底回答器，回答附带可选的 follow-up 提问
type Responder struct {
	chatModel model.ToolCallingChatModel
}

func NewResponder(chatModel model.ToolCallingChatModel) *Responder {
	return &Responder{chatModel: chatModel}
}

func (r *Responder) Respond(ctx context.Context, query string) (*service.DirectAnswer, error) {
	messages := []*schema.Message{
		schema.SystemMessage(responderSystemPrompt),
		schema.UserMessage(query),
	}

	resp, err := r.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("responder request failed: %w", err)
	}

	var parsed struct {
		Answer       string `json:"answer"`
		NextQuestion string `json:"next_question"`
	}
	if err := decodeJSON(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("responder returned malformed output: %w", err)
	}
	if parsed.Answer == "" {
		return nil, fmt.Errorf("responder returned empty answer")
	}

	klog.V(6).Infof("[Responder] answerLength=%d, followUp=%q", len(parsed.Answer), parsed.NextQuestion)
	return &service.DirectAnswer{
		Answer:   parsed.Answer,
		FollowUp: parsed.NextQuestion,
	}, nil
}
