package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/grinstore/atendebot/internal/flow"
	"k8s.io/klog/v2"
)

const classifierSystemPrompt = "Você é o roteador de intenções do atendimento da Grinstore. " +
	"Classifique a pergunta do usuário e retorne um JSON com 'destination' sendo uma das opções: " +
	"'emprego', 'pedido', 'servicos' ou 'resposta'. " +
	"Use 'resposta' quando a pergunta for aberta e não se encaixar nas demais. " +
	"Retorne apenas o JSON."

// Classifier 基于 ChatModel 的查询分类器
type Classifier struct {
	chatModel model.ToolCallingChatModel
}

func NewClassifier(chatModel model.ToolCallingChatModel) *Classifier {
	return &Classifier{chatModel: chatModel}
}

func (c *Classifier) Classify(ctx context.Context, query string) (flow.Destination, error) {
	messages := []*schema.Message{
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(fmt.Sprintf("Classifique a seguinte pergunta: '%s'", query)),
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("classifier request failed: %w", err)
	}

	var verdict struct {
		Destination string `json:"destination"`
	}
	if err := decodeJSON(resp.Content, &verdict); err != nil {
		return "", fmt.Errorf("classifier returned malformed verdict: %w", err)
	}

	destination, ok := flow.ParseDestination(verdict.Destination)
	if !ok {
		return "", fmt.Errorf("classifier returned unexpected destination: %q", verdict.Destination)
	}

	klog.V(6).Infof("[Classifier] destination=%s", destination)
	return destination, nil
}
