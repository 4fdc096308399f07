package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/grinstore/atendebot/internal/flow"
	"k8s.io/klog/v2"
)

const validatorPromptTemplate = "O usuário respondeu '%s' para a pergunta '%s'. " +
	"Verifique se a resposta faz sentido no contexto. " +
	"Se a resposta for válida, diga apenas 'válido'. " +
	"Se não for, explique o conceito da pergunta e forneça exemplos reais."

// SemanticValidator 基于 ChatModel 的答案语义校验器。
// 约定模型对有效答案只回复 'válido'，否则回复解释文本。
type SemanticValidator struct {
	chatModel model.ToolCallingChatModel
}

func NewSemanticValidator(chatModel model.ToolCallingChatModel) *SemanticValidator {
	return &SemanticValidator{chatModel: chatModel}
}

func (v *SemanticValidator) ValidateAnswer(ctx context.Context, question, answer string) (flow.Verdict, error) {
	messages := []*schema.Message{
		schema.UserMessage(fmt.Sprintf(validatorPromptTemplate, answer, question)),
	}

	resp, err := v.chatModel.Generate(ctx, messages)
	if err != nil {
		return flow.Verdict{}, fmt.Errorf("semantic validator request failed: %w", err)
	}

	content := strings.TrimSpace(resp.Content)
	klog.V(6).Infof("[SemanticValidator] pergunta=%q, resposta=%q, veredito=%q", question, answer, content)

	if strings.Contains(strings.ToLower(content), "válido") {
		return flow.Verdict{
			Valid:       true,
			Explanation: fmt.Sprintf("A resposta '%s' é válida.", answer),
		}, nil
	}

	return flow.Verdict{Valid: false, Explanation: content}, nil
}
