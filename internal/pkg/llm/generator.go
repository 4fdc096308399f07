package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/grinstore/atendebot/internal/model"
	"k8s.io/klog/v2"
)

// Generator 基于完整对话记录生成助手回复
type Generator struct {
	chatModel einomodel.ToolCallingChatModel
}

func NewGenerator(chatModel einomodel.ToolCallingChatModel) *Generator {
	return &Generator{chatModel: chatModel}
}

func (g *Generator) Generate(ctx context.Context, transcript []model.ChatMessage) (string, error) {
	messages := make([]*schema.Message, 0, len(transcript))
	for _, entry := range transcript {
		converted, err := toSchemaMessage(entry)
		if err != nil {
			return "", err
		}
		messages = append(messages, converted)
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat generation request failed: %w", err)
	}

	klog.V(6).Infof("[Generator] messageCount=%d, replyLength=%d", len(messages), len(resp.Content))
	return resp.Content, nil
}

// toSchemaMessage 把落库的消息角色映射为 eino 的消息表示，映射只在此边界发生
func toSchemaMessage(entry model.ChatMessage) (*schema.Message, error) {
	switch entry.Role {
	case model.RoleSystem:
		return schema.SystemMessage(entry.Content), nil
	case model.RoleUser:
		return schema.UserMessage(entry.Content), nil
	case model.RoleAssistant:
		return &schema.Message{Role: schema.Assistant, Content: entry.Content}, nil
	default:
		return nil, fmt.Errorf("unknown chat role: %s", entry.Role)
	}
}
