package service

import (
	"context"

	"github.com/grinstore/atendebot/internal/flow"
	"github.com/grinstore/atendebot/internal/model"
)

// Classifier 外部查询分类器，把自由文本映射为一个 Destination
type Classifier interface {
	Classify(ctx context.Context, query string) (flow.Destination, error)
}

// DirectAnswer 兜底回答结果，FollowUp 可为空
type DirectAnswer struct {
	Answer   string
	FollowUp string
}

// Responder 开放问题的兜底回答器
type Responder interface {
	Respond(ctx context.Context, query string) (*DirectAnswer, error)
}

// Generator 基于完整对话记录生成助手回复
type Generator interface {
	Generate(ctx context.Context, transcript []model.ChatMessage) (string, error)
}
