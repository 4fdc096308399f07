package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/grinstore/atendebot/config"
	"k8s.io/klog/v2"
)

// NewChatModel 创建 LLM ChatModel
// 返回: 实现了 model.ToolCallingChatModel 接口的实例
func NewChatModel(cfg *config.Config) (model.ToolCallingChatModel, error) {
	modelConfig := &openai.ChatModelConfig{
		BaseURL:   cfg.LLM.APIURL,
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: &cfg.LLM.MaxTokens,
	}

	chatModel, err := openai.NewChatModel(context.Background(), modelConfig)
	if err != nil {
		klog.Errorf("[ChatModel] 创建 ChatModel 失败: %v", err)
		return nil, err
	}

	klog.V(6).Infof("[ChatModel] ChatModel 创建成功: model=%s", cfg.LLM.Model)
	return chatModel, nil
}
