package repository

import (
	"errors"

	"github.com/grinstore/atendebot/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// SessionRepository 会话进度的键值持久化。
// 注入到引擎中，便于替换内存实现或网络存储。
type SessionRepository interface {
	Get(sessionID string) (*model.Session, error)
	Create(session *model.Session) error
	Save(session *model.Session) error
}

// TranscriptRepository 对话记录的持久化，只追加
type TranscriptRepository interface {
	GetBySession(sessionID string) ([]model.ChatMessage, error)
	Append(messages []*model.ChatMessage) error
}
