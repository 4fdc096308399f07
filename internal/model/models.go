package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AnswerMap 已采集的字段答案，按 field key 索引。
// 以 JSON 文本落库，兼容 sqlite 与 mysql。
type AnswerMap map[string]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported answer map source type: %T", value)
	}
	if len(data) == 0 {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Session 服务咨询流程的会话进度
type Session struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SessionID    string    `json:"session_id" gorm:"size:64;uniqueIndex;not null"`
	Destination  string    `json:"destination" gorm:"size:32;not null"` // emprego, pedido, servicos, resposta
	CurrentIndex int       `json:"current_index" gorm:"default:0"`      // 下一个待采集字段在 schema 中的下标
	Answers      AnswerMap `json:"answers" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatRole 对话消息角色，入库前在边界处收敛为封闭枚举
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage 开放对话的单条消息。
// (SessionID, Seq) 共同决定顺序，只追加不修改。
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"session_id" gorm:"size:64;index;not null"`
	Seq       int       `json:"seq" gorm:"not null"`
	Role      ChatRole  `json:"role" gorm:"size:16;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
