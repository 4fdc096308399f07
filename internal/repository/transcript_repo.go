package repository

import (
	"github.com/grinstore/atendebot/internal/model"
	"gorm.io/gorm"
)

type transcriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) TranscriptRepository {
	return &transcriptRepository{db: db}
}

func (r *transcriptRepository) GetBySession(sessionID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.Where("session_id = ?", sessionID).Order("seq").Find(&messages).Error
	return messages, err
}

// Append 批量追加消息，一次落库
func (r *transcriptRepository) Append(messages []*model.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.Create(messages).Error
}
