package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/grinstore/atendebot/internal/flow"
	"github.com/grinstore/atendebot/internal/model"
	"github.com/grinstore/atendebot/internal/repository"
	"k8s.io/klog/v2"
)

var (
	// ErrSessionNotFound 会话不存在，调用方需先经 /classificar 建立会话
	ErrSessionNotFound = errors.New("session not found")
	// ErrWrongFlow 会话不在服务采集流程中
	ErrWrongFlow = errors.New("session is not in the services flow")
	// ErrUnknownField 字段标识在 schema 中不存在
	ErrUnknownField = errors.New("unknown field")
)

// AnswerStatus 一次答案提交的结果类别
type AnswerStatus string

const (
	AnswerMismatch AnswerStatus = "mismatch" // 提交的字段不是当前待采集字段
	AnswerRejected AnswerStatus = "rejected" // 校验未通过，重问同一字段
	AnswerAccepted AnswerStatus = "accepted" // 已接受，还有后续字段
	AnswerComplete AnswerStatus = "complete" // 全部字段已采集
)

// AnswerResult 答案提交的结构化结果。
// NextQuestion/Field 在 mismatch/rejected/accepted 时指向当前期望的字段。
type AnswerResult struct {
	Status       AnswerStatus
	Message      string
	Explanation  string
	NextQuestion string
	Field        string
	Collected    model.AnswerMap
}

// SessionService 逐字段采集引擎。
// 持有 schema 与校验分发器，会话进度经 repository 持久化。
// 同一 session 的提交经互斥锁串行化，load-validate-store 整体原子。
type SessionService struct {
	repo      repository.SessionRepository
	schema    *flow.Schema
	validator *flow.Validator

	locks sync.Map // session_id -> *sync.Mutex
}

func NewSessionService(repo repository.SessionRepository, schema *flow.Schema, validator *flow.Validator) *SessionService {
	return &SessionService{
		repo:      repo,
		schema:    schema,
		validator: validator,
	}
}

func (s *SessionService) lock(sessionID string) func() {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Start 建立（或重置）一个服务采集会话，返回第一个待采集字段。
// 重复分类同一 session_id 时进度清零，与原有行为一致。
func (s *SessionService) Start(ctx context.Context, sessionID string) (flow.Field, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.repo.Get(sessionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		session = &model.Session{
			SessionID:   sessionID,
			Destination: string(flow.DestinationServicos),
			Answers:     model.AnswerMap{},
		}
		if err := s.repo.Create(session); err != nil {
			return flow.Field{}, fmt.Errorf("failed to create session: %w", err)
		}
	case err != nil:
		return flow.Field{}, fmt.Errorf("failed to load session: %w", err)
	default:
		session.Destination = string(flow.DestinationServicos)
		session.CurrentIndex = 0
		session.Answers = model.AnswerMap{}
		if err := s.repo.Save(session); err != nil {
			return flow.Field{}, fmt.Errorf("failed to reset session: %w", err)
		}
	}

	klog.V(6).Infof("sessão de serviços iniciada: session_id=%s", sessionID)
	return s.schema.At(0), nil
}

// SubmitAnswer 提交当前字段的答案并推进会话。
// 可恢复的结果（mismatch/rejected 等）以 AnswerResult 返回；
// ErrSessionNotFound / ErrWrongFlow / ErrUnknownField 及协作方失败以 error 返回。
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID, fieldKey, answer string) (*AnswerResult, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.repo.Get(sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Destination != string(flow.DestinationServicos) {
		return nil, ErrWrongFlow
	}

	// 终态：只汇报已采集数据，不再校验、不再推进
	if session.CurrentIndex >= s.schema.Len() {
		return &AnswerResult{
			Status:    AnswerComplete,
			Message:   "✅ Todas as informações foram coletadas!",
			Collected: session.Answers,
		}, nil
	}

	if _, _, ok := s.schema.Lookup(fieldKey); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldKey)
	}

	expected := s.schema.At(session.CurrentIndex)
	if fieldKey != expected.Key {
		klog.V(6).Infof("campo fora de ordem: session_id=%s, recebido=%s, esperado=%s",
			sessionID, fieldKey, expected.Key)
		return &AnswerResult{
			Status:       AnswerMismatch,
			Message:      fmt.Sprintf("O campo esperado agora é '%s'.", expected.Key),
			NextQuestion: expected.Question,
			Field:        expected.Key,
		}, nil
	}

	verdict, err := s.validator.Validate(ctx, expected.Question, answer, expected.Policy)
	if err != nil {
		return nil, fmt.Errorf("validation of field %s failed: %w", fieldKey, err)
	}

	if !verdict.Valid {
		return &AnswerResult{
			Status:       AnswerRejected,
			Message:      fmt.Sprintf("⚠️ '%s' pode não estar correto.", answer),
			Explanation:  verdict.Explanation,
			NextQuestion: expected.Question,
			Field:        expected.Key,
		}, nil
	}

	if session.Answers == nil {
		session.Answers = model.AnswerMap{}
	}
	session.Answers[expected.Key] = answer
	session.CurrentIndex++
	if err := s.repo.Save(session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	klog.V(6).Infof("resposta aceita: session_id=%s, campo=%s, progresso=%d/%d",
		sessionID, expected.Key, session.CurrentIndex, s.schema.Len())

	if session.CurrentIndex < s.schema.Len() {
		next := s.schema.At(session.CurrentIndex)
		return &AnswerResult{
			Status:       AnswerAccepted,
			Message:      "✅ Resposta aceita!",
			Explanation:  verdict.Explanation,
			NextQuestion: next.Question,
			Field:        next.Key,
			Collected:    session.Answers,
		}, nil
	}

	return &AnswerResult{
		Status:    AnswerComplete,
		Message:   "✅ Todas as informações foram coletadas!",
		Collected: session.Answers,
	}, nil
}
