package service

import (
	"context"
	"fmt"

	"github.com/grinstore/atendebot/internal/flow"
	"k8s.io/klog/v2"
)

// 固定引导文案，emprego/pedido 不建立会话
var guidanceMessages = map[flow.Destination]string{
	flow.DestinationEmprego: "Oi! Que bom que você quer fazer parte do time! Envie seu currículo para rh@grinstore.com.br.",
	flow.DestinationPedido:  "A Grinstore não realiza entregas. Tente contato com a loja onde fez a compra.",
}

// ClassifyResult 分类结果。
// servicos: NextQuestion/Field 指向第一个待采集字段；
// resposta: Answer/FollowUp 来自兜底回答器；
// 其余: Message 为固定引导文案。
type ClassifyResult struct {
	Destination  flow.Destination
	NextQuestion string
	Field        string
	Answer       string
	FollowUp     string
	Message      string
}

// ClassifyService 意图路由：分类查询并按目的地分发
type ClassifyService struct {
	classifier Classifier
	responder  Responder
	sessions   *SessionService
}

func NewClassifyService(classifier Classifier, responder Responder, sessions *SessionService) *ClassifyService {
	return &ClassifyService{
		classifier: classifier,
		responder:  responder,
		sessions:   sessions,
	}
}

// Classify 对查询分类。servicos 建立采集会话，resposta 转兜底回答器，
// 其余目的地仅返回标签加固定文案。协作方失败原样上抛，不重试。
func (s *ClassifyService) Classify(ctx context.Context, sessionID, query string) (*ClassifyResult, error) {
	destination, err := s.classifier.Classify(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query classification failed: %w", err)
	}
	klog.V(6).Infof("consulta classificada: session_id=%s, destination=%s", sessionID, destination)

	switch destination {
	case flow.DestinationServicos:
		first, err := s.sessions.Start(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &ClassifyResult{
			Destination:  destination,
			NextQuestion: first.Question,
			Field:        first.Key,
		}, nil

	case flow.DestinationResposta:
		direct, err := s.responder.Respond(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fallback responder failed: %w", err)
		}
		return &ClassifyResult{
			Destination: destination,
			Answer:      direct.Answer,
			FollowUp:    direct.FollowUp,
		}, nil

	default:
		return &ClassifyResult{
			Destination: destination,
			Message:     guidanceMessages[destination],
		}, nil
	}
}
