package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/grinstore/atendebot/internal/flow"
	"github.com/grinstore/atendebot/internal/model"
	"github.com/grinstore/atendebot/internal/repository"
	"github.com/grinstore/atendebot/internal/service"
	"gorm.io/gorm"
)

type mockClassifier struct {
	destination flow.Destination
	err         error
}

func (m *mockClassifier) Classify(ctx context.Context, query string) (flow.Destination, error) {
	return m.destination, m.err
}

type mockResponder struct {
	answer *service.DirectAnswer
	err    error
}

func (m *mockResponder) Respond(ctx context.Context, query string) (*service.DirectAnswer, error) {
	return m.answer, m.err
}

type mockSemantic struct {
	verdict flow.Verdict
	err     error
}

func (m *mockSemantic) ValidateAnswer(ctx context.Context, question, answer string) (flow.Verdict, error) {
	return m.verdict, m.err
}

type mockGenerator struct {
	reply string
	err   error
}

func (m *mockGenerator) Generate(ctx context.Context, transcript []model.ChatMessage) (string, error) {
	return m.reply, m.err
}

type testEnv struct {
	router *gin.Engine
}

func setupEnv(t *testing.T, classifier service.Classifier, responder service.Responder, semantic flow.SemanticValidator, generator service.Generator) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Session{}, &model.ChatMessage{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sessions := service.NewSessionService(repository.NewSessionRepository(db), flow.ServicesSchema, flow.NewValidator(semantic))
	classify := service.NewClassifyService(classifier, responder, sessions)
	chat := service.NewChatService(repository.NewTranscriptRepository(db), generator)

	r := gin.New()
	r.POST("/classificar", NewClassifyHandler(classify).Classify)
	r.POST("/responder", NewAnswerHandler(sessions).SubmitAnswer)
	r.POST("/chat", NewChatHandler(chat).Chat)

	return &testEnv{router: r}
}

func (e *testEnv) post(t *testing.T, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %v (body=%s)", err, w.Body.String())
	}
	return w.Code, parsed
}

func TestClassificar_Servicos(t *testing.T) {
	env := setupEnv(t, &mockClassifier{destination: flow.DestinationServicos}, &mockResponder{}, &mockSemantic{}, &mockGenerator{})

	code, body := env.post(t, "/classificar", gin.H{
		"query":      "Quero contratar um serviço da Grinstore.",
		"session_id": "teste-1234",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["destination"] != "servicos" {
		t.Errorf("expected destination servicos, got %v", body["destination"])
	}
	if body["next_question"] != "Atendimento (B2C ou B2B)" {
		t.Errorf("unexpected first question: %v", body["next_question"])
	}
	if body["field"] != "tipo" {
		t.Errorf("expected field tipo, got %v", body["field"])
	}
}

func TestClassificar_Resposta(t *testing.T) {
	env := setupEnv(t, &mockClassifier{destination: flow.DestinationResposta}, &mockResponder{
		answer: &service.DirectAnswer{Answer: "Integramos lojas com ERPs.", FollowUp: "Quer um orçamento?"},
	}, &mockSemantic{}, &mockGenerator{})

	code, body := env.post(t, "/classificar", gin.H{"query": "O que vocês fazem?", "session_id": "s1"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["answer"] != "Integramos lojas com ERPs." {
		t.Errorf("unexpected answer: %v", body["answer"])
	}
	if body["next_question"] != "Quer um orçamento?" {
		t.Errorf("unexpected follow-up: %v", body["next_question"])
	}
}

func TestClassificar_MissingFields(t *testing.T) {
	env := setupEnv(t, &mockClassifier{destination: flow.DestinationServicos}, &mockResponder{}, &mockSemantic{}, &mockGenerator{})

	code, _ := env.post(t, "/classificar", gin.H{"query": "oi"})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing session_id, got %d", code)
	}
}

func TestResponder_FullFlow(t *testing.T) {
	env := setupEnv(t, &mockClassifier{destination: flow.DestinationServicos}, &mockResponder{}, &mockSemantic{
		verdict: flow.Verdict{Valid: true, Explanation: "A resposta 'R$ 150' é válida."},
	}, &mockGenerator{})

	code, _ := env.post(t, "/classificar", gin.H{"query": "Quero contratar um serviço.", "session_id": "s1"})
	if code != http.StatusOK {
		t.Fatalf("classify failed: %d", code)
	}

	// resposta aceita avança para o próximo campo
	code, body := env.post(t, "/responder", gin.H{"session_id": "s1", "field": "tipo", "answer": "B2C"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["field"] != "erp" {
		t.Errorf("expected next field erp, got %v", body["field"])
	}
	collected, ok := body["dados_coletados"].(map[string]interface{})
	if !ok || collected["tipo"] != "B2C" {
		t.Errorf("unexpected dados_coletados: %v", body["dados_coletados"])
	}

	code, body = env.post(t, "/responder", gin.H{"session_id": "s1", "field": "erp", "answer": "Tiny"})
	if code != http.StatusOK || body["field"] != "pedidos_mes" {
		t.Fatalf("expected progress to pedidos_mes, got code=%d body=%v", code, body)
	}

	// envio fora de ordem: estado preservado, campo esperado informado
	code, body = env.post(t, "/responder", gin.H{"session_id": "s1", "field": "contato", "answer": "a@b.com"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["field"] != "pedidos_mes" {
		t.Errorf("mismatch should report expected field pedidos_mes, got %v", body["field"])
	}
	if _, hasData := body["dados_coletados"]; hasData {
		t.Errorf("mismatch response should not carry dados_coletados")
	}

	// rejeição devolve explicação e repete a pergunta
	code, body = env.post(t, "/responder", gin.H{"session_id": "s1", "field": "pedidos_mes", "answer": "muitos"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["explanation"] == nil || body["field"] != "pedidos_mes" {
		t.Errorf("unexpected rejection body: %v", body)
	}

	// conclui o fluxo
	rest := []gin.H{
		{"session_id": "s1", "field": "pedidos_mes", "answer": "120"},
		{"session_id": "s1", "field": "ticket_medio", "answer": "R$ 150"},
		{"session_id": "s1", "field": "sku", "answer": "300"},
		{"session_id": "s1", "field": "contato", "answer": "a@b.com"},
	}
	for _, reqBody := range rest {
		code, body = env.post(t, "/responder", reqBody)
		if code != http.StatusOK {
			t.Fatalf("expected 200 for %v, got %d", reqBody, code)
		}
	}
	collected, ok = body["dados_coletados"].(map[string]interface{})
	if !ok || len(collected) != 6 {
		t.Fatalf("expected 6 collected answers, got %v", body["dados_coletados"])
	}
	if _, hasNext := body["next_question"]; hasNext {
		t.Errorf("completion should not carry next_question")
	}
}

func TestResponder_SessionNotFound(t *testing.T) {
	env := setupEnv(t, &mockClassifier{}, &mockResponder{}, &mockSemantic{}, &mockGenerator{})

	code, body := env.post(t, "/responder", gin.H{"session_id": "missing", "field": "tipo", "answer": "B2C"})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	if body["error"] == nil {
		t.Errorf("expected error message, got %v", body)
	}
}

func TestResponder_UnknownField(t *testing.T) {
	env := setupEnv(t, &mockClassifier{destination: flow.DestinationServicos}, &mockResponder{}, &mockSemantic{}, &mockGenerator{})
	env.post(t, "/classificar", gin.H{"query": "serviços", "session_id": "s1"})

	code, _ := env.post(t, "/responder", gin.H{"session_id": "s1", "field": "cnpj", "answer": "x"})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", code)
	}
}

func TestChat_MintsSessionID(t *testing.T) {
	env := setupEnv(t, &mockClassifier{}, &mockResponder{}, &mockSemantic{}, &mockGenerator{reply: "Olá!"})

	code, body := env.post(t, "/chat", gin.H{"user_message": "oi"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["message"] != "Olá!" {
		t.Errorf("unexpected reply: %v", body["message"])
	}
	sessionID, _ := body["session_id"].(string)
	if sessionID == "" {
		t.Errorf("expected minted session_id")
	}
}

func TestChat_KeepsProvidedSessionID(t *testing.T) {
	env := setupEnv(t, &mockClassifier{}, &mockResponder{}, &mockSemantic{}, &mockGenerator{reply: "Olá!"})

	code, body := env.post(t, "/chat", gin.H{"session_id": "chat-1", "user_message": "oi"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["session_id"] != "chat-1" {
		t.Errorf("expected session_id chat-1, got %v", body["session_id"])
	}
}
