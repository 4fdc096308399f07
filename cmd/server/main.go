package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/grinstore/atendebot/config"
	"github.com/grinstore/atendebot/internal/flow"
	"github.com/grinstore/atendebot/internal/handler"
	"github.com/grinstore/atendebot/internal/pkg/database"
	"github.com/grinstore/atendebot/internal/pkg/llm"
	"github.com/grinstore/atendebot/internal/repository"
	"github.com/grinstore/atendebot/internal/router"
	"github.com/grinstore/atendebot/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("serviço iniciando...")

	cfg := config.GetConfig()

	if cfg.LLM.APIKey == "" {
		log.Fatal("OPENAI_API_KEY não encontrada")
	}

	if cfg.Database.Type != "mysql" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// LLM 协作方共用一个 ChatModel
	chatModel, err := llm.NewChatModel(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize chat model: %v", err)
	}
	classifier := llm.NewClassifier(chatModel)
	semanticValidator := llm.NewSemanticValidator(chatModel)
	responder := llm.NewResponder(chatModel)
	generator := llm.NewGenerator(chatModel)

	// 初始化 Repository
	sessionRepo := repository.NewSessionRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)

	// 初始化 Service
	validator := flow.NewValidator(semanticValidator)
	sessionService := service.NewSessionService(sessionRepo, flow.ServicesSchema, validator)
	classifyService := service.NewClassifyService(classifier, responder, sessionService)
	chatService := service.NewChatService(transcriptRepo, generator)

	// 初始化 Handler
	classifyHandler := handler.NewClassifyHandler(classifyService)
	answerHandler := handler.NewAnswerHandler(sessionService)
	chatHandler := handler.NewChatHandler(chatService)

	// 设置路由
	r := router.Setup(cfg, classifyHandler, answerHandler, chatHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
