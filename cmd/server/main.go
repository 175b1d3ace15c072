package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yangwenmai/minutes/internal/api"
	"github.com/yangwenmai/minutes/internal/config"
	"github.com/yangwenmai/minutes/internal/engine"
	"github.com/yangwenmai/minutes/internal/session"
	"github.com/yangwenmai/minutes/internal/store"
	"github.com/yangwenmai/minutes/internal/transcribe"
	"github.com/yangwenmai/minutes/internal/worker"
)

func main() {
	cfg := config.Load()

	// Open the SQLite export archive.
	db, err := store.OpenSQLite(cfg.ArchivePath)
	if err != nil {
		log.Fatalf("open archive db: %v", err)
	}
	defer db.Close()

	archive, err := store.New(db)
	if err != nil {
		log.Fatalf("init archive: %v", err)
	}

	// Sessions live in memory only; the archive keeps exported summaries.
	registry := session.NewRegistry()

	transcriber := transcribe.NewClient(cfg.WhisperURL,
		transcribe.WithTimeout(cfg.WhisperTimeout))

	var modelClient engine.ModelClient
	if cfg.UseStub() {
		log.Println("GENERATOR_COMMAND=stub, using stub model client")
		modelClient = &engine.StubModelClient{}
	} else {
		log.Printf("using generator command %v", cfg.GeneratorCommand)
		modelClient = engine.NewCLIClient(cfg.GeneratorCommand,
			engine.WithCLITimeout(cfg.GeneratorTimeout))
	}

	var summaryOpts []engine.SummaryOption
	if cfg.SummaryTemplate != "" {
		summaryOpts = append(summaryOpts, engine.WithSummaryTemplate(cfg.SummaryTemplate))
	}
	summarizer := engine.NewSummaryService(modelClient, summaryOpts...)

	var chatOpts []engine.ChatOption
	if cfg.QuestionTemplate != "" {
		chatOpts = append(chatOpts, engine.WithQuestionTemplate(cfg.QuestionTemplate))
	}
	if cfg.EditTemplate != "" {
		chatOpts = append(chatOpts, engine.WithEditTemplate(cfg.EditTemplate))
	}
	chatService := engine.NewChatService(modelClient, chatOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Evict idle sessions in the background when a TTL is configured.
	if cfg.SessionTTL > 0 {
		reaper := worker.New(registry, cfg.SessionTTL, cfg.ReapInterval)
		go reaper.Start(ctx)
	}

	srv := api.New(registry, transcriber, summarizer, chatService, archive, cfg)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Handler(),
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		cancel()
		httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("minutes server listening on http://localhost:%s\n", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
