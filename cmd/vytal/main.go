package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shamaiem10/Vytal/internal/api"
	"github.com/shamaiem10/Vytal/internal/cli"
	"github.com/shamaiem10/Vytal/internal/config"
	"github.com/shamaiem10/Vytal/internal/db"
	"github.com/shamaiem10/Vytal/internal/llm"
	"github.com/shamaiem10/Vytal/internal/ocr"
	"github.com/shamaiem10/Vytal/internal/services"
	"github.com/shamaiem10/Vytal/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config load failed: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel)

	command, err := resolveCommand(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case commandInitDB:
		if err := cli.RunInitDBCommand(cfg.DBPath, os.Stdout, log); err != nil {
			log.Fatalf("init-db failed: %v", err)
		}
	default:
		if err := serve(cfg, log); err != nil {
			log.Fatalf("server exited: %v", err)
		}
	}
}

const (
	commandServe  = "serve"
	commandInitDB = "init-db"
)

func resolveCommand(args []string) (string, error) {
	if len(args) == 0 {
		return commandServe, nil
	}
	switch args[0] {
	case commandServe, commandInitDB:
		return args[0], nil
	default:
		return "", fmt.Errorf("unknown command %q (expected %s or %s)", args[0], commandServe, commandInitDB)
	}
}

func serve(cfg *config.Config, log *logrus.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return err
	}
	repos := db.NewRepositories(database)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	uploads, err := newUploadStore(lifecycleCtx, cfg)
	if err != nil {
		return err
	}

	completer := llm.NewClient(llm.Config{
		APIURL:  cfg.LLMAPIURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, log)
	if cfg.LLMAPIKey == "" {
		log.Warn("LLM_API_KEY and HF_KEY are empty, model calls will be rejected upstream")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Accounts:      services.NewAccountService(repos.Users),
		Diary:         services.NewDiaryService(repos.Diary, repos.Users, cfg.Location),
		Summaries:     services.NewSummaryService(repos.Diary, completer, log),
		Prescriptions: services.NewPrescriptionService(uploads, ocr.NewTesseract(cfg.OCRLanguage), completer, repos.Prescriptions, cfg.Location, log),
		Log:           log,
	})
	if err != nil {
		return err
	}

	app := api.NewApp(handler, cfg.MaxUploadMB<<20)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("Vytal listening")
	return app.Listen(":" + cfg.Port)
}

func newUploadStore(ctx context.Context, cfg *config.Config) (services.UploadStore, error) {
	if cfg.UploadBucket != "" {
		return storage.NewS3Store(ctx, cfg.UploadBucket, cfg.UploadPrefix)
	}
	return storage.NewDiskStore(cfg.UploadDir), nil
}
