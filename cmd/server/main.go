package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"loandocs/internal/config"
	"loandocs/internal/email/noop"
	"loandocs/internal/email/ses"
	"loandocs/internal/handler"
	"loandocs/internal/ocr"
	"loandocs/internal/ocr/tesseract"
	"loandocs/internal/port"
	"loandocs/internal/repository/postgres"
	"loandocs/internal/router"
	"loandocs/internal/service"
	s3storage "loandocs/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize recognition pipeline
	recognizer := tesseract.NewRecognizer(cfg.OCR.Language)
	pipeline := ocr.NewPipeline(recognizer, cfg.OCR.PDFRenderDPI)

	processingTimeout := time.Duration(cfg.OCR.TimeoutSecs) * time.Second

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	notifSvc := service.NewNotificationService(notifRepo, userRepo, emailSender)
	docSvc := service.NewDocumentService(docRepo, fileRepo, userRepo, pipeline, s3Client, notifSvc, processingTimeout)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	fileH := handler.NewFileHandler(fileSvc)
	docH := handler.NewDocumentHandler(docSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	reportH := handler.NewReportHandler(docSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, fileH, docH, notifH, reportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the stalled-document recovery worker
	worker := service.NewRecoveryWorker(docRepo, docSvc, service.RecoveryConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		StalledAfter: time.Duration(cfg.Queue.StalledAfterSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
		JobTimeout:   processingTimeout,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-workerDone

	return nil
}
