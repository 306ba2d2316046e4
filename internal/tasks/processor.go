package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"stockbot/internal/config"
	"stockbot/internal/crawler"
	"stockbot/internal/mailer"
	"stockbot/internal/pkg/edinet"
	"stockbot/internal/repository"
	"stockbot/internal/storage"
)

// ResetMailer sends the password-reset email for a requested token.
type ResetMailer interface {
	SendPasswordResetEmail(to, token string) error
}

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	DB           *gorm.DB
	config       *config.Config
	edinetClient *edinet.Client
	store        crawler.ObjectStore
	mailer       ResetMailer
	companies    *repository.CompanyRepository
	reports      *repository.ReportRepository
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(db *gorm.DB, config *config.Config) *TaskProcessor {
	store, err := storage.NewStore(config.S3Endpoint, config.S3AccessKey, config.S3SecretKey, config.S3Bucket, config.S3UseSSL)
	if err != nil {
		log.Fatalf("Failed to init object storage: %v", err)
	}

	return &TaskProcessor{
		DB:           db,
		config:       config,
		edinetClient: edinet.New(config.EdinetAPIKey),
		store:        store,
		mailer:       mailer.New(config),
		companies:    repository.NewCompanyRepository(db),
		reports:      repository.NewReportRepository(db),
	}
}

func (p *TaskProcessor) HandleCrawlEdinetTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Crawling EDINET filings")

	var payload CrawlEdinetPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	days := crawler.DefaultWindowDays
	if payload.Days != nil {
		days = *payload.Days
	}

	c := crawler.New(p.companies, p.reports, p.edinetClient, p.store)
	processed, err := c.Run(ctx, days)
	if err != nil {
		log.Printf("crawl failed: %v", err)
		return nil
	}

	log.Printf("Crawl finished, %d documents processed", processed)
	return nil
}

func (p *TaskProcessor) HandleSendResetEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	log.Printf("Sending password reset email to %s", payload.Email)

	if err := p.mailer.SendPasswordResetEmail(payload.Email, payload.Token); err != nil {
		log.Printf("failed to send reset email to %s: %v", payload.Email, err)
		return nil
	}

	return nil
}

func (p *TaskProcessor) GetEdinetClient() *edinet.Client {
	return p.edinetClient
}

// UseObjectStore swaps the object store, used by tests.
func (p *TaskProcessor) UseObjectStore(store crawler.ObjectStore) {
	p.store = store
}

// UseMailer swaps the mailer, used by tests.
func (p *TaskProcessor) UseMailer(m ResetMailer) {
	p.mailer = m
}
