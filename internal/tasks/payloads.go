package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// This file defines the "types" and "payloads" for our async tasks.

// Task type names
const (
	TypeTaskCrawlEdinet    = "task:crawl_edinet"
	TypeTaskSendResetEmail = "task:send_reset_email"
)

// --- CrawlEdinet Task ---

// CrawlEdinetPayload is the data a crawl job needs to run
type CrawlEdinetPayload struct {
	Days *int `json:"days"`
}

// NewCrawlEdinetTask creates a new crawl task for asynq
func NewCrawlEdinetTask(days *int) (*asynq.Task, error) {
	payload := CrawlEdinetPayload{Days: days}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskCrawlEdinet, payloadBytes), nil
}

// --- SendResetEmail Task ---

// SendResetEmailPayload carries a password-reset email request
type SendResetEmailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// NewSendResetEmailTask creates a new reset-email task for asynq
func NewSendResetEmailTask(email, token string) (*asynq.Task, error) {
	payload := SendResetEmailPayload{Email: email, Token: token}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskSendResetEmail, payloadBytes), nil
}
