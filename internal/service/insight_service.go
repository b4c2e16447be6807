package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	"github.com/noah-isme/tutortrack-api/pkg/config"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
)

// TextGenerator is the external text-generation collaborator. Failures never
// reach core state; they surface as a typed generation error.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPTextGenerator posts prompts to a configurable completion endpoint.
type HTTPTextGenerator struct {
	cfg    config.AIConfig
	client *http.Client
}

// NewHTTPTextGenerator constructs the client.
func NewHTTPTextGenerator(cfg config.AIConfig) *HTTPTextGenerator {
	return &HTTPTextGenerator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate sends the prompt and returns the completion text.
func (g *HTTPTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.cfg.BaseURL == "" {
		return "", fmt.Errorf("text generation endpoint not configured")
	}
	payload, err := json.Marshal(generateRequest{Model: g.cfg.Model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal generation request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generation endpoint: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned %d", resp.StatusCode)
	}
	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	return decoded.Text, nil
}

// InsightService drafts human-readable messages and summaries from ledger
// data via the text-generation collaborator.
type InsightService struct {
	state     *StateService
	generator TextGenerator
	logger    *zap.Logger
}

// NewInsightService constructs an InsightService.
func NewInsightService(state *StateService, generator TextGenerator, logger *zap.Logger) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{state: state, generator: generator, logger: logger}
}

// PaymentReminder drafts a polite payment reminder for the student's current
// month.
func (s *InsightService) PaymentReminder(ctx context.Context, ownerID, studentID string) (string, error) {
	student, status, err := s.studentWithStatus(ownerID, studentID)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(
		"Veliye gönderilecek kibar bir ödeme hatırlatma mesajı yaz. Öğrenci: %s. Aylık ücret: %.2f TL. Bu ayın ödeme durumu: %s. Kısa ve samimi olsun.",
		student.Name, student.Fee, status)
	return s.generate(ctx, prompt)
}

// LedgerAnalysis summarises a student's recent ledger activity.
func (s *InsightService) LedgerAnalysis(ctx context.Context, ownerID, studentID string) (string, error) {
	student, status, err := s.studentWithStatus(ownerID, studentID)
	if err != nil {
		return "", err
	}
	period := CurrentPeriod(student.History)
	var lines []string
	for _, tx := range period {
		kind := "ders"
		if !tx.IsDebt {
			kind = "ödeme"
		}
		lines = append(lines, fmt.Sprintf("%s | %s | %s | %.2f", tx.Date.Format("2006-01-02"), kind, tx.Note, tx.Amount))
	}
	prompt := fmt.Sprintf(
		"Aşağıdaki öğrenci hesap dökümünü veli için kısaca özetle. Öğrenci: %s, ödeme durumu: %s.\n%s",
		student.Name, status, strings.Join(lines, "\n"))
	return s.generate(ctx, prompt)
}

func (s *InsightService) studentWithStatus(ownerID, studentID string) (*models.Student, models.PaymentStatus, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, "", err
	}
	student, ok := state.Students[studentID]
	if !ok {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, PaymentStatusFor(student, time.Now()), nil
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("text generation failed", zap.Error(err))
		return "", appErrors.Clone(appErrors.ErrGenerationFailed, "could not generate text")
	}
	return text, nil
}
