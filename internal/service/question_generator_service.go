package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Quokka/config"
	"github.com/lshigami/Quokka/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuestionGeneratorService drafts multiple choice questions with Gemini.
// Drafts are never stored; admins review them and add the keepers through
// the question bank endpoint.
type QuestionGeneratorService interface {
	DraftQuestions(ctx context.Context, topic string, count int) ([]dto.QuestionDraftDTO, error)
}

type questionGeneratorService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewQuestionGeneratorService(cfg *config.Config) (QuestionGeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. QuestionGeneratorService will be non-functional.")
		return &questionGeneratorService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &questionGeneratorService{client: model, cfg: cfg}, nil
}

func (s *questionGeneratorService) DraftQuestions(ctx context.Context, topic string, count int) ([]dto.QuestionDraftDTO, error) {
	if s.client == nil {
		return nil, ErrGeneratorUnavailable
	}

	prompt := fmt.Sprintf(`You are writing quiz questions for secondary school students.
Generate exactly %d multiple choice questions about the topic: %q.

Respond with ONLY a JSON array, no prose and no markdown fences. Each element:
{"text": "...", "options": ["...", "...", "...", "..."], "correct_answer": "...", "explanation": "..."}

Rules:
- Exactly 4 options per question.
- correct_answer must be copied verbatim from options.
- Keep explanations to one sentence.`, count, topic)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	drafts, err := parseQuestionDrafts(raw)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("DraftQuestions: unparseable model output")
		return nil, err
	}
	return drafts, nil
}

// parseQuestionDrafts decodes the model output, tolerating markdown fences
// the model sometimes wraps JSON in despite instructions.
func parseQuestionDrafts(raw string) ([]dto.QuestionDraftDTO, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var drafts []dto.QuestionDraftDTO
	if err := json.Unmarshal([]byte(cleaned), &drafts); err != nil {
		return nil, fmt.Errorf("failed to decode generated questions: %w", err)
	}

	valid := drafts[:0]
	for _, d := range drafts {
		if d.Text == "" || len(d.Options) < 2 || d.CorrectAnswer == "" {
			continue
		}
		found := false
		for _, opt := range d.Options {
			if opt == d.CorrectAnswer {
				found = true
				break
			}
		}
		if found {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("generated output contained no usable questions")
	}
	return valid, nil
}
