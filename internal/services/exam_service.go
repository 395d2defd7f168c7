package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/document"
	"github.com/SAP-F-2025/examprep-service/internal/prompts"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

const (
	defaultDifficulty     = "medium"
	defaultTotalQuestions = 10
	defaultStartIndex     = 1
	defaultQuestionsLimit = 20
)

// Streamer turns a prompt into a lazy sequence of reply fragments
type Streamer interface {
	Stream(ctx context.Context, prompt string) iter.Seq[string]
}

// PageFetcher returns the readable text of a web page
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type examService struct {
	relay             Streamer
	fetcher           PageFetcher
	extractionTimeout time.Duration
	logger            *slog.Logger
	validator         *validator.Validator
}

func NewExamService(relay Streamer, fetcher PageFetcher, extractionTimeout time.Duration, logger *slog.Logger, validator *validator.Validator) ExamService {
	return &examService{
		relay:             relay,
		fetcher:           fetcher,
		extractionTimeout: extractionTimeout,
		logger:            logger,
		validator:         validator,
	}
}

func (s *examService) GenerateFromTopic(ctx context.Context, req *validator.ExamRequest) (iter.Seq[string], error) {
	applyExamDefaults(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.logger.Info("Generating exam", "topic", req.Topic, "difficulty", req.Difficulty,
		"total_questions", req.TotalQuestions, "q_types", req.QTypes)

	prompt := prompts.ExamPrompt(req.Topic, req.Difficulty, req.TotalQuestions, req.QTypes)
	return s.relay.Stream(ctx, prompt), nil
}

func (s *examService) GenerateFromDocument(ctx context.Context, upload *Upload, form *validator.DocumentExamForm) (iter.Seq[string], error) {
	if form.TotalQuestions == 0 {
		form.TotalQuestions = defaultTotalQuestions
	}
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}
	types, err := parseQuestionTypes(form.QTypes)
	if err != nil {
		return nil, err
	}

	doc, err := s.extract(ctx, upload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generating exam from document", "filename", upload.Filename,
		"pages", len(doc.Pages), "total_questions", form.TotalQuestions)

	prompt := prompts.DocumentPrompt(doc.Text(), form.Difficulty, form.TotalQuestions, types)
	return s.relay.Stream(ctx, prompt), nil
}

// ExtractQuestions copies questions out of a past paper starting at the
// question with sequence index form.StartIndex. The anchor must exist; the
// question limit is left to the model.
func (s *examService) ExtractQuestions(ctx context.Context, upload *Upload, form *validator.ExtractionForm) (*Extraction, error) {
	if form.StartIndex == 0 {
		form.StartIndex = defaultStartIndex
	}
	if form.QuestionsLimit == 0 {
		form.QuestionsLimit = defaultQuestionsLimit
	}
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	doc, err := s.extract(ctx, upload)
	if err != nil {
		return nil, err
	}

	// The anchor has to survive the context cap or the model never sees it
	tagged := document.Tag(doc.PagedText()).Truncate(prompts.MaxExtractionContext)
	if _, err := tagged.FindAnchor(form.StartIndex); err != nil {
		s.logger.Info("Anchor not found", "start_index", form.StartIndex, "detected", tagged.Count())
		return nil, err
	}

	s.logger.Info("Starting question extraction", "filename", upload.Filename,
		"start_index", form.StartIndex, "questions_limit", form.QuestionsLimit,
		"detected", tagged.Count(), "diagram_pages", doc.DiagramPages())

	prompt := prompts.AnchoredExtractionPrompt(tagged.Text, form.StartIndex, form.QuestionsLimit)
	return &Extraction{
		Fragments:     s.relay.Stream(ctx, prompt),
		QuestionCount: tagged.Count(),
		DiagramPages:  doc.DiagramPages(),
	}, nil
}

func (s *examService) GenerateFromWeb(ctx context.Context, req *validator.ExamRequest) (iter.Seq[string], error) {
	applyExamDefaults(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	text, err := s.fetcher.FetchText(ctx, req.Topic)
	if errors.Is(err, document.ErrInvalidURL) {
		return nil, validator.ValidationErrors{{Field: "topic", Message: "must be an http or https URL", Value: req.Topic, Rule: "url"}}
	}
	if err != nil {
		s.logger.Warn("Failed to read URL", "url", req.Topic, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrWebFetch, err)
	}

	prompt := prompts.WebPrompt(text, req.Difficulty, req.TotalQuestions, req.QTypes)
	return s.relay.Stream(ctx, prompt), nil
}

func (s *examService) extract(ctx context.Context, upload *Upload) (*document.Document, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.extractionTimeout)
	defer cancel()

	doc, err := document.Extract(extractCtx, upload.Filename, upload.Data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("Extraction timed out", "filename", upload.Filename, "timeout", s.extractionTimeout)
			return nil, ErrExtractionTimeout
		}
		return nil, err
	}
	return doc, nil
}

func applyExamDefaults(req *validator.ExamRequest) {
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	if req.TotalQuestions == 0 {
		req.TotalQuestions = defaultTotalQuestions
	}
	if len(req.QTypes) == 0 {
		req.QTypes = []string{"MCQ"}
	}
}

// parseQuestionTypes accepts a JSON array (double or single quoted) or a
// comma-separated list.
func parseQuestionTypes(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)

	var types []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &types); err != nil {
			return nil, validator.ValidationErrors{{Field: "q_types", Message: "must be a list of question types", Value: raw}}
		}
	} else {
		types = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !validator.IsQuestionType(t) {
			return nil, validator.ValidationErrors{{
				Field:   "q_types",
				Message: "must be one of MCQ, Passage, Figure Logic, Short Answer",
				Value:   t,
				Rule:    "question_type",
			}}
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, validator.ValidationErrors{{Field: "q_types", Message: "is required", Rule: "required"}}
	}
	return out, nil
}
