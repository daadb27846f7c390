package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls = append(f.calls, req.Model)
	if err, ok := f.errs[req.Model]; ok {
		return openai.ChatCompletionResponse{}, err
	}
	content := f.responses[req.Model]
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}

func newTestAIService(client chatCompleter, models ...string) *AIService {
	return &AIService{
		client: client,
		config: &AIConfig{
			Models:     models,
			MaxRetries: 2,
			MaxTokens:  1024,
			Timeout:    time.Second,
		},
	}
}

const validQuizJSON = `{
	"questions": [
		{
			"question_text": "What is 2+2?",
			"choices": [
				{"text": "3", "is_correct": false},
				{"text": "4", "is_correct": true}
			],
			"explanation": "Basic arithmetic."
		}
	]
}`

func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "PlainJSON",
			input: `{"questions": []}`,
			want:  `{"questions": []}`,
		},
		{
			name:  "JSONFence",
			input: "```json\n{\"questions\": []}\n```",
			want:  `{"questions": []}`,
		},
		{
			name:  "GenericFence",
			input: "```\n[1, 2]\n```",
			want:  `[1, 2]`,
		},
		{
			name:  "SurroundingProse",
			input: "Here is the quiz you asked for:\n{\"questions\": []}\nLet me know if you need more.",
			want:  `{"questions": []}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanJSONResponse(tc.input)
			if got != tc.want {
				t.Errorf("CleanJSONResponse() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateQuizQuestions(t *testing.T) {
	client := &fakeCompleter{
		responses: map[string]string{
			"model-a": "```json\n" + validQuizJSON + "\n```",
		},
	}
	svc := newTestAIService(client, "model-a")

	questions, err := svc.GenerateQuizQuestions(context.Background(), "addition facts", "Arithmetic", 1, "easy")
	if err != nil {
		t.Fatalf("GenerateQuizQuestions() error = %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].QuestionText != "What is 2+2?" {
		t.Errorf("unexpected question text %q", questions[0].QuestionText)
	}
	if !questions[0].Choices[1].IsCorrect {
		t.Error("expected second choice to be correct")
	}
}

func TestGenerateFallsBackToNextModel(t *testing.T) {
	client := &fakeCompleter{
		errs: map[string]error{
			"model-a": errors.New("rate limited"),
		},
		responses: map[string]string{
			"model-b": validQuizJSON,
		},
	}
	svc := newTestAIService(client, "model-a", "model-b")

	questions, err := svc.GenerateQuizFromTopic(context.Background(), "Arithmetic", 1, "medium")
	if err != nil {
		t.Fatalf("GenerateQuizFromTopic() error = %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	if len(client.calls) != 2 || client.calls[0] != "model-a" || client.calls[1] != "model-b" {
		t.Errorf("expected fallback call order [model-a model-b], got %v", client.calls)
	}
}

func TestGenerateFailsWhenAllModelsFail(t *testing.T) {
	client := &fakeCompleter{
		errs: map[string]error{
			"model-a": errors.New("unavailable"),
			"model-b": errors.New("unavailable"),
		},
	}
	svc := newTestAIService(client, "model-a", "model-b")

	_, err := svc.GenerateQuizFromTopic(context.Background(), "Arithmetic", 1, "medium")
	if err == nil {
		t.Fatal("expected error when every model fails")
	}

	// Two models, two retry attempts each sweep
	if len(client.calls) != 4 {
		t.Errorf("expected 4 attempts, got %d", len(client.calls))
	}
}

func TestGenerateQuizRejectsMalformedResponse(t *testing.T) {
	client := &fakeCompleter{
		responses: map[string]string{
			"model-a": `{"questions": [{"question_text": "", "choices": []}]}`,
		},
	}
	svc := newTestAIService(client, "model-a")

	if _, err := svc.GenerateQuizFromTopic(context.Background(), "Arithmetic", 1, "medium"); err == nil {
		t.Fatal("expected error for malformed question")
	}
}

func TestGenerateFlashcards(t *testing.T) {
	client := &fakeCompleter{
		responses: map[string]string{
			"model-a": `{
				"flashcards": [
					{"front_text": "Define osmosis", "back_text": "Movement of water across a membrane", "hint": ""}
				]
			}`,
		},
	}
	svc := newTestAIService(client, "model-a")

	cards, err := svc.GenerateFlashcards(context.Background(), "biology notes", "Osmosis", 1)
	if err != nil {
		t.Fatalf("GenerateFlashcards() error = %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].FrontText != "Define osmosis" {
		t.Errorf("unexpected front text %q", cards[0].FrontText)
	}
}
