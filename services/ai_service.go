package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"main/utils"

	"github.com/avast/retry-go"
	"github.com/sashabaranov/go-openai"
)

// AIConfig holds the AI provider configuration. Models are tried in order,
// best first.
type AIConfig struct {
	BaseURL     string
	APIKey      string
	Models      []string
	MaxRetries  int
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultAIConfig returns the default configuration, overridable per field
// through the environment.
func DefaultAIConfig() *AIConfig {
	models := []string{"gpt-4o", "gpt-4o-mini", "gpt-3.5-turbo"}
	if env := utils.GetEnvAsString("AI_MODELS", ""); env != "" {
		models = strings.Split(env, ",")
	}

	return &AIConfig{
		BaseURL:     utils.GetEnvAsString("AI_BASE_URL", ""),
		APIKey:      utils.GetEnvAsString("AI_API_KEY", ""),
		Models:      models,
		MaxRetries:  utils.GetEnvAsInt("AI_MAX_RETRIES", 3),
		Temperature: 0.7,
		MaxTokens:   4096,
		Timeout:     utils.GetEnvAsDuration("AI_TIMEOUT", 30*time.Second),
	}
}

// chatCompleter is the slice of the OpenAI client the service needs; tests
// substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService generates quizzes, flashcards and notes from study material.
type AIService struct {
	client chatCompleter
	config *AIConfig
}

// GeneratedQuestion is one AI-produced quiz question.
type GeneratedQuestion struct {
	QuestionText string            `json:"question_text"`
	Choices      []GeneratedChoice `json:"choices"`
	Explanation  string            `json:"explanation"`
}

type GeneratedChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// GeneratedFlashcard is one AI-produced flashcard.
type GeneratedFlashcard struct {
	FrontText string `json:"front_text"`
	BackText  string `json:"back_text"`
	Hint      string `json:"hint"`
}

// NewAIService creates the service from config.
func NewAIService(cfg *AIConfig) (*AIService, error) {
	if cfg == nil {
		cfg = DefaultAIConfig()
	}
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key not configured")
	}
	if len(cfg.Models) == 0 {
		return nil, errors.New("no AI models configured")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &AIService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// generateWithFallback walks the model list per attempt, retrying the whole
// sweep when every model fails.
func (svc *AIService) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	var content string

	err := retry.Do(
		func() error {
			for _, model := range svc.config.Models {
				reqCtx, cancel := context.WithTimeout(ctx, svc.config.Timeout)
				resp, err := svc.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
					Model: model,
					Messages: []openai.ChatCompletionMessage{
						{Role: openai.ChatMessageRoleUser, Content: prompt},
					},
					Temperature: svc.config.Temperature,
					MaxTokens:   svc.config.MaxTokens,
				})
				cancel()

				if err != nil {
					log.Printf("Warning: model %s failed: %v", model, err)
					continue
				}
				if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
					log.Printf("Warning: empty response from model %s", model)
					continue
				}

				if model != svc.config.Models[0] {
					log.Printf("Used fallback model: %s", model)
				}
				content = resp.Choices[0].Message.Content
				return nil
			}
			return errors.New("all models failed to generate content")
		},
		retry.Attempts(uint(svc.config.MaxRetries)),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return content, nil
}

// CleanJSONResponse strips markdown fences and any prose around the first
// JSON object or array in a model response.
func CleanJSONResponse(text string) string {
	if idx := strings.Index(text, "```json"); idx != -1 {
		start := idx + len("```json")
		if end := strings.Index(text[start:], "```"); end != -1 {
			text = text[start : start+end]
		}
	} else if idx := strings.Index(text, "```"); idx != -1 {
		start := idx + 3
		if end := strings.LastIndex(text, "```"); end > start {
			text = text[start:end]
		}
	}

	text = strings.TrimSpace(text)

	objStart := strings.IndexAny(text, "{[")
	if objStart > 0 {
		text = text[objStart:]
	}

	objEnd := -1
	if i := strings.LastIndex(text, "}"); i > objEnd {
		objEnd = i
	}
	if i := strings.LastIndex(text, "]"); i > objEnd {
		objEnd = i
	}
	if objEnd != -1 {
		text = text[:objEnd+1]
	}

	return text
}

// GenerateQuizQuestions generates multiple-choice questions from note content.
func (svc *AIService) GenerateQuizQuestions(ctx context.Context, noteContent, noteTitle string, numQuestions int, difficulty string) ([]GeneratedQuestion, error) {
	prompt := quizPrompt(noteContent, noteTitle, numQuestions, difficulty)
	return svc.generateQuestions(ctx, prompt)
}

// GenerateQuizFromTopic generates questions from a bare topic, without any
// source material.
func (svc *AIService) GenerateQuizFromTopic(ctx context.Context, topic string, numQuestions int, difficulty string) ([]GeneratedQuestion, error) {
	prompt := quizPrompt("", topic, numQuestions, difficulty)
	return svc.generateQuestions(ctx, prompt)
}

func (svc *AIService) generateQuestions(ctx context.Context, prompt string) ([]GeneratedQuestion, error) {
	raw, err := svc.generateWithFallback(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(CleanJSONResponse(raw)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, errors.New("invalid response format: no questions")
	}

	for _, q := range payload.Questions {
		if q.QuestionText == "" || len(q.Choices) == 0 {
			return nil, errors.New("invalid response format: malformed question")
		}
	}

	return payload.Questions, nil
}

// GenerateFlashcards generates flashcards from note content.
func (svc *AIService) GenerateFlashcards(ctx context.Context, noteContent, noteTitle string, numCards int) ([]GeneratedFlashcard, error) {
	raw, err := svc.generateWithFallback(ctx, flashcardPrompt(noteContent, noteTitle, numCards))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Flashcards []GeneratedFlashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(CleanJSONResponse(raw)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if len(payload.Flashcards) == 0 {
		return nil, errors.New("invalid response format: no flashcards")
	}

	for _, c := range payload.Flashcards {
		if c.FrontText == "" || c.BackText == "" {
			return nil, errors.New("invalid response format: malformed flashcard")
		}
	}

	return payload.Flashcards, nil
}

// GenerateNotes generates markdown study notes on a topic.
func (svc *AIService) GenerateNotes(ctx context.Context, topic, description, guidelines string) (string, error) {
	raw, err := svc.generateWithFallback(ctx, notesPrompt(topic, description, guidelines))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func difficultyInstruction(difficulty string) string {
	switch difficulty {
	case "easy":
		return "Focus on basic concepts and definitions. Questions should test recall and understanding."
	case "hard":
		return "Focus on synthesis, evaluation, and complex problem-solving. Include scenario-based questions."
	default:
		return "Include application and analysis questions. Mix recall with problem-solving."
	}
}

func quizPrompt(content, title string, numQuestions int, difficulty string) string {
	var b strings.Builder

	b.WriteString("You are an expert educational content creator specializing in quiz generation.\n\n")
	if strings.TrimSpace(content) == "" {
		fmt.Fprintf(&b, "**TOPIC:** %s\n\n", title)
		fmt.Fprintf(&b, "Generate exactly %d multiple-choice questions about %s covering its different aspects and subtopics.\n", numQuestions, title)
	} else {
		fmt.Fprintf(&b, "**CONTENT TO ANALYZE:**\nTitle: %s\nContent: %s\n\n", title, content)
		fmt.Fprintf(&b, "Generate exactly %d multiple-choice questions that directly relate to the provided content.\n", numQuestions)
	}

	fmt.Fprintf(&b, "Difficulty level: %s. %s\n\n", difficulty, difficultyInstruction(difficulty))
	b.WriteString(`**QUESTION STANDARDS:**
- Each question must have exactly 4 answer choices
- Only one choice should be correct
- Include educational explanations for correct answers
- Ensure questions test understanding, not just memorization
- Avoid ambiguous or trick questions

**Required JSON Format:**
{
    "questions": [
        {
            "question_text": "Your question here?",
            "choices": [
                {"text": "Option A", "is_correct": false},
                {"text": "Option B", "is_correct": true},
                {"text": "Option C", "is_correct": false},
                {"text": "Option D", "is_correct": false}
            ],
            "explanation": "Brief explanation of why the correct answer is right."
        }
    ]
}

Generate the quiz questions now:
`)
	return b.String()
}

func flashcardPrompt(content, title string, numCards int) string {
	var b strings.Builder

	b.WriteString("You are an expert educational content creator specializing in flashcard generation for effective learning and retention.\n\n")
	fmt.Fprintf(&b, "**CONTENT TO ANALYZE:**\nTitle: %s\nContent: %s\n\n", title, content)
	fmt.Fprintf(&b, "Generate exactly %d high-quality flashcards.\n\n", numCards)
	b.WriteString(`**FLASHCARD STANDARDS:**
- Front: concise, specific questions or prompts that test key concepts
- Back: comprehensive yet concise answers with clear explanations
- Create a variety of card types: definitions, explanations, applications, examples
- Avoid yes/no questions or overly broad prompts
- Include helpful hints when appropriate

**Required JSON Format:**
{
    "flashcards": [
        {
            "front_text": "Question or prompt here",
            "back_text": "Answer or explanation here",
            "hint": "Optional hint (can be empty)"
        }
    ]
}

Generate the flashcards now:
`)
	return b.String()
}

func notesPrompt(topic, description, guidelines string) string {
	var b strings.Builder

	b.WriteString("You are an expert educational content creator and teacher. Create comprehensive, well-structured study notes on the given topic.\n\n")
	fmt.Fprintf(&b, "**TOPIC:** %s\n", topic)
	if description != "" {
		fmt.Fprintf(&b, "**ADDITIONAL CONTEXT:** %s\n", description)
	}
	if guidelines != "" {
		fmt.Fprintf(&b, "**SPECIFIC GUIDELINES TO FOLLOW:** %s\n", guidelines)
	}
	b.WriteString(`
**CONTENT REQUIREMENTS:**
- Cover all important aspects of the topic with clear headings and subheadings
- Include key concepts, definitions, and explanations with examples
- Use markdown formatting: section headers, bullet points, bold key terms
- Structure: introduction, key concepts, main topics, important details, summary

Generate comprehensive study notes now:
`)
	return b.String()
}
