package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/config"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/pkg/logger"
)

// AIService turns a feature description into draft test cases through
// whichever provider is configured. Providers are tried in order until one
// answers.
type AIService struct {
	db        *gorm.DB
	config    *config.OpenAIConfig
	configSvc *AIConfigService
}

func NewAIService(db *gorm.DB, cfg *config.OpenAIConfig) *AIService {
	return &AIService{
		db:        db,
		config:    cfg,
		configSvc: NewAIConfigService(db),
	}
}

const generationPrompt = `You are a senior QA engineer. Generate test cases for the feature described below.

Project: {{project}}
Suite: {{suite}}

Feature description:
{{feature}}

Respond with a JSON array only, no prose. Each element must have these string fields:
"title", "preconditions", "steps", "expected_result", and "priority" (one of: low, medium, high, critical).
Generate between 3 and 15 cases covering happy paths, edge cases, and failure modes.`

// GeneratedCase is one test case as returned by the model.
type GeneratedCase struct {
	Title          string `json:"title"`
	Preconditions  string `json:"preconditions"`
	Steps          string `json:"steps"`
	ExpectedResult string `json:"expected_result"`
	Priority       string `json:"priority"`
}

type GenerationResult struct {
	Cases      []GeneratedCase
	AIConfigID *uint
}

// Generate produces test cases for a feature, walking the ordered provider
// configs until one succeeds.
func (s *AIService) Generate(ctx context.Context, projectID, suiteID uint, feature string) (*GenerationResult, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	var suite models.TestSuite
	if err := s.db.First(&suite, suiteID).Error; err != nil {
		return nil, fmt.Errorf("suite not found: %w", err)
	}

	prompt := strings.ReplaceAll(generationPrompt, "{{project}}", project.Name)
	prompt = strings.ReplaceAll(prompt, "{{suite}}", suite.Name)
	prompt = strings.ReplaceAll(prompt, "{{feature}}", feature)

	aiConfigs := s.getOrderedConfigs()
	if len(aiConfigs) == 0 {
		return nil, fmt.Errorf("no AI configuration available")
	}

	var lastErr error
	for i, aiConfig := range aiConfigs {
		logger.Infof("[AI] Attempting provider %d/%d: %s (model: %s)", i+1, len(aiConfigs), aiConfig.Name, aiConfig.Model)

		content, err := s.callLLM(ctx, &aiConfig, prompt)
		if err != nil {
			lastErr = err
			logger.Infof("[AI] Provider %s failed: %v, trying next...", aiConfig.Name, err)
			continue
		}

		cases, err := parseGeneratedCases(content)
		if err != nil {
			lastErr = err
			logger.Infof("[AI] Provider %s returned unparseable output: %v, trying next...", aiConfig.Name, err)
			continue
		}

		logger.Infof("[AI] Success with provider: %s, %d cases", aiConfig.Name, len(cases))
		result := &GenerationResult{Cases: cases}
		if aiConfig.ID != 0 {
			id := aiConfig.ID
			result.AIConfigID = &id
		}
		return result, nil
	}

	return nil, fmt.Errorf("all AI providers failed, last error: %w", lastErr)
}

// getOrderedConfigs returns active configs with the default first, falling
// back to the file-level OpenAI settings when the table is empty.
func (s *AIService) getOrderedConfigs() []models.AIConfig {
	var configs []models.AIConfig
	s.db.Where("is_active = ?", true).Order("is_default DESC, id ASC").Find(&configs)

	if len(configs) == 0 && s.config.APIKey != "" {
		configs = append(configs, models.AIConfig{
			Name:    "fallback",
			BaseURL: s.config.BaseURL,
			APIKey:  s.config.APIKey,
			Model:   s.config.Model,
		})
	}

	return configs
}

// callLLM dispatches to the appropriate provider-specific function based on Provider field
func (s *AIService) callLLM(ctx context.Context, aiConfig *models.AIConfig, prompt string) (string, error) {
	logger.Infof("[AI] Using provider: %s, model: %s, baseURL: %s", aiConfig.Provider, aiConfig.Model, aiConfig.BaseURL)

	switch aiConfig.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, aiConfig, prompt)
	case "ollama":
		return s.callOllama(ctx, aiConfig, prompt)
	case "gemini":
		return s.callGemini(ctx, aiConfig, prompt)
	case "azure":
		return s.callAzure(ctx, aiConfig, prompt)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, aiConfig, prompt)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *AIService) callOpenAI(ctx context.Context, aiConfig *models.AIConfig, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(aiConfig.APIKey)
	if aiConfig.BaseURL != "" {
		clientConfig.BaseURL = aiConfig.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if aiConfig.Temperature > 0 {
		temperature = float32(aiConfig.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: aiConfig.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		logger.Infof("[AI] OpenAI API error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	logger.Infof("[AI] OpenAI response length: %d chars", len(content))
	return content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (s *AIService) callAnthropic(ctx context.Context, aiConfig *models.AIConfig, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(aiConfig.APIKey),
	)

	maxTokens := int64(aiConfig.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	model := aiConfig.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		logger.Infof("[AI] Anthropic API error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	logger.Infof("[AI] Anthropic response length: %d chars", len(content))
	return content, nil
}

// callOllama handles Ollama API using the native SDK
func (s *AIService) callOllama(ctx context.Context, aiConfig *models.AIConfig, prompt string) (string, error) {
	baseURL := aiConfig.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := aiConfig.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": aiConfig.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		logger.Infof("[AI] Ollama API error: %v", err)
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	result := content.String()
	logger.Infof("[AI] Ollama response length: %d chars", len(result))
	return result, nil
}

// callGemini handles Google Gemini API using the native SDK
func (s *AIService) callGemini(ctx context.Context, aiConfig *models.AIConfig, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: aiConfig.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := aiConfig.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		logger.Infof("[AI] Gemini API error: %v", err)
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	content := resp.Text()
	logger.Infof("[AI] Gemini response length: %d chars", len(content))
	return content, nil
}

// callAzure handles Azure OpenAI API using special configuration
func (s *AIService) callAzure(ctx context.Context, aiConfig *models.AIConfig, prompt string) (string, error) {
	// Azure requires BaseURL format: https://{resource-name}.openai.azure.com
	// Model field is used as deployment name
	clientConfig := openai.DefaultAzureConfig(aiConfig.APIKey, aiConfig.BaseURL)
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if aiConfig.Temperature > 0 {
		temperature = float32(aiConfig.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: aiConfig.Model, // In Azure, this is the deployment name
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		logger.Infof("[AI] Azure OpenAI API error: %v", err)
		return "", fmt.Errorf("Azure OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	content := resp.Choices[0].Message.Content
	logger.Infof("[AI] Azure OpenAI response length: %d chars", len(content))
	return content, nil
}

// parseGeneratedCases extracts the JSON array from model output, tolerating
// markdown fences and surrounding prose.
func parseGeneratedCases(content string) ([]GeneratedCase, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var cases []GeneratedCase
	if err := json.Unmarshal([]byte(content[start:end+1]), &cases); err != nil {
		return nil, fmt.Errorf("invalid JSON from model: %w", err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("model returned an empty case list")
	}

	for i := range cases {
		if cases[i].Title == "" {
			return nil, fmt.Errorf("case %d has no title", i)
		}
		if !validPriority(cases[i].Priority) {
			cases[i].Priority = models.PriorityMedium
		}
	}
	return cases, nil
}
