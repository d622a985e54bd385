package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI-compatible provider constants. Groq exposes the same wire protocol,
// so the Groq backend is this provider with GroqBaseURL and a Groq model.
const (
	OpenAIDefaultModel = "gpt-4o-mini"

	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqDefaultModel = "llama-3.1-8b-instant"
)

func init() {
	RegisterProviderFactory("openai", newOpenAIProvider)
}

// openAIProvider implements CoreLLM against any OpenAI-compatible chat
// completion endpoint.
type openAIProvider struct {
	client       *openai.Client
	model        string
	tokenCounter *TokenCounter
}

func newOpenAIProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = OpenAIDefaultModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &openAIProvider{
		client:       openai.NewClientWithConfig(clientConfig),
		model:        model,
		tokenCounter: NewTokenCounter(),
	}, nil
}

// DoRequest sends one chat completion request and returns the generated
// text with token usage.
func (p *openAIProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	options := ParseRequestOptions(opts, p.model)

	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(prompt, options))
	if err != nil {
		return "", 0, 0, classifyError(p.model, "chat_completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", 0, 0, classifyError(p.model, "chat_completion", ErrNoResponseChoice)
	}

	content := resp.Choices[0].Message.Content
	tokensIn := p.tokenCounter.Count(resp.Usage.PromptTokens, prompt)
	tokensOut := p.tokenCounter.Count(resp.Usage.CompletionTokens, content)

	return content, tokensIn, tokensOut, nil
}

func (p *openAIProvider) buildRequest(prompt string, options RequestOptions) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if options.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: options.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:     options.Model,
		Messages:  messages,
		MaxTokens: options.MaxTokens,
	}

	if options.Temperature != nil {
		req.Temperature = float32(*options.Temperature)
	}

	return req
}

// GetModel returns the configured model name.
func (p *openAIProvider) GetModel() string { return p.model }
