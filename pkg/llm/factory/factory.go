package factory

import (
	"fmt"

	"github.com/YarinTwito/whatsapp-smart-agent/pkg/llm"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/llm/gemini"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
