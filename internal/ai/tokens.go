package ai

import (
	"github.com/pkoukk/tiktoken-go"

	"storyteller/internal/model"
)

const fallbackEncoding = "cl100k_base"

// estimatePromptTokens возвращает примерный подсчет токенов запроса.
// Best effort only: used for debug logging, never to gate a request. Returns
// 0 when no tokenizer is available for the model.
func estimatePromptTokens(req model.ChatRequest) int {
	tke, err := tiktoken.EncodingForModel(req.Model)
	if err != nil {
		if tke, err = tiktoken.GetEncoding(fallbackEncoding); err != nil {
			return 0
		}
	}
	total := 0
	for _, m := range req.Messages {
		total += len(tke.Encode(m.Content, nil, nil))
	}
	return total
}
