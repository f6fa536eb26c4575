package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lottotrack/backoffice/internal/config"
	"github.com/lottotrack/backoffice/internal/domain"
)

var ErrChatUnavailable = errors.New("chat assistant is unavailable")

const chatSystemPrompt = "You are a helpful assistant for lottery retail store staff. " +
	"Answer questions about scratch-off ticket inventory, scanning and daily sales reports."

type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

// ChatService proxies conversations to an external LLM chat-completions
// API. Nothing is persisted; history travels with each request.
type ChatService struct {
	conf   *config.ChatConfig
	client *http.Client
}

func NewChatService(conf *config.ChatConfig) *ChatService {
	return &ChatService{
		conf: conf,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *ChatService) Complete(ctx context.Context, messages []domain.ChatMessage) (domain.ChatMessage, error) {
	payload := chatCompletionRequest{
		Model: s.conf.Model,
		Messages: append([]domain.ChatMessage{
			{Role: "system", Content: chatSystemPrompt},
		}, messages...),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.conf.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.conf.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("%w: %v", ErrChatUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)

		return domain.ChatMessage{}, fmt.Errorf("%w: upstream status %d", ErrChatUnavailable, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err = json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("%w: %v", ErrChatUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return domain.ChatMessage{}, fmt.Errorf("%w: empty completion", ErrChatUnavailable)
	}

	return completion.Choices[0].Message, nil
}
