package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/lottotrack/backoffice/internal/domain"
)

type ChatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

func (req *ChatRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Messages, validation.Required, validation.Length(1, 50)),
	)
}
