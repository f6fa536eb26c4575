package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/backoffice/internal/api/handler/v1/request"
	"github.com/lottotrack/backoffice/internal/api/handler/v1/response"
	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/service"
)

type ChatService interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (domain.ChatMessage, error)
}

type ChatHandler struct {
	svc  ChatService
	uSvc UserService
}

func NewChatHandler(svc ChatService, uSvc UserService) *ChatHandler {
	return &ChatHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleChat godoc
// @Summary      Ask the retail assistant
// @Description  Forwards the conversation to the configured LLM backend and returns the assistant's reply.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body  request.ChatRequest  true  "conversation so far"
// @Success      200  {object}  domain.ChatMessage
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /chat [post]
// @Security     BearerAuth
func (h *ChatHandler) HandleChat(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reply, err := h.svc.Complete(ctx.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, service.ErrChatUnavailable) {
			response.RenderErr(ctx, response.ErrBadGateway(service.ErrChatUnavailable))
			return
		}

		err = fmt.Errorf("v1.HandleChat -> h.svc.Complete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reply)
}
