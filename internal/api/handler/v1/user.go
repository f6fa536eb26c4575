package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/backoffice/internal/api/handler/v1/response"
	"github.com/lottotrack/backoffice/internal/api/middleware"
	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	DeleteAccount(ctx context.Context, requester domain.User, targetID uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// getUserFromContext loads the authenticated user set by the JWT middleware.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	rawID, exists := ctx.Get(middleware.CtxKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("user not authenticated")
	}

	userID, ok := rawID.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("invalid user ID in context")
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized("user no longer exists")
		}

		err = fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

// HandleGetUser godoc
// @Summary      Get a user profile
// @Description  Users can read themselves; the super admin can read anyone.
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	requester, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	targetID, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	if requester.ID != uint(targetID) && !requester.IsSuperAdmin() {
		response.RenderErr(ctx, response.ErrForbidden(fmt.Errorf("user %v cannot read user %v", requester.ID, targetID)))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), uint(targetID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete an owner account and everything it owns
// @Description  Removes the owner, their stores, inventories, scan logs, reports and clerk accounts. Owners may delete themselves; super admins may delete any owner.
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "User ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [delete]
// @Security     BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	targetID, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	err = h.svc.DeleteAccount(ctx.Request.Context(), user, uint(targetID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
		case errors.Is(err, service.ErrDeleteForbidden):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrDeleteForbidden))
		default:
			err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteAccount -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
