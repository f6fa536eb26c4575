package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/backoffice/internal/api/handler/v1/request"
	"github.com/lottotrack/backoffice/internal/api/handler/v1/response"
	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/service"
)

type StoreService interface {
	CreateStore(ctx context.Context, store domain.Store) (domain.Store, error)
	GetStores(ctx context.Context, user domain.User) ([]domain.Store, error)
	UpdateStore(ctx context.Context, user domain.User, store domain.Store) (domain.Store, error)
	DeleteStore(ctx context.Context, user domain.User, storeID uint) error
	GetInventory(ctx context.Context, user domain.User, storeID uint) ([]domain.InventoryItem, error)
	GetNotificationSetting(ctx context.Context, user domain.User, storeID uint) (domain.NotificationSetting, error)
	UpdateNotificationSetting(ctx context.Context, user domain.User, setting domain.NotificationSetting) (domain.NotificationSetting, error)
}

type StoreHandler struct {
	svc  StoreService
	uSvc UserService
}

func NewStoreHandler(svc StoreService, uSvc UserService) *StoreHandler {
	return &StoreHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func renderStoreErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrStoreNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrStoreNotFound))
	case errors.Is(err, service.ErrStoreAccessDenied):
		response.RenderErr(ctx, response.ErrForbidden(service.ErrStoreAccessDenied))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func parseStoreID(ctx *gin.Context) (uint, *response.Err) {
	storeID, err := strconv.ParseUint(ctx.Param("storeID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid store ID: %w", err))
	}

	return uint(storeID), nil
}

// HandleCreateStore godoc
// @Summary      Create a store
// @Description  Creates a store owned by the authenticated user. Clerks cannot create stores.
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request  body  request.StoreRequest  true  "store details"
// @Success      201  {object}  domain.Store
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores [post]
// @Security     BearerAuth
func (h *StoreHandler) HandleCreateStore(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role == domain.RoleClerk {
		response.RenderErr(ctx, response.ErrForbidden(fmt.Errorf("user %v is not authorized to create stores", user.ID)))
		return
	}

	var req request.StoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	store, err := h.svc.CreateStore(ctx.Request.Context(), domain.Store{
		OwnerID: user.ID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateStore -> h.svc.CreateStore -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, store)
}

// HandleGetStores godoc
// @Summary      List stores visible to the user
// @Description  Owners see their own stores, clerks see the store they are attached to.
// @Tags         stores
// @Produce      json
// @Success      200  {array}   domain.Store
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores [get]
// @Security     BearerAuth
func (h *StoreHandler) HandleGetStores(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stores, err := h.svc.GetStores(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStores -> h.svc.GetStores -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stores)
}

// HandleUpdateStore godoc
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        storeID  path  int                   true  "Store ID"
// @Param        request  body  request.StoreRequest  true  "store details"
// @Success      200  {object}  domain.Store
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores/{storeID} [put]
// @Security     BearerAuth
func (h *StoreHandler) HandleUpdateStore(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	storeID, respErr := parseStoreID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	store, err := h.svc.UpdateStore(ctx.Request.Context(), user, domain.Store{
		ID:      storeID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		renderStoreErr(ctx, "v1.HandleUpdateStore -> h.svc.UpdateStore", err)
		return
	}

	ctx.JSON(http.StatusOK, store)
}

// HandleDeleteStore godoc
// @Summary      Delete a store
// @Description  Deletes the store together with its inventories, scan logs, reports and notification settings. Clerks attached to it are detached.
// @Tags         stores
// @Produce      json
// @Param        storeID  path  int  true  "Store ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores/{storeID} [delete]
// @Security     BearerAuth
func (h *StoreHandler) HandleDeleteStore(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	storeID, respErr := parseStoreID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteStore(ctx.Request.Context(), user, storeID); err != nil {
		renderStoreErr(ctx, "v1.HandleDeleteStore -> h.svc.DeleteStore", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetInventory godoc
// @Summary      List the active books of a store
// @Description  Returns one row per tracked book with its master catalog data, remaining tickets and game status.
// @Tags         stores,inventory
// @Produce      json
// @Param        storeID  path  int  true  "Store ID"
// @Success      200  {array}   domain.InventoryItem
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores/{storeID}/inventory [get]
// @Security     BearerAuth
func (h *StoreHandler) HandleGetInventory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	storeID, respErr := parseStoreID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.GetInventory(ctx.Request.Context(), user, storeID)
	if err != nil {
		renderStoreErr(ctx, "v1.HandleGetInventory -> h.svc.GetInventory", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetNotificationSetting godoc
// @Summary      Get notification settings for a store
// @Tags         stores,notifications
// @Produce      json
// @Param        storeID  path  int  true  "Store ID"
// @Success      200  {object}  domain.NotificationSetting
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores/{storeID}/notifications [get]
// @Security     BearerAuth
func (h *StoreHandler) HandleGetNotificationSetting(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	storeID, respErr := parseStoreID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	setting, err := h.svc.GetNotificationSetting(ctx.Request.Context(), user, storeID)
	if err != nil {
		renderStoreErr(ctx, "v1.HandleGetNotificationSetting -> h.svc.GetNotificationSetting", err)
		return
	}

	ctx.JSON(http.StatusOK, setting)
}

// HandleUpdateNotificationSetting godoc
// @Summary      Update notification settings for a store
// @Tags         stores,notifications
// @Accept       json
// @Produce      json
// @Param        storeID  path  int                                 true  "Store ID"
// @Param        request  body  request.NotificationSettingRequest  true  "settings"
// @Success      200  {object}  domain.NotificationSetting
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stores/{storeID}/notifications [put]
// @Security     BearerAuth
func (h *StoreHandler) HandleUpdateNotificationSetting(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	storeID, respErr := parseStoreID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.NotificationSettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	setting, err := h.svc.UpdateNotificationSetting(ctx.Request.Context(), user, domain.NotificationSetting{
		StoreID:           storeID,
		LowStockThreshold: req.LowStockThreshold,
		NotifyOnFinished:  req.NotifyOnFinished,
		Email:             req.Email,
	})
	if err != nil {
		renderStoreErr(ctx, "v1.HandleUpdateNotificationSetting -> h.svc.UpdateNotificationSetting", err)
		return
	}

	ctx.JSON(http.StatusOK, setting)
}
