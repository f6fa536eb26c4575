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

type CatalogService interface {
	CreateLottery(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error)
	GetLotteries(ctx context.Context) ([]domain.LotteryMaster, error)
	GetLottery(ctx context.Context, id uint) (domain.LotteryMaster, error)
	UpdateLottery(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error)
	DeleteLottery(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	svc  CatalogService
	uSvc UserService
}

func NewCatalogHandler(svc CatalogService, uSvc UserService) *CatalogHandler {
	return &CatalogHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func renderCatalogErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrLotteryNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrLotteryNotFound))
	case errors.Is(err, service.ErrLotteryNumberExists):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrLotteryNumberExists))
	case errors.Is(err, service.ErrInvalidTicketRange):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTicketRange))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func parseLotteryID(ctx *gin.Context) (uint, *response.Err) {
	lotteryID, err := strconv.ParseUint(ctx.Param("lotteryID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid lottery ID: %w", err))
	}

	return uint(lotteryID), nil
}

// HandleGetLotteries godoc
// @Summary      List the master lottery catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.LotteryMaster
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /lotteries [get]
// @Security     BearerAuth
func (h *CatalogHandler) HandleGetLotteries(ctx *gin.Context) {
	lotteries, err := h.svc.GetLotteries(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLotteries -> h.svc.GetLotteries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lotteries)
}

// requireSuperAdmin loads the authenticated user and rejects non-admins.
func (h *CatalogHandler) requireSuperAdmin(ctx *gin.Context) (domain.User, bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.User{}, false
	}

	if !user.IsSuperAdmin() {
		response.RenderErr(ctx, response.ErrForbidden(fmt.Errorf("user %v is not authorized to manage the catalog", user.ID)))
		return domain.User{}, false
	}

	return user, true
}

// HandleCreateLottery godoc
// @Summary      Add a game to the master catalog
// @Description  Super admin only.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body  request.LotteryRequest  true  "lottery details"
// @Success      201  {object}  domain.LotteryMaster
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/lotteries [post]
// @Security     BearerAuth
func (h *CatalogHandler) HandleCreateLottery(ctx *gin.Context) {
	if _, ok := h.requireSuperAdmin(ctx); !ok {
		return
	}

	var req request.LotteryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	master, err := h.svc.CreateLottery(ctx.Request.Context(), domain.LotteryMaster{
		LotteryNumber: req.LotteryNumber,
		Name:          req.Name,
		Price:         req.Price,
		StartNumber:   req.StartNumber,
		EndNumber:     req.EndNumber,
		Status:        domain.LotteryStatus(req.Status),
	})
	if err != nil {
		renderCatalogErr(ctx, "v1.HandleCreateLottery -> h.svc.CreateLottery", err)
		return
	}

	ctx.JSON(http.StatusCreated, master)
}

// HandleUpdateLottery godoc
// @Summary      Update a game in the master catalog
// @Description  Super admin only. Switching status to inactive blocks further scans of the game.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        lotteryID  path  int                     true  "Lottery ID"
// @Param        request    body  request.LotteryRequest  true  "lottery details"
// @Success      200  {object}  domain.LotteryMaster
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/lotteries/{lotteryID} [put]
// @Security     BearerAuth
func (h *CatalogHandler) HandleUpdateLottery(ctx *gin.Context) {
	if _, ok := h.requireSuperAdmin(ctx); !ok {
		return
	}

	lotteryID, respErr := parseLotteryID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.LotteryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	master, err := h.svc.UpdateLottery(ctx.Request.Context(), domain.LotteryMaster{
		ID:            lotteryID,
		LotteryNumber: req.LotteryNumber,
		Name:          req.Name,
		Price:         req.Price,
		StartNumber:   req.StartNumber,
		EndNumber:     req.EndNumber,
		Status:        domain.LotteryStatus(req.Status),
	})
	if err != nil {
		renderCatalogErr(ctx, "v1.HandleUpdateLottery -> h.svc.UpdateLottery", err)
		return
	}

	ctx.JSON(http.StatusOK, master)
}

// HandleDeleteLottery godoc
// @Summary      Remove a game from the master catalog
// @Description  Super admin only.
// @Tags         catalog
// @Produce      json
// @Param        lotteryID  path  int  true  "Lottery ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/lotteries/{lotteryID} [delete]
// @Security     BearerAuth
func (h *CatalogHandler) HandleDeleteLottery(ctx *gin.Context) {
	if _, ok := h.requireSuperAdmin(ctx); !ok {
		return
	}

	lotteryID, respErr := parseLotteryID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteLottery(ctx.Request.Context(), lotteryID); err != nil {
		renderCatalogErr(ctx, "v1.HandleDeleteLottery -> h.svc.DeleteLottery", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
