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
	"github.com/lottotrack/backoffice/internal/pkg/barcode"
	"github.com/lottotrack/backoffice/internal/service"
)

type ScanService interface {
	ProcessScan(ctx context.Context, input service.ScanInput) (domain.ScanResult, error)
	GetHistory(ctx context.Context, storeID uint, limit int) ([]domain.ScanHistoryEntry, error)
}

type StoreAuthorizer interface {
	AuthorizeAccess(ctx context.Context, user domain.User, storeID uint) (domain.Store, error)
}

type ScanHandler struct {
	svc      ScanService
	storeSvc StoreAuthorizer
	uSvc     UserService
}

func NewScanHandler(svc ScanService, storeSvc StoreAuthorizer, uSvc UserService) *ScanHandler {
	return &ScanHandler{
		svc:      svc,
		storeSvc: storeSvc,
		uSvc:     uSvc,
	}
}

// isScanRejection reports whether the scan failed because of the scan
// itself rather than the system, so it maps to a 400.
func isScanRejection(err error) bool {
	return errors.Is(err, barcode.ErrInvalidFormat) ||
		errors.Is(err, barcode.ErrInvalidNumber) ||
		errors.Is(err, barcode.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidDirection) ||
		errors.Is(err, service.ErrOutOfRange) ||
		errors.Is(err, service.ErrDirectionRequired) ||
		errors.Is(err, service.ErrDirectionConflict) ||
		errors.Is(err, service.ErrBackwardMovement) ||
		errors.Is(err, service.ErrForwardMovement) ||
		errors.Is(err, service.ErrBookExhausted)
}

// HandleScan godoc
// @Summary      Process a ticket scan
// @Description  Decodes the barcode, looks the game up in the master catalog and reconciles the book's inventory. Unknown or inactive games return 200 with game_active=false.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        request  body  request.ScanRequest  true  "scan payload"
// @Success      200  {object}  domain.ScanResult
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /scan [post]
// @Security     BearerAuth
func (h *ScanHandler) HandleScan(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, err := h.storeSvc.AuthorizeAccess(ctx.Request.Context(), user, req.StoreID); err != nil {
		renderStoreErr(ctx, "v1.HandleScan -> h.storeSvc.AuthorizeAccess", err)
		return
	}

	result, err := h.svc.ProcessScan(ctx.Request.Context(), service.ScanInput{
		StoreID: req.StoreID,
		Payload: barcode.Payload{
			Raw:           req.BarcodeData,
			LotteryNumber: req.LotteryNumber,
			TicketSerial:  req.TicketSerial,
			TicketNumber:  req.TicketNumber.String(),
		},
		Direction: req.Direction,
		ScannedBy: user.ID,
	})
	if err != nil {
		if isScanRejection(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleScan -> h.svc.ProcessScan -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleGetScanHistory godoc
// @Summary      Get recent scans for a store
// @Tags         scan
// @Produce      json
// @Param        storeID  path   int  true   "Store ID"
// @Param        limit    query  int  false  "Number of scans to return (default 50, max 200)"
// @Success      200  {array}   domain.ScanHistoryEntry
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /scan/history/{storeID} [get]
// @Security     BearerAuth
func (h *ScanHandler) HandleGetScanHistory(ctx *gin.Context) {
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

	if _, err := h.storeSvc.AuthorizeAccess(ctx.Request.Context(), user, storeID); err != nil {
		renderStoreErr(ctx, "v1.HandleGetScanHistory -> h.storeSvc.AuthorizeAccess", err)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit: %w", err)))
		return
	}

	entries, err := h.svc.GetHistory(ctx.Request.Context(), storeID, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetScanHistory -> h.svc.GetHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
