package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/backoffice/internal/api/handler/v1/response"
	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/service"
)

type ReportService interface {
	GetDailyReport(ctx context.Context, storeID uint, query service.ReportQuery) (domain.DailyReportSummary, error)
	GetMonthlyReport(ctx context.Context, storeID uint, month string) (domain.MonthlyReport, error)
}

type ReportHandler struct {
	svc      ReportService
	storeSvc StoreAuthorizer
	uSvc     UserService
}

func NewReportHandler(svc ReportService, storeSvc StoreAuthorizer, uSvc UserService) *ReportHandler {
	return &ReportHandler{
		svc:      svc,
		storeSvc: storeSvc,
		uSvc:     uSvc,
	}
}

// HandleGetDailyReport godoc
// @Summary      Get per-book sales for a date window
// @Description  Returns one row per book that sold tickets in the window. The window is a single date, or one of the ranges today, last7, this_month or custom with start_date and end_date.
// @Tags         reports
// @Produce      json
// @Param        storeID     path   int     true   "Store ID"
// @Param        date        query  string  false  "Single day (YYYY-MM-DD)"
// @Param        range       query  string  false  "today | last7 | this_month | custom"
// @Param        start_date  query  string  false  "Window start (YYYY-MM-DD), range=custom only"
// @Param        end_date    query  string  false  "Window end (YYYY-MM-DD), range=custom only"
// @Success      200  {object}  domain.DailyReportSummary
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/store/{storeID}/daily [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleGetDailyReport(ctx *gin.Context) {
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
		renderStoreErr(ctx, "v1.HandleGetDailyReport -> h.storeSvc.AuthorizeAccess", err)
		return
	}

	summary, err := h.svc.GetDailyReport(ctx.Request.Context(), storeID, service.ReportQuery{
		Date:      ctx.Query("date"),
		Range:     ctx.Query("range"),
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetDailyReport -> h.svc.GetDailyReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleGetMonthlyReport godoc
// @Summary      Get a monthly sales rollup
// @Description  Returns per-day and per-game totals for a calendar month.
// @Tags         reports
// @Produce      json
// @Param        storeID  path   int     true  "Store ID"
// @Param        month    query  string  true  "Month (YYYY-MM)"
// @Success      200  {object}  domain.MonthlyReport
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/store/{storeID}/monthly [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleGetMonthlyReport(ctx *gin.Context) {
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
		renderStoreErr(ctx, "v1.HandleGetMonthlyReport -> h.storeSvc.AuthorizeAccess", err)
		return
	}

	report, err := h.svc.GetMonthlyReport(ctx.Request.Context(), storeID, ctx.Query("month"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetMonthlyReport -> h.svc.GetMonthlyReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
