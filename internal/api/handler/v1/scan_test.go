package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/lottotrack/backoffice/internal/api/handler/v1"
	"github.com/lottotrack/backoffice/internal/api/middleware"
	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/service"
)

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) DeleteAccount(_ context.Context, _ domain.User, _ uint) error {
	return nil
}

type stubScanService struct {
	result domain.ScanResult
	err    error
}

func (s *stubScanService) ProcessScan(_ context.Context, _ service.ScanInput) (domain.ScanResult, error) {
	return s.result, s.err
}

func (s *stubScanService) GetHistory(_ context.Context, _ uint, _ int) ([]domain.ScanHistoryEntry, error) {
	return nil, nil
}

type stubAuthorizer struct {
	err error
}

func (s *stubAuthorizer) AuthorizeAccess(_ context.Context, _ domain.User, storeID uint) (domain.Store, error) {
	return domain.Store{ID: storeID}, s.err
}

func newScanRouter(svc v1.ScanService, authorizer v1.StoreAuthorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := v1.NewScanHandler(svc, authorizer, &stubUserService{
		user: domain.User{ID: 42, Role: domain.RoleOwner},
	})

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, uint(42))
	})
	router.POST("/scan", handler.HandleScan)

	return router
}

func postScan(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestScanHandler_HandleScan_StatusMapping(t *testing.T) {
	validBody := `{"store_id": 1, "barcode_data": "045-000123-015"}`

	tests := []struct {
		name       string
		body       string
		svc        *stubScanService
		authorizer *stubAuthorizer
		wantStatus int
	}{
		{
			name:       "engine rejection maps to 400",
			body:       validBody,
			svc:        &stubScanService{err: service.ErrBackwardMovement},
			authorizer: &stubAuthorizer{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing direction maps to 400",
			body:       validBody,
			svc:        &stubScanService{err: service.ErrDirectionRequired},
			authorizer: &stubAuthorizer{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "access denied maps to 403",
			body:       validBody,
			svc:        &stubScanService{},
			authorizer: &stubAuthorizer{err: service.ErrStoreAccessDenied},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing store maps to 404",
			body:       validBody,
			svc:        &stubScanService{},
			authorizer: &stubAuthorizer{err: service.ErrStoreNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "infrastructure failure maps to 500",
			body:       validBody,
			svc:        &stubScanService{err: context.DeadlineExceeded},
			authorizer: &stubAuthorizer{},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "missing store_id maps to 400",
			body:       `{"barcode_data": "045-000123-015"}`,
			svc:        &stubScanService{},
			authorizer: &stubAuthorizer{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "both payload shapes at once map to 400",
			body:       `{"store_id": 1, "barcode_data": "045-000123-015", "lottery_number": "045", "ticket_serial": "000123", "ticket_number": 15}`,
			svc:        &stubScanService{},
			authorizer: &stubAuthorizer{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newScanRouter(tt.svc, tt.authorizer)

			recorder := postScan(t, router, tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestScanHandler_HandleScan_InactiveGameIsNotAnError(t *testing.T) {
	svc := &stubScanService{result: domain.ScanResult{
		GameActive: false,
		Reason:     domain.ScanReasonInactive,
	}}
	router := newScanRouter(svc, &stubAuthorizer{})

	recorder := postScan(t, router, `{"store_id": 1, "barcode_data": "045-000123-015"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"game_active":false`)
	assert.Contains(t, recorder.Body.String(), domain.ScanReasonInactive)
}

func TestScanHandler_HandleScan_TicketNumberAsString(t *testing.T) {
	svc := &stubScanService{result: domain.ScanResult{GameActive: true}}
	router := newScanRouter(svc, &stubAuthorizer{})

	recorder := postScan(t, router,
		`{"store_id": 1, "lottery_number": "045", "ticket_serial": "000123", "ticket_number": "015", "direction": "asc"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
