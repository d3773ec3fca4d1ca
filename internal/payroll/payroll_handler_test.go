package payroll

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HirziKhalis/hrms-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	createFn   func(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	getByIDFn  func(ctx context.Context, id string) (PayrollResponse, error)
	listMineFn func(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	listAllFn  func(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]PayrollResponse, int64, error)
	markPaidFn func(ctx context.Context, id string) (PayrollResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) ListMine(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	return f.listMineFn(ctx, employeeID)
}
func (f *fakeService) ListAll(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]PayrollResponse, int64, error) {
	return f.listAllFn(ctx, page, limit, filter)
}
func (f *fakeService) MarkPaid(ctx context.Context, id string) (PayrollResponse, error) {
	return f.markPaidFn(ctx, id)
}

func TestHandler_Create_Idempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New().String()
	employeeID := uuid.New().String()
	idempKey := "key-123"

	validBody := func() []byte {
		b, _ := json.Marshal(CreatePayrollRequest{
			EmployeeID:  employeeID,
			PeriodMonth: 3,
			PeriodYear:  2026,
			BaseSalary:  "5000.00",
			Bonus:       "250.00",
			Deductions:  "99.75",
		})
		return b
	}

	t.Run("first request caches the response and releases the lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		resp := PayrollResponse{
			PayrollID:   uuid.New().String(),
			EmployeeID:  employeeID,
			PeriodMonth: 3,
			PeriodYear:  2026,
			BaseSalary:  "5000.00",
			Bonus:       "250.00",
			Deductions:  "99.75",
			NetSalary:   "5150.25",
			Status:      "created",
		}

		svc := &fakeService{
			createFn: func(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				return resp, nil
			},
		}

		handler := NewHandler(svc, rdb)
		router := gin.New()
		router.POST("/payroll",
			func(c *gin.Context) { c.Set("user_id", userID) },
			middleware.Idempotency(rdb),
			handler.Create,
		)

		cacheKey := "idemp:/payroll:" + userID + ":" + idempKey
		lockKey := cacheKey + ":lock"

		payload, err := json.Marshal(resp)
		require.NoError(t, err)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/payroll", bytes.NewReader(validBody()))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", idempKey)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), resp.PayrollID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replayed key returns the cached response without calling the service", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		svc := &fakeService{
			createFn: func(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
				t.Fatal("service must not run on a cache hit")
				return PayrollResponse{}, nil
			},
		}

		handler := NewHandler(svc, rdb)
		router := gin.New()
		router.POST("/payroll",
			func(c *gin.Context) { c.Set("user_id", userID) },
			middleware.Idempotency(rdb),
			handler.Create,
		)

		cacheKey := "idemp:/payroll:" + userID + ":" + idempKey
		mock.ExpectGet(cacheKey).SetVal(`{"payroll_id":"cached"}`)

		req := httptest.NewRequest(http.MethodPost, "/payroll", bytes.NewReader(validBody()))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", idempKey)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cached")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected while the lock is held", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		svc := &fakeService{
			createFn: func(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
				t.Fatal("service must not run while the lock is held")
				return PayrollResponse{}, nil
			},
		}

		handler := NewHandler(svc, rdb)
		router := gin.New()
		router.POST("/payroll",
			func(c *gin.Context) { c.Set("user_id", userID) },
			middleware.Idempotency(rdb),
			handler.Create,
		)

		cacheKey := "idemp:/payroll:" + userID + ":" + idempKey
		lockKey := cacheKey + ":lock"

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/payroll", bytes.NewReader(validBody()))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", idempKey)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
