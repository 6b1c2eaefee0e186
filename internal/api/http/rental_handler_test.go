package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/repository"
)

type fakeCheckoutService struct {
	reserveFn  func(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error)
	checkoutFn func(ctx context.Context, reservation *domain.Reservation, checkout time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error)
}

func (f *fakeCheckoutService) Reserve(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error) {
	return f.reserveFn(ctx, code)
}

func (f *fakeCheckoutService) Checkout(ctx context.Context, reservation *domain.Reservation, checkout time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error) {
	return f.checkoutFn(ctx, reservation, checkout, duration, discountPercent)
}

type fakeResolver struct {
	tools  map[domain.ToolCode]domain.Tool
	prices map[domain.ToolType]domain.RentalPrice
}

func (f *fakeResolver) GetTool(ctx context.Context, code domain.ToolCode) (*domain.Tool, error) {
	tool, ok := f.tools[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tool, nil
}

func (f *fakeResolver) GetRentalPrice(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error) {
	price, ok := f.prices[toolType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &price, nil
}

func (f *fakeResolver) IsValidTool(ctx context.Context, tool domain.Tool) bool {
	resolved, ok := f.tools[tool.Code]
	return ok && resolved.Equal(tool)
}

func testResolver() *fakeResolver {
	return &fakeResolver{
		tools: map[domain.ToolCode]domain.Tool{
			domain.ToolCodeLADW: {Brand: domain.ToolBrandWerner, Code: domain.ToolCodeLADW, Type: domain.ToolTypeLadder},
		},
		prices: map[domain.ToolType]domain.RentalPrice{
			domain.ToolTypeLadder: {
				Type:          domain.ToolTypeLadder,
				DailyCharge:   decimal.RequireFromString("1.99"),
				WeekdayCharge: true,
				WeekendCharge: true,
			},
		},
	}
}

func serve(h *RentalHandler, method, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleReserve(t *testing.T) {
	t.Run("Returns the reservation on success", func(t *testing.T) {
		id := domain.NewReservationID()
		checkout := &fakeCheckoutService{
			reserveFn: func(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error) {
				assert.Equal(t, domain.ToolCodeLADW, code)
				return &domain.Reservation{ID: id}, nil
			},
		}
		h := NewRentalHandler(checkout, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations", `{"tool_code": "LADW"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var reservation domain.Reservation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reservation))
		assert.Equal(t, id, reservation.ID)
	})

	t.Run("Rejects a request without a tool code", func(t *testing.T) {
		h := NewRentalHandler(&fakeCheckoutService{}, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Maps an unknown code to 404", func(t *testing.T) {
		checkout := &fakeCheckoutService{
			reserveFn: func(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error) {
				return nil, repository.ErrNotFound
			},
		}
		h := NewRentalHandler(checkout, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations", `{"tool_code": "NOPE"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Maps an exhausted inventory to 409", func(t *testing.T) {
		checkout := &fakeCheckoutService{
			reserveFn: func(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error) {
				return nil, repository.ErrReservationFailed
			},
		}
		h := NewRentalHandler(checkout, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations", `{"tool_code": "LADW"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandleCheckout(t *testing.T) {
	validBody := `{
		"reservation_id": "abc||2020-07-02T00:00:00Z",
		"tool_code": "LADW",
		"checkout_date": "2020-07-02",
		"rental_days": 3,
		"discount_percent": 10
	}`

	t.Run("Returns the agreement and its summary on success", func(t *testing.T) {
		agreement := &domain.RentalAgreement{
			ToolBrand:         domain.ToolBrandWerner,
			ToolCode:          domain.ToolCodeLADW,
			ToolType:          domain.ToolTypeLadder,
			Checkout:          time.Date(2020, time.July, 2, 0, 0, 0, 0, time.UTC),
			Due:               time.Date(2020, time.July, 5, 0, 0, 0, 0, time.UTC),
			RentalDays:        3,
			ChargeDays:        2,
			DailyCharge:       decimal.RequireFromString("1.99"),
			PrediscountCharge: decimal.RequireFromString("3.98"),
			DiscountPercent:   10,
			DiscountAmount:    decimal.RequireFromString("0.40"),
			FinalCharge:       decimal.RequireFromString("3.58"),
		}
		checkout := &fakeCheckoutService{
			checkoutFn: func(ctx context.Context, reservation *domain.Reservation, at time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error) {
				assert.Equal(t, domain.ToolCodeLADW, reservation.Tool.Code)
				assert.Equal(t, 3*24*time.Hour, duration)
				assert.Equal(t, 10, discountPercent)
				return agreement, nil
			},
		}
		h := NewRentalHandler(checkout, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations/checkout", validBody)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp checkoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Agreement)
		assert.Equal(t, 2, resp.Agreement.ChargeDays)
		assert.Contains(t, resp.Summary, "Final charge: $3.58")
	})

	t.Run("Rejects a malformed checkout date", func(t *testing.T) {
		h := NewRentalHandler(&fakeCheckoutService{}, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations/checkout",
			`{"reservation_id": "abc", "tool_code": "LADW", "checkout_date": "07/02/2020"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Maps an unknown tool code to 404", func(t *testing.T) {
		h := NewRentalHandler(&fakeCheckoutService{}, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations/checkout",
			`{"reservation_id": "abc", "tool_code": "NOPE", "checkout_date": "2020-07-02", "rental_days": 3}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Returns every violation with 422", func(t *testing.T) {
		checkout := &fakeCheckoutService{
			checkoutFn: func(ctx context.Context, reservation *domain.Reservation, at time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error) {
				return nil, domain.ValidationErrors{domain.ErrInvalidRentalDuration, domain.ErrInvalidRentalDiscount}
			},
		}
		h := NewRentalHandler(checkout, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations/checkout", validBody)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Violations []string `json:"violations"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Violations, 2)
		assert.Equal(t, domain.ErrInvalidRentalDuration.Error(), resp.Violations[0])
		assert.Equal(t, domain.ErrInvalidRentalDiscount.Error(), resp.Violations[1])
	})

	t.Run("Maps a dead reservation to 409", func(t *testing.T) {
		checkout := &fakeCheckoutService{
			checkoutFn: func(ctx context.Context, reservation *domain.Reservation, at time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error) {
				return nil, repository.ErrCheckoutFailed
			},
		}
		h := NewRentalHandler(checkout, testResolver())

		rec := serve(h, http.MethodPost, "/api/reservations/checkout", validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
