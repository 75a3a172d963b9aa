package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
)

func newRegistrationRouter(svc *mockRegistrationService) *gin.Engine {
	router := gin.New()
	h := NewRegistrationHandler(svc)
	router.POST("/api/events/:id/register", h.Register)
	router.GET("/api/unsubscribe/:token", h.GetUnsubscribe)
	router.POST("/api/unsubscribe/:token", h.Unsubscribe)
	router.GET("/api/admin/registrations", h.List)
	router.PATCH("/api/admin/registrations/:id/status", h.UpdateStatus)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegistrationHandler_Register(t *testing.T) {
	validBody := `{"first_name":"Lena","last_name":"Schmidt","email":"lena@example.com","group_id":"group-1"}`

	t.Run("created", func(t *testing.T) {
		svc := &mockRegistrationService{
			RegisterFunc: func(_ context.Context, eventID string, req *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
				assert.Equal(t, "event-1", eventID)
				assert.Equal(t, "Lena", req.FirstName)
				return &dto.RegistrationResponse{ID: "reg-1", Status: "CONFIRMED"}, nil
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/events/event-1/register", validBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "reg-1")
	})

	t.Run("full group maps to 409 GROUP_FULL", func(t *testing.T) {
		svc := &mockRegistrationService{
			RegisterFunc: func(context.Context, string, *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
				return nil, domain.ErrGroupFull
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/events/event-1/register", validBody)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "GROUP_FULL")
	})

	t.Run("inactive event maps to 404", func(t *testing.T) {
		svc := &mockRegistrationService{
			RegisterFunc: func(context.Context, string, *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
				return nil, domain.ErrEventInactive
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/events/event-1/register", validBody)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "EVENT_INACTIVE")
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		svc := &mockRegistrationService{
			RegisterFunc: func(context.Context, string, *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
				return nil, domain.ErrInvalidEmail
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/events/event-1/register", validBody)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(newRegistrationRouter(&mockRegistrationService{}), http.MethodPost, "/api/events/event-1/register", `{"first_name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unexpected error maps to opaque 500", func(t *testing.T) {
		svc := &mockRegistrationService{
			RegisterFunc: func(context.Context, string, *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
				return nil, errors.New("connection refused")
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/events/event-1/register", validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestRegistrationHandler_Unsubscribe(t *testing.T) {
	t.Run("get shows registration", func(t *testing.T) {
		svc := &mockRegistrationService{
			GetByUnsubscribeTokenFunc: func(_ context.Context, token string) (*dto.UnsubscribeResponse, error) {
				assert.Equal(t, "tok-1", token)
				return &dto.UnsubscribeResponse{
					Registration: &dto.RegistrationResponse{ID: "reg-1", Status: "CONFIRMED"},
					Event:        &dto.EventResponse{ID: "event-1", Title: "Campus-Rallye"},
				}, nil
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodGet, "/api/unsubscribe/tok-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Campus-Rallye")
	})

	t.Run("cancel succeeds", func(t *testing.T) {
		svc := &mockRegistrationService{
			CancelByUnsubscribeTokenFunc: func(_ context.Context, token string) error {
				assert.Equal(t, "tok-1", token)
				return nil
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/unsubscribe/tok-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Registration cancelled")
	})

	t.Run("already cancelled maps to 409", func(t *testing.T) {
		svc := &mockRegistrationService{
			CancelByUnsubscribeTokenFunc: func(context.Context, string) error {
				return domain.ErrAlreadyCancelled
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/unsubscribe/tok-1", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown token maps to 404", func(t *testing.T) {
		svc := &mockRegistrationService{
			CancelByUnsubscribeTokenFunc: func(context.Context, string) error {
				return domain.ErrRegistrationNotFound
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPost, "/api/unsubscribe/tok-x", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRegistrationHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := &mockRegistrationService{
			ListFunc: func(_ context.Context, filter repository.RegistrationFilter) ([]*dto.RegistrationResponse, error) {
				assert.Equal(t, "event-1", filter.EventID)
				assert.Equal(t, domain.RegistrationStatusConfirmed, filter.Status)
				assert.Equal(t, "schmidt", filter.Search)
				assert.Equal(t, 25, filter.Limit)
				return []*dto.RegistrationResponse{{ID: "reg-1"}}, nil
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodGet, "/api/admin/registrations?event_id=event-1&status=CONFIRMED&search=schmidt&limit=25", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		w := doJSON(newRegistrationRouter(&mockRegistrationService{}), http.MethodGet, "/api/admin/registrations?status=DELETED", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		w := doJSON(newRegistrationRouter(&mockRegistrationService{}), http.MethodGet, "/api/admin/registrations?limit=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegistrationHandler_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockRegistrationService{
			UpdateStatusFunc: func(_ context.Context, id, status string) (*dto.RegistrationResponse, error) {
				assert.Equal(t, "reg-1", id)
				assert.Equal(t, "CANCELLED", status)
				return &dto.RegistrationResponse{ID: "reg-1", Status: "CANCELLED"}, nil
			},
		}
		w := doJSON(newRegistrationRouter(svc), http.MethodPatch, "/api/admin/registrations/reg-1/status", `{"status":"CANCELLED"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing status", func(t *testing.T) {
		w := doJSON(newRegistrationRouter(&mockRegistrationService{}), http.MethodPatch, "/api/admin/registrations/reg-1/status", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
