package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
)

func newEventRouter(svc *mockEventService) *gin.Engine {
	router := gin.New()
	h := NewEventHandler(svc, &mockStatsService{})
	router.GET("/api/events", h.List)
	router.GET("/api/events/:id", h.Get)
	router.GET("/api/admin/events", h.ListAdmin)
	router.DELETE("/api/admin/events/:id", h.Delete)
	return router
}

func TestEventHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := &mockEventService{
			ListFunc: func(_ context.Context, filter repository.EventFilter) ([]*dto.EventResponse, error) {
				assert.True(t, filter.UpcomingOnly)
				assert.Equal(t, "aula", filter.Search)
				assert.Equal(t, 10, filter.Limit)
				assert.False(t, filter.IncludeInactive)
				return []*dto.EventResponse{{ID: "event-1", Title: "Campus-Rallye"}}, nil
			},
		}
		w := doJSON(newEventRouter(svc), http.MethodGet, "/api/events?upcoming=true&search=aula&limit=10", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Campus-Rallye")
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		w := doJSON(newEventRouter(&mockEventService{}), http.MethodGet, "/api/events?date=22.09.2025", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		w := doJSON(newEventRouter(&mockEventService{}), http.MethodGet, "/api/events?limit=-5", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin listing includes inactive", func(t *testing.T) {
		svc := &mockEventService{
			ListFunc: func(_ context.Context, filter repository.EventFilter) ([]*dto.EventResponse, error) {
				assert.True(t, filter.IncludeInactive)
				return nil, nil
			},
		}
		w := doJSON(newEventRouter(svc), http.MethodGet, "/api/admin/events", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEventHandler_Get(t *testing.T) {
	svc := &mockEventService{
		GetFunc: func(_ context.Context, id string) (*dto.EventResponse, error) {
			return nil, domain.ErrEventNotFound
		},
	}
	w := doJSON(newEventRouter(svc), http.MethodGet, "/api/events/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandler_Delete(t *testing.T) {
	svc := &mockEventService{
		DeactivateFunc: func(_ context.Context, id string) error {
			assert.Equal(t, "event-1", id)
			return nil
		},
	}
	w := doJSON(newEventRouter(svc), http.MethodDelete, "/api/admin/events/event-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Event deactivated")
}
