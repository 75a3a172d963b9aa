package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
)

func newContactRouter(svc *mockContactService) *gin.Engine {
	router := gin.New()
	h := NewContactHandler(svc)
	router.POST("/api/contact", h.Create)
	router.GET("/api/admin/contact-messages", h.List)
	return router
}

func TestContactHandler_Create(t *testing.T) {
	validBody := `{"name":"Lena","email":"lena@example.com","subject":"Frage","message":"Kann ich die Gruppe wechseln?"}`

	t.Run("created", func(t *testing.T) {
		svc := &mockContactService{
			SubmitFunc: func(_ context.Context, req *dto.ContactRequest) (*dto.ContactMessageResponse, error) {
				assert.Equal(t, "Lena", req.Name)
				return &dto.ContactMessageResponse{ID: "msg-1"}, nil
			},
		}
		w := doJSON(newContactRouter(svc), http.MethodPost, "/api/contact", validBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "msg-1")
	})

	t.Run("short message maps to 400", func(t *testing.T) {
		svc := &mockContactService{
			SubmitFunc: func(context.Context, *dto.ContactRequest) (*dto.ContactMessageResponse, error) {
				return nil, domain.ErrMessageTooShort
			},
		}
		w := doJSON(newContactRouter(svc), http.MethodPost, "/api/contact", validBody)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(newContactRouter(&mockContactService{}), http.MethodPost, "/api/contact", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContactHandler_List(t *testing.T) {
	svc := &mockContactService{
		ListFunc: func(_ context.Context, limit, offset int) ([]*dto.ContactMessageResponse, error) {
			assert.Equal(t, 50, limit)
			assert.Equal(t, 0, offset)
			return []*dto.ContactMessageResponse{{ID: "msg-1"}, {ID: "msg-2"}}, nil
		},
	}
	w := doJSON(newContactRouter(svc), http.MethodGet, "/api/admin/contact-messages", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "msg-2")
}
