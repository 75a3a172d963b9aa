package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
)

func TestContactService_Submit(t *testing.T) {
	var stored *domain.ContactMessage
	repo := &mockContactRepo{
		CreateFunc: func(_ context.Context, msg *domain.ContactMessage) error {
			stored = msg
			return nil
		},
	}
	svc := NewContactService(repo)

	t.Run("success", func(t *testing.T) {
		result, err := svc.Submit(context.Background(), &dto.ContactRequest{
			Name:    "Lena Schmidt",
			Email:   "Lena@Example.com",
			Subject: "Frage zur Anmeldung",
			Message: "Kann ich die Gruppe noch wechseln?",
		})
		require.NoError(t, err)
		assert.Equal(t, "lena@example.com", result.Email)
		require.NotNil(t, stored)
		assert.NotEmpty(t, stored.ID)
	})

	t.Run("message of exactly 10 characters passes", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), &dto.ContactRequest{
			Name:    "Lena",
			Email:   "lena@example.com",
			Subject: "Hi",
			Message: strings.Repeat("a", 10),
		})
		assert.NoError(t, err)
	})

	t.Run("message of 9 characters is rejected", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), &dto.ContactRequest{
			Name:    "Lena",
			Email:   "lena@example.com",
			Subject: "Hi",
			Message: strings.Repeat("a", 9),
		})
		assert.ErrorIs(t, err, domain.ErrMessageTooShort)
	})

	t.Run("whitespace does not count", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), &dto.ContactRequest{
			Name:    "Lena",
			Email:   "lena@example.com",
			Subject: "Hi",
			Message: "   short   ",
		})
		assert.ErrorIs(t, err, domain.ErrMessageTooShort)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), &dto.ContactRequest{
			Name:    " ",
			Email:   "lena@example.com",
			Subject: "Hi",
			Message: "long enough message",
		})
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), &dto.ContactRequest{
			Name:    "Lena",
			Email:   "not-an-email",
			Subject: "Hi",
			Message: "long enough message",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}
