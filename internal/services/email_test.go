package services

import (
	"context"
	"errors"
	"testing"

	"orplanning/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      []string
	subject string
	err     error
}

func (f *fakeMailer) Send(_ context.Context, to []string, subject, html, text string) error {
	f.to = to
	f.subject = subject
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.name = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + name, "<p>html</p>", "text", nil
}

func TestEmailService_SendValidationAlert(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and sends", func(t *testing.T) {
		mailer, renderer := &fakeMailer{}, &fakeRenderer{}
		svc := NewEmailService(mailer, renderer, testLogger)
		err := svc.SendValidationAlert(ctx, &domain.ValidationAlertEmailData{Recipients: []string{"a@example.org"}, Date: "2025-03-10"})
		require.NoError(t, err)
		assert.Equal(t, "validation_alert", renderer.name)
		assert.Equal(t, "subject:validation_alert", mailer.subject)
		assert.Equal(t, []string{"a@example.org"}, mailer.to)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, testLogger)
		assert.Error(t, svc.SendValidationAlert(ctx, nil))
	})

	t.Run("no recipients", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, testLogger)
		assert.ErrorIs(t, svc.SendValidationAlert(ctx, &domain.ValidationAlertEmailData{}), domain.ErrInvalidInput)
	})

	t.Run("render failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("bad template")}, testLogger)
		err := svc.SendValidationAlert(ctx, &domain.ValidationAlertEmailData{Recipients: []string{"a@example.org"}})
		assert.ErrorContains(t, err, "bad template")
	})
}

func TestEmailService_SendCatalogConflicts(t *testing.T) {
	mailer, renderer := &fakeMailer{err: errors.New("throttled")}, &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, testLogger)
	err := svc.SendCatalogConflicts(context.Background(), &domain.CatalogConflictEmailData{Recipients: []string{"a@example.org"}})
	assert.ErrorContains(t, err, "throttled")
	assert.Equal(t, "catalog_conflicts", renderer.name)
}
