package services

import (
	"context"
	"fmt"
	"log/slog"

	"orplanning/internal/domain"
)

const (
	templateValidationAlert  = "validation_alert"
	templateCatalogConflicts = "catalog_conflicts"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendValidationAlert sends the planning report using the "validation_alert" template.
func (s *emailService) SendValidationAlert(ctx context.Context, data *domain.ValidationAlertEmailData) error {
	if data == nil {
		return fmt.Errorf("validation alert data is nil")
	}
	return s.send(ctx, templateValidationAlert, data.Recipients, data)
}

// SendCatalogConflicts sends the conflict list using the "catalog_conflicts" template.
func (s *emailService) SendCatalogConflicts(ctx context.Context, data *domain.CatalogConflictEmailData) error {
	if data == nil {
		return fmt.Errorf("catalog conflict data is nil")
	}
	return s.send(ctx, templateCatalogConflicts, data.Recipients, data)
}

func (s *emailService) send(ctx context.Context, template string, to []string, data any) error {
	if len(to) == 0 {
		return fmt.Errorf("%s email: no recipients: %w", template, domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "recipients", len(to))
	return nil
}
