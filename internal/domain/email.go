package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ValidationAlertEmailData holds data for the planning validation alert email.
type ValidationAlertEmailData struct {
	Recipients []string
	Date       string
	Violations []Violation
	Warnings   []Warning
}

// CatalogConflictEmailData holds data for the rule catalog conflict email.
type CatalogConflictEmailData struct {
	Recipients []string
	Conflicts  []CatalogConflict
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendValidationAlert(ctx context.Context, data *ValidationAlertEmailData) error
	SendCatalogConflicts(ctx context.Context, data *CatalogConflictEmailData) error
}
