// Package validate holds pure request validation helpers.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grupo-nexus/planner/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email checks basic address syntax.
func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// NonEmpty rejects empty values.
func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// PostDraft validates a create/update payload and applies enum defaults in
// place. Theme must be non-empty after trimming; no format validation is
// performed on the date string here, the calendar engine owns that.
func PostDraft(d *model.PostDraft) error {
	if strings.TrimSpace(d.Theme) == "" {
		return fmt.Errorf("%w: theme is required", model.ErrValidation)
	}
	if d.ContentType == "" {
		d.ContentType = model.ContentImage
	} else if !d.ContentType.Valid() {
		return fmt.Errorf("%w: unknown content type %q", model.ErrValidation, d.ContentType)
	}
	if d.Channel == "" {
		d.Channel = model.ChannelInstagram
	} else if !d.Channel.Valid() {
		return fmt.Errorf("%w: unknown channel %q", model.ErrValidation, d.Channel)
	}
	if d.Status == "" {
		d.Status = model.StatusPlanned
	} else if !d.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", model.ErrValidation, d.Status)
	}
	return nil
}

// Credentials validates a login payload. A malformed email is reported as
// its own auth error kind before any credential check runs.
func Credentials(email, password string) error {
	if err := Email(email); err != nil {
		return &model.AuthError{Kind: model.AuthInvalidEmail, Err: err}
	}
	if password == "" {
		return &model.AuthError{Kind: model.AuthInvalidCredential}
	}
	return nil
}
