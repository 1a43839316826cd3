// Package domain holds the onboarding workflow's types: the validated
// submission, the stage progression and the error taxonomy.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Table count bounds for the registration form.
const (
	MinTableCount = 1
	MaxTableCount = 1_000_000_000
)

// RawSubmission carries the registration form fields exactly as submitted.
type RawSubmission struct {
	FirstName    string
	LastName     string
	Organization string
	Domain       string
	TableCount   string
}

// Submission is a validated registration. It exists only for the duration of
// one workflow run and is never persisted verbatim.
type Submission struct {
	FirstName    string
	LastName     string
	Organization string
	Domain       string
	TableCount   int64
}

// ParseSubmission validates the raw fields and produces the statically-shaped
// submission every downstream component works from. No component re-parses
// raw fields after this. Failures are reported per field.
func ParseSubmission(raw RawSubmission) (*Submission, *InputError) {
	var fields []FieldError

	firstName := strings.TrimSpace(raw.FirstName)
	if firstName == "" {
		fields = append(fields, FieldError{Field: "first_name", Message: "First name is required."})
	}
	lastName := strings.TrimSpace(raw.LastName)
	if lastName == "" {
		fields = append(fields, FieldError{Field: "last_name", Message: "Last name is required."})
	}
	organization := strings.TrimSpace(raw.Organization)
	if organization == "" {
		fields = append(fields, FieldError{Field: "organization", Message: "Organization is required."})
	}
	domainName := strings.TrimSpace(raw.Domain)
	if domainName == "" {
		fields = append(fields, FieldError{Field: "domain", Message: "Domain is required."})
	}

	tableCount, err := strconv.ParseInt(strings.TrimSpace(raw.TableCount), 10, 64)
	if err != nil || tableCount < MinTableCount || tableCount > MaxTableCount {
		fields = append(fields, FieldError{
			Field:   "table_count",
			Message: fmt.Sprintf("Table count must be a whole number between %d and %d.", MinTableCount, MaxTableCount),
		})
	}

	if len(fields) > 0 {
		return nil, &InputError{Fields: fields}
	}

	return &Submission{
		FirstName:    firstName,
		LastName:     lastName,
		Organization: organization,
		Domain:       domainName,
		TableCount:   tableCount,
	}, nil
}

// DeriveEmail builds the contact email used for identity and billing
// provisioning; the registration form carries no email field. The local part
// is first.last with anything outside [a-z0-9] collapsed to a dot.
func (s *Submission) DeriveEmail() string {
	local := sanitizeLocal(s.FirstName) + "." + sanitizeLocal(s.LastName)
	return local + "@" + strings.ToLower(s.Domain)
}

func sanitizeLocal(part string) string {
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '.'
	}, strings.ToLower(strings.TrimSpace(part)))
	return strings.Trim(mapped, ".")
}
