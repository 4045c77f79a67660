// Package contact builds the contact-form submission for a recommended plan
// and hands it to a form-handling endpoint.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/models"
	"github.com/simplestep/pathfinder/internal/summary"
)

// DefaultFormName is the form identifier tag expected by the endpoint.
const DefaultFormName = "contact"

// dateLayout is the accepted date-of-birth format.
const dateLayout = "2006-01-02"

var (
	// ErrPrivacyConsentRequired is returned when the privacy consent box is unchecked.
	ErrPrivacyConsentRequired = errors.New("개인정보 수집 및 이용에 동의해주세요")

	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("required field is empty")

	// ErrInvalidDate is returned when the date of birth is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date of birth must be YYYY-MM-DD")
)

// Form holds what the guardian types on the action screen.
type Form struct {
	GuardianName   string
	ChildName      string
	ChildDOB       string // YYYY-MM-DD
	Inquiry        string
	PrivacyConsent bool
}

// Validate checks required fields and the privacy consent.
func (f Form) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"guardianName", f.GuardianName},
		{"childName", f.ChildName},
		{"childDob", f.ChildDOB},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, r.name)
		}
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(f.ChildDOB)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, f.ChildDOB)
	}
	if !f.PrivacyConsent {
		return ErrPrivacyConsentRequired
	}
	return nil
}

// Payload field names.
const (
	FieldFormName         = "form-name"
	FieldGuardianName     = "guardianName"
	FieldChildName        = "childName"
	FieldChildDOB         = "childDob"
	FieldInquiry          = "inquiry"
	FieldPrivacyConsent   = "privacyConsent"
	FieldRecommendedPlan  = "recommendedPlan"
	FieldDiagnosisSummary = "diagnosisSummary"
	FieldPlanDescription  = "recommendedPlanDescription"
)

// Field is one key/value pair of a payload.
type Field struct {
	Key   string
	Value string
}

// Payload is the ordered set of fields sent to the endpoint.
type Payload []Field

// Get returns the value of key and whether it is present.
func (p Payload) Get(key string) (string, bool) {
	for _, f := range p {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Encode returns the payload as an application/x-www-form-urlencoded body,
// keeping field order.
func (p Payload) Encode() string {
	parts := make([]string, 0, len(p))
	for _, f := range p {
		parts = append(parts, url.QueryEscape(f.Key)+"="+url.QueryEscape(f.Value))
	}
	return strings.Join(parts, "&")
}

// BuildPayload assembles the submission for a completed questionnaire.
// An empty formName selects DefaultFormName.
func BuildPayload(formName string, form Form, f *summary.Formatter, data diagnosis.Data, plan models.RecommendedPlan) Payload {
	if formName == "" {
		formName = DefaultFormName
	}
	return Payload{
		{FieldFormName, formName},
		{FieldGuardianName, strings.TrimSpace(form.GuardianName)},
		{FieldChildName, strings.TrimSpace(form.ChildName)},
		{FieldChildDOB, strings.TrimSpace(form.ChildDOB)},
		{FieldInquiry, form.Inquiry},
		{FieldPrivacyConsent, strconv.FormatBool(form.PrivacyConsent)},
		{FieldRecommendedPlan, f.PlanDisplay(plan)},
		{FieldDiagnosisSummary, f.Diagnosis(data)},
		{FieldPlanDescription, f.Plan(plan)},
	}
}
