// Package validate checks practice records against the directory's field
// rules: required fields, region codes, contact formats, controlled
// vocabularies, and coordinate ranges. Findings are tagged error or
// warning; only errors block acceptance on the import path.
//
// The validator expects canonical records. Run raw records through
// internal/normalize first so repairable formats do not surface as
// findings.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/normalize"
)

var (
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Accepted range for Year Established.
const (
	minYear = 1900
	maxYear = 2030
)

// maxSuggestDistance bounds the edit distance for vocabulary suggestions.
const maxSuggestDistance = 3

// Validator checks records against a rule set. It never mutates records.
type Validator struct {
	rules *normalize.Rules
}

// New returns a Validator over the given rule set.
func New(rules *normalize.Rules) *Validator {
	return &Validator{rules: rules}
}

// Batch validates records in order, numbering rows from firstRow.
// CSV callers pass 2 so numbers line up with spreadsheet rows under
// the header.
func (v *Validator) Batch(records []domain.Record, firstRow int) *domain.ValidationReport {
	report := &domain.ValidationReport{Rows: len(records)}
	for i, r := range records {
		report.Add(v.Record(firstRow+i, r)...)
	}
	return report
}

// Record validates one practice record at the given row position.
func (v *Validator) Record(row int, r domain.Record) []domain.Finding {
	var findings []domain.Finding

	add := func(severity domain.Severity, field, value, message string) {
		findings = append(findings, domain.Finding{
			Row:      row,
			Severity: severity,
			Field:    field,
			Value:    value,
			Message:  message,
		})
	}

	if strings.TrimSpace(r.Text(domain.FieldName)) == "" {
		add(domain.SeverityError, domain.FieldName, "", "Practice Name is required")
	}

	region := strings.ToUpper(strings.TrimSpace(r.Text(domain.FieldRegion)))
	if region != "" && !v.rules.KnownRegion(region) {
		add(domain.SeverityError, domain.FieldRegion, region, fmt.Sprintf("Invalid state code: %s", region))
	}

	zip := strings.TrimSpace(r.Text(domain.FieldPostalCode))
	if zip != "" && !zipPattern.MatchString(zip) {
		add(domain.SeverityWarning, domain.FieldPostalCode, zip, "Invalid ZIP code format")
	}

	phone := strings.TrimSpace(r.Text(domain.FieldPhone))
	if phone != "" {
		if n := len(nonDigits.ReplaceAllString(phone, "")); n != 10 && n != 11 {
			add(domain.SeverityWarning, domain.FieldPhone, phone, "Phone should have 10 digits")
		}
	}

	email := strings.TrimSpace(r.Text(domain.FieldEmail))
	if email != "" && !emailPattern.MatchString(email) {
		add(domain.SeverityError, domain.FieldEmail, email, "Invalid email format")
	}

	website := strings.TrimSpace(r.Text(domain.FieldWebsite))
	if website != "" && !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		add(domain.SeverityWarning, domain.FieldWebsite, website, "Website should start with https://")
	}

	v.checkVocabulary(add, r, domain.FieldSpecialties, "specialty")
	v.checkVocabulary(add, r, domain.FieldCertifications, "certification")
	v.checkVocabulary(add, r, domain.FieldSpecies, "species")

	status := strings.TrimSpace(r.Text(domain.FieldStatus))
	if status != "" && !v.knownStatus(status) {
		add(domain.SeverityWarning, domain.FieldStatus, status, fmt.Sprintf("Invalid status: %s", status))
	}

	year := strings.TrimSpace(r.Text(domain.FieldYear))
	if year != "" {
		if n, err := strconv.Atoi(year); err != nil {
			add(domain.SeverityWarning, domain.FieldYear, year, "Year should be a number")
		} else if n < minYear || n > maxYear {
			add(domain.SeverityWarning, domain.FieldYear, year, "Year seems invalid")
		}
	}

	lat := strings.TrimSpace(r.Text(domain.FieldLatitude))
	if lat != "" {
		if f, err := strconv.ParseFloat(lat, 64); err != nil {
			add(domain.SeverityError, domain.FieldLatitude, lat, "Latitude must be a number")
		} else if !(f >= -90 && f <= 90) {
			add(domain.SeverityError, domain.FieldLatitude, lat, "Latitude must be between -90 and 90")
		}
	}

	lng := strings.TrimSpace(r.Text(domain.FieldLongitude))
	if lng != "" {
		if f, err := strconv.ParseFloat(lng, 64); err != nil {
			add(domain.SeverityError, domain.FieldLongitude, lng, "Longitude must be a number")
		} else if !(f >= -180 && f <= 180) {
			add(domain.SeverityError, domain.FieldLongitude, lng, "Longitude must be between -180 and 180")
		}
	}

	return findings
}

// checkVocabulary flags list entries outside the field's controlled
// vocabulary. A near miss carries a suggestion; an unrecognizable
// specialty lists a sample of accepted values instead.
func (v *Validator) checkVocabulary(add func(domain.Severity, string, string, string), r domain.Record, field, noun string) {
	vocab, ok := v.rules.Vocabulary(field)
	if !ok {
		return
	}
	known := make(map[string]bool, len(vocab))
	for _, entry := range vocab {
		known[entry] = true
	}

	for _, item := range r.Get(field).Items() {
		if known[item] {
			continue
		}
		message := fmt.Sprintf("Unknown %s: %s", noun, item)
		if best, found := closest(item, vocab); found {
			message += fmt.Sprintf(". Did you mean %q?", best)
		} else if field == domain.FieldSpecialties {
			sample := vocab
			if len(sample) > 5 {
				sample = sample[:5]
			}
			message += fmt.Sprintf(". Valid: %s...", strings.Join(sample, ", "))
		}
		add(domain.SeverityWarning, field, item, message)
	}
}

func (v *Validator) knownStatus(status string) bool {
	for _, s := range v.rules.Vocabularies.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// closest returns the vocabulary entry nearest to value by case-folded
// edit distance, when that distance is within maxSuggestDistance.
func closest(value string, vocab []string) (string, bool) {
	lowered := strings.ToLower(value)
	best, bestDist := "", maxSuggestDistance+1
	for _, entry := range vocab {
		if d := levenshtein.ComputeDistance(lowered, strings.ToLower(entry)); d < bestDist {
			best, bestDist = entry, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}
