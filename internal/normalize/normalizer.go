// Package normalize canonicalizes raw practice records into the fixed
// schema: region codes, phone/URL/email/postal forms, pipe-joined
// multi-value lists, derived slugs, and status defaulting. Normalization
// is pure and idempotent; a second pass over canonical output is a no-op.
package normalize

import (
	"regexp"
	"strings"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

var (
	nonDigits  = regexp.MustCompile(`\D`)
	zipRun     = regexp.MustCompile(`\d{5}`)
	delimiters = regexp.MustCompile(`[,;|]`)
)

// Normalizer applies one rule set to raw records.
type Normalizer struct {
	rules *Rules
}

// New creates a Normalizer for the given rule set.
func New(rules *Rules) *Normalizer {
	return &Normalizer{rules: rules}
}

// Practice canonicalizes one raw practice record. The input is not
// modified; the returned record has every value in scalar form with
// multi-value fields pipe-joined.
func (n *Normalizer) Practice(r domain.Record) domain.Record {
	out := r.Clone()

	// Resolve native lists to their scalar form up front so every rule
	// sees one representation.
	for field, v := range out {
		if v.IsList() {
			out[field] = domain.String(v.Text())
		}
	}

	if raw := out.Text(domain.FieldRegion); strings.TrimSpace(raw) != "" {
		out[domain.FieldRegion] = domain.String(n.Region(raw))
	}
	if raw := out.Text(domain.FieldPhone); strings.TrimSpace(raw) != "" {
		out[domain.FieldPhone] = domain.String(Phone(raw))
	}
	if raw := out.Text(domain.FieldWebsite); strings.TrimSpace(raw) != "" {
		out[domain.FieldWebsite] = domain.String(URL(raw))
	}
	if raw := out.Text(domain.FieldEmail); strings.TrimSpace(raw) != "" {
		out[domain.FieldEmail] = domain.String(Email(raw))
	}
	if raw := out.Text(domain.FieldPostalCode); strings.TrimSpace(raw) != "" {
		out[domain.FieldPostalCode] = domain.String(PostalCode(raw))
	}

	for _, field := range domain.MultiValueFields {
		if raw := out.Text(field); strings.TrimSpace(raw) != "" {
			out[field] = domain.String(strings.Join(splitList(raw), "|"))
		}
	}

	out[domain.FieldTelehealth] = domain.String(Telehealth(out.Text(domain.FieldTelehealth)))

	if strings.TrimSpace(out.Text(domain.FieldStatus)) == "" {
		out[domain.FieldStatus] = domain.String(n.rules.DefaultStatus)
	}

	if !out.Has(domain.FieldSlug) {
		if name := strings.TrimSpace(out.Text(domain.FieldName)); name != "" {
			out[domain.FieldSlug] = domain.String(domain.Slugify(name))
		}
	}

	return out
}

// Batch canonicalizes a slice of records, preserving order.
func (n *Normalizer) Batch(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = n.Practice(r)
	}
	return out
}

// Region resolves a raw region value: full names map to their code,
// two-letter values are upper-cased, anything else passes through for
// validation to flag.
func (n *Normalizer) Region(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if code, ok := n.rules.RegionCode(trimmed); ok {
		return code
	}
	if len(trimmed) == 2 {
		return strings.ToUpper(trimmed)
	}
	return raw
}

// Phone formats a value reducible to 10 digits (or 11 with a leading 1)
// as (AAA) BBB-CCCC; anything else is returned trimmed but unformatted.
func Phone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	digits := nonDigits.ReplaceAllString(trimmed, "")
	switch {
	case len(digits) == 10:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "(" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	}
	return trimmed
}

// URL prefixes https:// when the scheme is missing and upgrades http://
// to https://. No other rewriting happens.
func URL(raw string) string {
	u := strings.TrimSpace(raw)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	if strings.HasPrefix(u, "http://") {
		u = "https://" + u[len("http://"):]
	}
	return u
}

// Email lower-cases the value; the structure is left to validation.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// PostalCode extracts the first 5-digit run found anywhere in the value.
// Values without one are returned unchanged.
func PostalCode(raw string) string {
	if m := zipRun.FindString(strings.TrimSpace(raw)); m != "" {
		return m
	}
	return raw
}

// Telehealth canonicalizes the flag to TRUE or FALSE. The affirmative
// set is true/yes/1/y, case-insensitive; everything else is FALSE.
func Telehealth(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE", "YES", "1", "Y":
		return "TRUE"
	}
	return "FALSE"
}

// splitList splits a delimited value on comma, semicolon, or pipe, trims
// each piece, drops empties, and removes exact duplicates keeping the
// first occurrence.
func splitList(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, piece := range delimiters.Split(raw, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" || seen[piece] {
			continue
		}
		seen[piece] = true
		out = append(out, piece)
	}
	return out
}
