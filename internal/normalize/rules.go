package normalize

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// Rule-set validation errors.
var (
	// ErrNoRegions indicates the rules carry no region map.
	ErrNoRegions = errors.New("rules: no regions defined")

	// ErrBadRegionCode indicates a region code is not two upper-case letters.
	ErrBadRegionCode = errors.New("rules: region code must be two upper-case letters")

	// ErrNoVocabulary indicates a controlled vocabulary is empty.
	ErrNoVocabulary = errors.New("rules: empty vocabulary")

	// ErrBadDefaultStatus indicates the default status is not in the status set.
	ErrBadDefaultStatus = errors.New("rules: default status not in status vocabulary")
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Vocabularies holds the controlled value sets for multi-value fields
// and the status field.
type Vocabularies struct {
	Specialties    []string `yaml:"specialties"`
	Certifications []string `yaml:"certification_bodies"`
	Species        []string `yaml:"species_treated"`
	Statuses       []string `yaml:"statuses"`
}

// Rules is one canonicalization rule set: the region name map plus the
// controlled vocabularies. Rules are read-only after loading.
type Rules struct {
	// DefaultStatus is assigned to records without a status.
	DefaultStatus string `yaml:"default_status"`

	// Regions maps lower-case full region names to two-letter codes.
	Regions map[string]string `yaml:"regions"`

	// Vocabularies holds the controlled value sets.
	Vocabularies Vocabularies `yaml:"vocabularies"`

	codes map[string]bool
}

// ParseRules loads a rule set from YAML and validates it.
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	r.codes = make(map[string]bool, len(r.Regions))
	for _, code := range r.Regions {
		r.codes[code] = true
	}
	return &r, nil
}

// LoadRules reads a rule set from a file path.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return ParseRules(data)
}

// DefaultRules returns the embedded rule set. The same instance is shared
// by all callers; rules are never mutated after load.
var DefaultRules = sync.OnceValue(func() *Rules {
	r, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules invalid: %v", err))
	}
	return r
})

func (r *Rules) validate() error {
	if len(r.Regions) == 0 {
		return ErrNoRegions
	}
	for name, code := range r.Regions {
		if len(code) != 2 || code != strings.ToUpper(code) {
			return fmt.Errorf("%w: %q -> %q", ErrBadRegionCode, name, code)
		}
	}
	vocabs := map[string][]string{
		"specialties":          r.Vocabularies.Specialties,
		"certification_bodies": r.Vocabularies.Certifications,
		"species_treated":      r.Vocabularies.Species,
		"statuses":             r.Vocabularies.Statuses,
	}
	for name, values := range vocabs {
		if len(values) == 0 {
			return fmt.Errorf("%w: %s", ErrNoVocabulary, name)
		}
	}
	for _, s := range r.Vocabularies.Statuses {
		if s == r.DefaultStatus {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrBadDefaultStatus, r.DefaultStatus)
}

// RegionCode resolves a full region name (case-insensitive) to its code.
func (r *Rules) RegionCode(name string) (string, bool) {
	code, ok := r.Regions[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// KnownRegion reports whether code is in the fixed region set.
func (r *Rules) KnownRegion(code string) bool {
	return r.codes[code]
}

// Vocabulary returns the controlled vocabulary for a multi-value field
// name, or false when the field is open.
func (r *Rules) Vocabulary(field string) ([]string, bool) {
	switch field {
	case domain.FieldSpecialties:
		return r.Vocabularies.Specialties, true
	case domain.FieldCertifications:
		return r.Vocabularies.Certifications, true
	case domain.FieldSpecies:
		return r.Vocabularies.Species, true
	}
	return nil, false
}
