// Package catalog holds the CHI reference tables: sub-limits, exclusions,
// services with their preventive eligibility rules, and physician privileges.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sehha/chicalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Metadata describes where a catalog came from
type Metadata struct {
	Version  string `yaml:"version" json:"version"`
	Source   string `yaml:"source" json:"source"`
	Currency string `yaml:"currency" json:"currency"`
}

// Catalog is read-only after construction and safe for concurrent use
type Catalog struct {
	Metadata Metadata

	subLimits  []domain.SubLimit
	exclusions []domain.Exclusion
	services   []domain.Service
	privileges []domain.PhysicianPrivilege

	subLimitIdx  map[string]int
	exclusionIdx map[string]int
	serviceIdx   map[string]int
	privilegeIdx map[string]int
}

type catalogFile struct {
	Metadata   Metadata                    `yaml:"metadata"`
	SubLimits  []domain.SubLimit           `yaml:"sub_limits"`
	Exclusions []domain.Exclusion          `yaml:"exclusions"`
	Services   []domain.Service            `yaml:"services"`
	Privileges []domain.PhysicianPrivilege `yaml:"privileges"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads and validates a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog and validates it
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	c := &Catalog{
		Metadata:   f.Metadata,
		subLimits:  f.SubLimits,
		exclusions: f.Exclusions,
		services:   f.Services,
		privileges: f.Privileges,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.subLimitIdx = make(map[string]int, len(c.subLimits))
	for i, s := range c.subLimits {
		c.subLimitIdx[s.ID] = i
	}
	c.exclusionIdx = make(map[string]int, len(c.exclusions))
	for i, e := range c.exclusions {
		c.exclusionIdx[e.ID] = i
	}
	c.serviceIdx = make(map[string]int, len(c.services))
	for i, s := range c.services {
		c.serviceIdx[s.ID] = i
	}
	c.privilegeIdx = make(map[string]int, len(c.privileges))
	for i, p := range c.privileges {
		c.privilegeIdx[normalizeSpecialty(p.Specialty)] = i
	}
	return c, nil
}

// Validate checks every table for duplicate IDs and out-of-range values
func (c *Catalog) Validate() error {
	var errs []string

	seen := make(map[string]bool)
	for _, s := range c.subLimits {
		if err := s.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate sub-limit id %q", s.ID))
		}
		seen[s.ID] = true
	}

	seen = make(map[string]bool)
	for _, e := range c.exclusions {
		if e.ID == "" {
			errs = append(errs, "exclusion id is required")
		}
		if e.PrevalencePerThousand.IsNegative() || e.PotentialCostSAR.IsNegative() {
			errs = append(errs, fmt.Sprintf("exclusion %s: figures cannot be negative", e.ID))
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate exclusion id %q", e.ID))
		}
		seen[e.ID] = true
	}

	seen = make(map[string]bool)
	for _, s := range c.services {
		if s.ID == "" {
			errs = append(errs, "service id is required")
		}
		if s.PrevalencePerThousand.IsNegative() || s.AverageTreatmentCostSAR.IsNegative() {
			errs = append(errs, fmt.Sprintf("service %s: figures cannot be negative", s.ID))
		}
		if s.Eligibility != nil {
			if err := validateRule(*s.Eligibility); err != nil {
				errs = append(errs, fmt.Sprintf("service %s: %v", s.ID, err))
			}
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate service id %q", s.ID))
		}
		seen[s.ID] = true
	}

	seen = make(map[string]bool)
	for _, p := range c.privileges {
		key := normalizeSpecialty(p.Specialty)
		if key == "" {
			errs = append(errs, "privilege specialty is required")
		}
		if seen[key] {
			errs = append(errs, fmt.Sprintf("duplicate specialty %q", p.Specialty))
		}
		seen[key] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRule(r domain.EligibilityRule) error {
	if r.MinAge != nil && *r.MinAge < 0 {
		return fmt.Errorf("min age cannot be negative")
	}
	if r.MinAge != nil && r.MaxAge != nil && *r.MinAge > *r.MaxAge {
		return fmt.Errorf("min age %d exceeds max age %d", *r.MinAge, *r.MaxAge)
	}
	switch r.Gender {
	case "", domain.GenderRuleAll, domain.GenderRuleMale, domain.GenderRuleFemale:
	default:
		return fmt.Errorf("unknown gender rule %q", r.Gender)
	}
	switch r.Coverage {
	case domain.CoverageCHIBasic, domain.CoverageGovernment, domain.CoverageNotCovered:
	default:
		return fmt.Errorf("unknown coverage %q", r.Coverage)
	}
	return nil
}

// SubLimit looks up a sub-limit by ID
func (c *Catalog) SubLimit(id string) (domain.SubLimit, bool) {
	i, ok := c.subLimitIdx[id]
	if !ok {
		return domain.SubLimit{}, false
	}
	return c.subLimits[i], true
}

// Exclusion looks up an exclusion by ID
func (c *Catalog) Exclusion(id string) (domain.Exclusion, bool) {
	i, ok := c.exclusionIdx[id]
	if !ok {
		return domain.Exclusion{}, false
	}
	return c.exclusions[i], true
}

// Service looks up a service by ID
func (c *Catalog) Service(id string) (domain.Service, bool) {
	i, ok := c.serviceIdx[id]
	if !ok {
		return domain.Service{}, false
	}
	return cloneService(c.services[i]), true
}

// SubLimits returns all sub-limits in catalog order
func (c *Catalog) SubLimits() []domain.SubLimit {
	return append([]domain.SubLimit(nil), c.subLimits...)
}

// Exclusions returns all exclusions in catalog order
func (c *Catalog) Exclusions() []domain.Exclusion {
	return append([]domain.Exclusion(nil), c.exclusions...)
}

// Services returns all services in catalog order
func (c *Catalog) Services() []domain.Service {
	out := make([]domain.Service, len(c.services))
	for i, s := range c.services {
		out[i] = cloneService(s)
	}
	return out
}

// PreventiveServices returns the services that carry an eligibility rule
func (c *Catalog) PreventiveServices() []domain.Service {
	var out []domain.Service
	for _, s := range c.services {
		if s.Eligibility != nil {
			out = append(out, cloneService(s))
		}
	}
	return out
}

// Privileges returns the procedure groups a specialty may perform.
// Lookup ignores case and treats spaces and hyphens as underscores.
func (c *Catalog) Privileges(specialty string) (domain.PhysicianPrivilege, bool) {
	i, ok := c.privilegeIdx[normalizeSpecialty(specialty)]
	if !ok {
		return domain.PhysicianPrivilege{}, false
	}
	p := c.privileges[i]
	p.Procedures = append([]string(nil), p.Procedures...)
	return p, true
}

// Specialties lists the known specialties, sorted
func (c *Catalog) Specialties() []string {
	out := make([]string, 0, len(c.privileges))
	for _, p := range c.privileges {
		out = append(out, p.Specialty)
	}
	sort.Strings(out)
	return out
}

func cloneService(s domain.Service) domain.Service {
	if s.Eligibility == nil {
		return s
	}
	rule := *s.Eligibility
	rule.Conditions = append([]string(nil), rule.Conditions...)
	if rule.MinAge != nil {
		v := *rule.MinAge
		rule.MinAge = &v
	}
	if rule.MaxAge != nil {
		v := *rule.MaxAge
		rule.MaxAge = &v
	}
	s.Eligibility = &rule
	return s
}

func normalizeSpecialty(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
