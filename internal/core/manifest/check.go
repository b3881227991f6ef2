package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Report is the outcome of a manifest sanity check.
type Report struct {
	Missing  []string // sections whose anchor was not found
	Warnings []string
}

// OK reports whether the check raised no warnings.
func (r *Report) OK() bool { return len(r.Warnings) == 0 }

// Check verifies that doc parses as YAML with a top-level flutter key, and
// records a warning for every rule whose anchor is absent. It is a doctor
// aid only; editing never parses YAML.
func Check(doc *Document, rules ...SectionRule) (*Report, error) {
	var root map[string]any
	if err := yaml.Unmarshal(doc.Bytes(), &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if _, ok := root["flutter"]; !ok {
		return nil, fmt.Errorf("%w: missing top-level flutter key", ErrInvalidManifest)
	}

	report := &Report{}
	for _, rule := range rules {
		if _, err := FindSection(doc, rule); err != nil {
			report.Missing = append(report.Missing, rule.Name())
			report.Warnings = append(report.Warnings, fmt.Sprintf("no %q section found", rule.Name()))
		}
	}
	return report, nil
}
