package manifest

import (
	"fmt"
	"regexp"
)

// DefaultTerminator matches a sibling key at two-space indentation, which
// ends any section body.
var DefaultTerminator = regexp.MustCompile(`^  \w`)

// SectionRule decides where a section starts and which lines belong to it.
type SectionRule interface {
	// Name identifies the section in errors and logs.
	Name() string
	// IsAnchor reports whether line opens the section.
	IsAnchor(line string) bool
	// Terminates reports whether line ends the section body.
	Terminates(line string) bool
	// Continues reports whether line belongs to the section body.
	Continues(line string) bool
}

// PatternRule is a SectionRule driven by regular expressions.
type PatternRule struct {
	SectionName  string
	Anchor       *regexp.Regexp
	Continuation []*regexp.Regexp
	Terminator   *regexp.Regexp
}

var _ SectionRule = (*PatternRule)(nil)

// NewPatternRule compiles a PatternRule with DefaultTerminator. It panics if a
// pattern does not compile, so it is meant for package-level rule tables.
func NewPatternRule(name, anchor string, continuation ...string) *PatternRule {
	rule := &PatternRule{
		SectionName: name,
		Anchor:      regexp.MustCompile(anchor),
		Terminator:  DefaultTerminator,
	}
	for _, p := range continuation {
		rule.Continuation = append(rule.Continuation, regexp.MustCompile(p))
	}
	return rule
}

// Name implements SectionRule.
func (r *PatternRule) Name() string { return r.SectionName }

// IsAnchor implements SectionRule.
func (r *PatternRule) IsAnchor(line string) bool {
	return r.Anchor.MatchString(line)
}

// Terminates implements SectionRule.
func (r *PatternRule) Terminates(line string) bool {
	return r.Terminator != nil && r.Terminator.MatchString(line)
}

// Continues implements SectionRule.
func (r *PatternRule) Continues(line string) bool {
	for _, re := range r.Continuation {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Span is a half-open range of line indices. Start is the anchor line and End
// is the first line after the section body.
type Span struct {
	Start int
	End   int
}

// Len returns the number of lines covered, anchor included.
func (s Span) Len() int { return s.End - s.Start }

// FindSection locates the first section matching rule. The body extends from
// the line after the anchor up to, not including, the first line that either
// terminates or fails every continuation pattern; reaching the end of the
// document also ends the body. Lines the rule does not recognize, such as
// comments, therefore end the section early.
func FindSection(doc *Document, rule SectionRule) (Span, error) {
	start := -1
	for i, line := range doc.lines {
		if rule.IsAnchor(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return Span{}, fmt.Errorf("%w: %s", ErrSectionNotFound, rule.Name())
	}

	end := start + 1
	for end < len(doc.lines) {
		line := doc.lines[end]
		if rule.Terminates(line) || !rule.Continues(line) {
			break
		}
		end++
	}
	return Span{Start: start, End: end}, nil
}

// ReplaceSection returns a new document where the first section matching rule
// is replaced by body. body must begin with the anchor line. doc is not
// modified.
func ReplaceSection(doc *Document, rule SectionRule, body []string) (*Document, error) {
	span, err := FindSection(doc, rule)
	if err != nil {
		return nil, err
	}

	return doc.splice(span, body), nil
}
