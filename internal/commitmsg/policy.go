package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTags is the fixed set of change tags a commit subject may carry.
var DefaultTags = []string{"ADD", "DEL", "FIX", "IMP", "REF", "DOC", "REL", "DEP", "WIP", "REV"}

const (
	// DefaultTicketPattern matches a ticket reference like "PROJ-123".
	// The project code must be uppercase.
	DefaultTicketPattern = `[A-Z]+-[0-9]+`

	// DefaultMergePrefix exempts merge commits from the subject format.
	DefaultMergePrefix = "Merge "
)

// Commit is the minimal view of a commit the policy needs.
type Commit struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// Violation records a commit whose message failed the policy.
type Violation struct {
	Hash    string `json:"hash"`
	Subject string `json:"subject"`
}

func (v Violation) String() string {
	if v.Hash == "" {
		return v.Subject
	}
	return v.Hash + ": " + v.Subject
}

// Policy decides whether a commit message is acceptable.
// The zero value is not usable; construct with NewPolicy and
// Compile after overriding any fields.
type Policy struct {
	// TicketPattern is the regexp fragment for the leading ticket
	// reference. It is anchored at the start of the subject.
	TicketPattern string

	// Tags is the set of permitted bracketed change tags.
	Tags []string

	// MergePrefix accepts any subject with this literal prefix,
	// bypassing the pattern entirely.
	MergePrefix string

	subjectRe *regexp.Regexp
}

// NewPolicy returns a compiled policy with the default rules.
func NewPolicy() *Policy {
	p := &Policy{
		TicketPattern: DefaultTicketPattern,
		Tags:          DefaultTags,
		MergePrefix:   DefaultMergePrefix,
	}
	// Defaults always compile.
	_ = p.Compile()
	return p
}

// Compile builds the subject regexp from TicketPattern and Tags.
// Call it after changing either field.
func (p *Policy) Compile() error {
	if len(p.Tags) == 0 {
		return fmt.Errorf("commit policy: no tags configured")
	}
	for _, tag := range p.Tags {
		if tag == "" || strings.ContainsAny(tag, "[]|()\\") {
			return fmt.Errorf("commit policy: invalid tag %q", tag)
		}
	}

	expr := fmt.Sprintf(`^%s \[(%s)\] .*`, p.TicketPattern, strings.Join(p.Tags, "|"))
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("commit policy: invalid ticket pattern %q: %w", p.TicketPattern, err)
	}
	p.subjectRe = re
	return nil
}

// Accepts reports whether a commit message satisfies the policy.
// Only the subject line is inspected.
func (p *Policy) Accepts(message string) bool {
	subject := Commit{Message: message}.Subject()
	if p.MergePrefix != "" && strings.HasPrefix(subject, p.MergePrefix) {
		return true
	}
	return p.subjectRe != nil && p.subjectRe.MatchString(subject)
}

// Check validates every commit and returns one violation per
// rejected message, in input order.
func (p *Policy) Check(commits []Commit) []Violation {
	var violations []Violation
	for _, c := range commits {
		if p.Accepts(c.Message) {
			continue
		}
		violations = append(violations, Violation{Hash: c.Hash, Subject: c.Subject()})
	}
	return violations
}
