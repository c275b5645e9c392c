package utils

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// PasswordPolicy is injected into the signup path rather than read from a
// package-level constant, so tests can swap in looser or stricter rules.
//
// The reference rule is "at least 6 characters with a lower-case letter, an
// upper-case letter, a digit and a symbol". RE2 has no lookaheads, so the
// rule is decomposed into one compiled pattern per required class.
type PasswordPolicy struct {
	minLen  int
	classes []*regexp.Regexp
}

func NewPasswordPolicy(minLen int, classPatterns ...string) (*PasswordPolicy, error) {
	p := &PasswordPolicy{minLen: minLen}
	for _, pat := range classPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, err
		}
		p.classes = append(p.classes, re)
	}
	return p, nil
}

// DefaultPasswordPolicy returns the standard signup policy.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		minLen: 6,
		classes: []*regexp.Regexp{
			regexp.MustCompile(`[a-z]`),
			regexp.MustCompile(`[A-Z]`),
			regexp.MustCompile(`[0-9]`),
			regexp.MustCompile(`[^A-Za-z0-9\s]`),
		},
	}
}

var ErrInsecurePassword = errors.New("insecure password")

func (p *PasswordPolicy) Validate(password string) error {
	if utf8.RuneCountInString(password) < p.minLen {
		return ErrInsecurePassword
	}
	for _, re := range p.classes {
		if !re.MatchString(password) {
			return ErrInsecurePassword
		}
	}
	return nil
}
