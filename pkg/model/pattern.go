package model

import (
	"fmt"
	"regexp"
	"strings"
)

const ignoreCaseFlag = "(?i)"

// ParsePattern validates expr and splits a leading (?i) flag into IgnoreCase
// so the emitted source stays portable to JavaScript.
func ParsePattern(expr string) (*Pattern, error) {
	source := expr
	ignoreCase := false
	if strings.HasPrefix(source, ignoreCaseFlag) {
		source = strings.TrimPrefix(source, ignoreCaseFlag)
		ignoreCase = true
	}
	if _, err := regexp.Compile(source); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}
	return &Pattern{Source: source, IgnoreCase: ignoreCase}, nil
}

// Compile returns the Go regexp equivalent of the pattern.
func (p *Pattern) Compile() (*regexp.Regexp, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: pattern is nil", ErrInvalidPattern)
	}
	expr := p.Source
	if p.IgnoreCase {
		expr = ignoreCaseFlag + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p.Source, err)
	}
	return re, nil
}
