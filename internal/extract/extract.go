// Package extract turns raw report text into typed attendance fields.
// All matching is case-insensitive and first-match; absence of a pattern
// is never an error.
package extract

import (
	"regexp"
	"strings"
)

var (
	timeInPattern     = regexp.MustCompile(`(?i)Time In:?\s*(\d{1,2}:\d{2}\s*[AP]M)`)
	timeOutPattern    = regexp.MustCompile(`(?i)Time Out:?\s*(\d{1,2}:\d{2}\s*[AP]M)`)
	breakStartPattern = regexp.MustCompile(`(?i)On Break:?\s*(\d{1,2}:\d{2}\s*[AP]M)`)
	breakEndPattern   = regexp.MustCompile(`(?i)Back From Break:?\s*(\d{1,2}:\d{2}\s*[AP]M)`)
	// The name capture stays on one line; \s would run across the
	// newline into the next label.
	namePattern = regexp.MustCompile(`(?i)Name:?[ \t]*([A-Za-z \t]+)`)
	datePattern = regexp.MustCompile(`(?i)Date:?\s*(\d{1,2}\s+\w+\s+\d{4})`)
	urlPattern  = regexp.MustCompile(`https?://\S+`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// TimeIn extracts a "Time In" clock value.
func TimeIn(content string) (string, bool) {
	return matchTime(timeInPattern, content)
}

// TimeOut extracts a "Time Out" clock value.
func TimeOut(content string) (string, bool) {
	return matchTime(timeOutPattern, content)
}

// BreakStart extracts an "On Break" clock value.
func BreakStart(content string) (string, bool) {
	return matchTime(breakStartPattern, content)
}

// BreakEnd extracts a "Back From Break" clock value.
func BreakEnd(content string) (string, bool) {
	return matchTime(breakEndPattern, content)
}

// Name extracts an explicit "Name:" override from the message.
func Name(content string) (string, bool) {
	m := namePattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return name, true
}

// Date extracts an explicit "Date:" value like "17 Feb 2026".
func Date(content string) (string, bool) {
	m := datePattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Tasks returns the bulleted or numbered lines that appear after a line
// whose trimmed text begins with "task". Everything before that marker
// line is ignored.
func Tasks(content string) []string {
	var tasks []string
	inSection := false

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if !inSection {
			if strings.HasPrefix(strings.ToLower(line), "task") {
				inSection = true
			}
			continue
		}
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "•"):
			if task := strings.TrimSpace(strings.TrimPrefix(line, "•")); task != "" {
				tasks = append(tasks, task)
			}
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"):
			if task := strings.TrimSpace(line[1:]); task != "" {
				tasks = append(tasks, task)
			}
		case len(line) >= 2 && line[0] >= '0' && line[0] <= '9' && (line[1] == '.' || line[1] == ')'):
			if task := strings.TrimSpace(line[2:]); task != "" {
				tasks = append(tasks, task)
			}
		}
	}

	return tasks
}

// URLs returns every http(s) token in the text, in order of appearance.
// URL extraction is independent of task section boundaries.
func URLs(content string) []string {
	return urlPattern.FindAllString(content, -1)
}

func matchTime(p *regexp.Regexp, content string) (string, bool) {
	m := p.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	// Time values can arrive with irregular internal spacing.
	return spaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " "), true
}
