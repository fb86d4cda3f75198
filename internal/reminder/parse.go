package reminder

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nudgecli/nudge/common"
)

// ErrUnrecognized is the ParseError reason when no pattern matches.
const ErrUnrecognized = "unrecognized reminder syntax"

var (
	relativeRe = regexp.MustCompile(`(?i)remind me to\s+(.+?)\s+in\s+(\d+)\s*(minutes?|mins?|hours?|hrs?|days?)\b`)
	scheduleRe = regexp.MustCompile(`(?i)\b(?:schedule|set)\s+(.+)`)
	forRe      = regexp.MustCompile(`(?i)\s+for\s+`)
	isoRe      = regexp.MustCompile(`20\d{2}-\d{2}-\d{2}T\d{2}:\d{2}(?::\d{2})?(?:Z|[+-]\d{2}:\d{2})?`)
	remindMeRe = regexp.MustCompile(`(?i)^\s*(?:please\s+)?remind me(?:\s+to)?\b`)
	fillerRe   = regexp.MustCompile(`(?i)^(?:at|on|by|for)\s+|\s+(?:at|on|by|for)$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// Parser extracts reminders from free text.
type Parser struct {
	// Location interprets dates written without a zone. Nil means time.Local.
	Location *time.Location
}

// Parse is Parser{}.Parse.
func Parse(text string, now time.Time) (Request, error) {
	return Parser{}.Parse(text, now)
}

// Parse tries, in order, the relative form "remind me to X in N units",
// the "schedule|set X for <date>" form and finally any embedded ISO-8601
// timestamp. The first match wins. The result is not validated against now.
func (p Parser) Parse(text string, now time.Time) (Request, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Request{}, common.NewParseError(text, "empty input")
	}

	if r, ok, err := p.parseRelative(raw, now); err != nil {
		return Request{}, err
	} else if ok {
		return r, nil
	}
	if r, ok := p.parseSchedule(raw); ok {
		return r, nil
	}
	if r, ok := p.parseEmbeddedISO(raw); ok {
		return r, nil
	}
	return Request{}, common.NewParseError(text, ErrUnrecognized)
}

// parseRelative rejects amounts whose duration does not fit in a
// time.Duration instead of letting the addition wrap.
func (p Parser) parseRelative(raw string, now time.Time) (Request, bool, error) {
	m := relativeRe.FindStringSubmatch(raw)
	if m == nil {
		return Request{}, false, nil
	}
	task := cleanTask(m[1])
	if task == "" {
		return Request{}, false, nil
	}
	unit := unitDuration(m[3])
	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || n > math.MaxInt64/int64(unit) {
		return Request{}, false, common.NewValidationError("when", fmt.Sprintf("%s %s is too far in the future", m[2], m[3]))
	}
	return Request{Task: task, When: now.Add(time.Duration(n) * unit)}, true, nil
}

func unitDuration(unit string) time.Duration {
	switch u := strings.ToLower(unit); {
	case strings.HasPrefix(u, "h"):
		return time.Hour
	case strings.HasPrefix(u, "d"):
		return 24 * time.Hour
	default:
		return time.Minute
	}
}

// parseSchedule tries every " for " split from the left so that tasks
// containing the word "for" still resolve when a later split is a date.
func (p Parser) parseSchedule(raw string) (Request, bool) {
	m := scheduleRe.FindStringSubmatch(raw)
	if m == nil {
		return Request{}, false
	}
	rest := m[1]
	for _, loc := range forRe.FindAllStringIndex(rest, -1) {
		task := cleanTask(rest[:loc[0]])
		if task == "" {
			continue
		}
		if when, ok := ParseDate(rest[loc[1]:], p.Location); ok {
			return Request{Task: task, When: when}, true
		}
	}
	return Request{}, false
}

func (p Parser) parseEmbeddedISO(raw string) (Request, bool) {
	loc := isoRe.FindStringIndex(raw)
	if loc == nil {
		return Request{}, false
	}
	when, ok := ParseDate(raw[loc[0]:loc[1]], p.Location)
	if !ok {
		return Request{}, false
	}
	task := raw[:loc[0]] + " " + raw[loc[1]:]
	task = remindMeRe.ReplaceAllString(task, "")
	task = stripFiller(cleanTask(task))
	if task == "" {
		return Request{}, false
	}
	return Request{Task: task, When: when}, true
}

// cleanTask collapses whitespace.
func cleanTask(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// stripFiller removes prepositions left dangling around a removed timestamp
// and trailing punctuation.
func stripFiller(s string) string {
	for {
		next := strings.TrimSpace(fillerRe.ReplaceAllString(s, ""))
		next = strings.TrimRight(next, ".,;:!")
		if next == s {
			return s
		}
		s = next
	}
}
