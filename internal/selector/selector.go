package selector

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// regexFlags maps the settings file's flag names onto Go inline flags.
// Unknown names are logged and skipped, never fatal.
var regexFlags = map[string]string{
	"i":          "i",
	"ignorecase": "i",
	"m":          "m",
	"multiline":  "m",
	"s":          "s",
	"dotall":     "s",
}

type compiledRule struct {
	prefix  string
	pattern *regexp.Regexp
}

func (r compiledRule) matches(name string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(name)
	}
	return strings.HasPrefix(strings.ToLower(name), r.prefix)
}

// Selector filters the console event list by organizer-configured name rules
// and by whether the event is still upcoming.
type Selector struct {
	rules []compiledRule
	log   *logger.Logger
}

func New(rules []models.MatchRule, log *logger.Logger) (*Selector, error) {
	s := &Selector{log: log}
	for _, rule := range rules {
		if !rule.IsRegex() {
			s.rules = append(s.rules, compiledRule{prefix: strings.ToLower(rule.Prefix)})
			continue
		}

		var flags strings.Builder
		for _, name := range rule.Flags {
			inline, ok := regexFlags[strings.ToLower(name)]
			if !ok {
				log.Warn("SELECTOR", fmt.Sprintf("Invalid pattern flag: %s", name))
				continue
			}
			if !strings.Contains(flags.String(), inline) {
				flags.WriteString(inline)
			}
		}

		expr := rule.Pattern
		if flags.Len() > 0 {
			expr = "(?" + flags.String() + ")" + expr
		}
		// Match from the beginning of the name, like the console's own search.
		compiled, err := regexp.Compile("^(?:" + expr + ")")
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", rule.Pattern, err)
		}
		s.rules = append(s.rules, compiledRule{pattern: compiled})
	}
	return s, nil
}

// Matches reports whether any configured rule matches the event name. Rules
// are tried in configuration order; the first hit wins.
func (s *Selector) Matches(name string) bool {
	for _, rule := range s.rules {
		if rule.matches(name) {
			return true
		}
	}
	return false
}

// Select returns the events to process: name matched by some rule and end
// date not yet passed. The same "now" is applied to every event so the filter
// is consistent across one run. Input order is preserved.
func (s *Selector) Select(events []models.Event, now time.Time) ([]models.Event, error) {
	var out []models.Event
	for _, event := range events {
		endDate, err := time.Parse(time.RFC3339, event.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parse end date %q of event %s: %w", event.EndDate, event.EventID, err)
		}
		if endDate.Before(now) {
			continue
		}
		if !s.Matches(event.Name) {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

// VIPTicketTypes keeps the ticket types whose name contains "vip",
// case-insensitively. Only these are eligible for auto-discount generation.
func VIPTicketTypes(types []models.TicketType) []models.TicketType {
	var out []models.TicketType
	for _, tt := range types {
		if strings.Contains(strings.ToLower(tt.Name), "vip") {
			out = append(out, tt)
		}
	}
	return out
}
