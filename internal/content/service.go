package content

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"homely_backend/platform/apperr"
)

// minSuggestionQuery is the shortest query that produces area suggestions.
const minSuggestionQuery = 3

// DefaultPlacement is the greeting used when a WhatsApp link is requested
// without a placement.
const DefaultPlacement = "hero"

type Service struct {
	site Site
	now  func() time.Time
}

func NewService(site Site) *Service {
	return &Service{site: site, now: time.Now}
}

// Site returns the content document with the copyright line for the current year.
func (s *Service) Site() Site {
	site := s.site
	site.Footer.CopyrightText = fmt.Sprintf("© %d %s All rights reserved.", s.now().Year(), site.Footer.CopyrightHolder)
	return site
}

// AreaSuggestions returns "<Area>, <City>" for the first city whose key
// starts with query. Queries shorter than three characters, or with no
// matching city, yield an empty slice.
func (s *Service) AreaSuggestions(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < minSuggestionQuery {
		return []string{}
	}

	for _, c := range s.site.AreaSuggestions {
		if !strings.HasPrefix(c.City, q) {
			continue
		}
		city := capitalize(c.City)
		out := make([]string, 0, len(c.Areas))
		for _, area := range c.Areas {
			out = append(out, area+", "+city)
		}
		return out
	}
	return []string{}
}

// WhatsAppLink builds the wa.me deep link for a page placement.
func (s *Service) WhatsAppLink(placement string) (string, error) {
	if placement == "" {
		placement = DefaultPlacement
	}
	greeting, ok := s.site.WhatsApp.Greetings[placement]
	if !ok {
		return "", apperr.Validation("unknown whatsapp placement")
	}
	return "https://wa.me/" + s.site.WhatsApp.Number + "?text=" + encodeComponent(greeting), nil
}

// encodeComponent percent-encodes s for a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
