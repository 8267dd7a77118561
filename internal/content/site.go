// Package content serves the editable marketing copy of the public site.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"homely_backend/platform/phone"
)

//go:embed site.yaml
var defaultSite []byte

type Slide struct {
	Title    string `json:"title" yaml:"title"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

type Hero struct {
	Title              string  `json:"title" yaml:"title"`
	Subtitle           string  `json:"subtitle" yaml:"subtitle"`
	WhatsAppButtonText string  `json:"whatsappButtonText" yaml:"whatsappButtonText"`
	SearchPlaceholder  string  `json:"searchPlaceholder" yaml:"searchPlaceholder"`
	Slides             []Slide `json:"slides" yaml:"slides"`
}

// CityAreas lists the neighbourhoods suggested for a lower-case city key.
type CityAreas struct {
	City  string   `json:"city" yaml:"city"`
	Areas []string `json:"areas" yaml:"areas"`
}

type Promotion struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
}

// WhatsApp holds the contact number and the prefilled greetings keyed by the
// page placement that opens the chat.
type WhatsApp struct {
	Number    string            `json:"number" yaml:"number"`
	Greetings map[string]string `json:"greetings" yaml:"greetings"`
}

type Link struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

type LinkGroup struct {
	Title string `json:"title" yaml:"title"`
	Items []Link `json:"items" yaml:"items"`
}

type Partner struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	LogoURL string `json:"logoUrl" yaml:"logoUrl"`
}

type SocialLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type Footer struct {
	About struct {
		Description string `json:"description" yaml:"description"`
	} `json:"about" yaml:"about"`
	Partners struct {
		Title       string    `json:"title" yaml:"title"`
		Description string    `json:"description" yaml:"description"`
		Logos       []Partner `json:"logos" yaml:"logos"`
	} `json:"partners" yaml:"partners"`
	Links   []LinkGroup `json:"links" yaml:"links"`
	Socials struct {
		Title string       `json:"title" yaml:"title"`
		Links []SocialLink `json:"links" yaml:"links"`
	} `json:"socials" yaml:"socials"`
	CopyrightHolder string `json:"-" yaml:"copyrightHolder"`
	CopyrightText   string `json:"copyrightText" yaml:"-"`
}

// Site is the full content document.
type Site struct {
	BrandName          string      `json:"brandName" yaml:"brandName"`
	Hero               Hero        `json:"hero" yaml:"hero"`
	AreaSuggestions    []CityAreas `json:"areaSuggestions" yaml:"areaSuggestions"`
	PromotionalContent Promotion   `json:"promotionalContent" yaml:"promotionalContent"`
	WhatsApp           WhatsApp    `json:"whatsapp" yaml:"whatsapp"`
	Footer             Footer      `json:"footer" yaml:"footer"`
}

// Default returns the embedded site content.
func Default() (Site, error) {
	return Parse(bytes.NewReader(defaultSite))
}

// Parse decodes a site document. City keys are lower-cased so matching is
// case-insensitive, and the WhatsApp number is reduced to the digits wa.me expects.
func Parse(r io.Reader) (Site, error) {
	var site Site
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return Site{}, fmt.Errorf("decode site content: %w", err)
	}

	if site.WhatsApp.Number == "" {
		return Site{}, fmt.Errorf("site content: whatsapp number is required")
	}
	site.WhatsApp.Number = phone.WhatsAppDigits(site.WhatsApp.Number)
	for i := range site.AreaSuggestions {
		site.AreaSuggestions[i].City = strings.ToLower(strings.TrimSpace(site.AreaSuggestions[i].City))
		if site.AreaSuggestions[i].City == "" {
			return Site{}, fmt.Errorf("site content: area suggestion %d has no city", i)
		}
	}
	return site, nil
}
