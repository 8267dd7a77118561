package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"homely_backend/platform/validator"
)

func defaultService(t *testing.T) *Service {
	t.Helper()
	site, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return NewService(site)
}

func TestDefaultSiteDecodes(t *testing.T) {
	site, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if site.BrandName != "HomelyAI" || len(site.Hero.Slides) != 3 || len(site.AreaSuggestions) != 4 {
		t.Fatalf("unexpected site %+v", site)
	}
	if len(site.Footer.Partners.Logos) != 7 || len(site.Footer.Links) != 2 {
		t.Fatalf("unexpected footer %+v", site.Footer)
	}
}

func TestParseRejectsUnknownFieldsAndMissingNumber(t *testing.T) {
	if _, err := Parse(strings.NewReader("brandName: x\nsurprise: 1\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := Parse(strings.NewReader("brandName: x\n")); err == nil {
		t.Fatalf("expected missing whatsapp number error")
	}
}

func TestAreaSuggestions(t *testing.T) {
	svc := defaultService(t)

	tests := []struct {
		query string
		first string
		count int
	}{
		{"ban", "Koramangala, Bangalore", 5},
		{"MUM", "Bandra, Mumbai", 5},
		{"  hyd ", "Jubilee Hills, Hyderabad", 5},
		{"de", "", 0},
		{"pune", "", 0},
		{"", "", 0},
	}
	for _, tt := range tests {
		got := svc.AreaSuggestions(tt.query)
		if len(got) != tt.count {
			t.Fatalf("%q: expected %d suggestions, got %v", tt.query, tt.count, got)
		}
		if tt.count > 0 && got[0] != tt.first {
			t.Fatalf("%q: expected first %q, got %q", tt.query, tt.first, got[0])
		}
		if got == nil {
			t.Fatalf("%q: suggestions must not be nil", tt.query)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	svc := defaultService(t)

	tests := []struct {
		placement string
		greeting  string
	}{
		{"", "Hello! I'm interested in finding a property. Can you assist me?"},
		{"hero", "Hello! I'm interested in finding a property. Can you assist me?"},
		{"floating", "Hello! I'm interested in a property I saw on HomelyAI."},
		{"sidebar", "Hello! I'm interested in your projects and would like professional assistance."},
	}
	for _, tt := range tests {
		link, err := svc.WhatsAppLink(tt.placement)
		if err != nil {
			t.Fatalf("WhatsAppLink(%q): %v", tt.placement, err)
		}
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("parse %q: %v", link, err)
		}
		if u.Host != "wa.me" || u.Path != "/918890178737" {
			t.Fatalf("unexpected link %q", link)
		}
		if got := u.Query().Get("text"); got != tt.greeting {
			t.Fatalf("placement %q: unexpected greeting %q", tt.placement, got)
		}
		if strings.ContainsAny(link, " +") {
			t.Fatalf("link must be escaped with %%20: %q", link)
		}
	}

	if _, err := svc.WhatsAppLink("footer"); err == nil {
		t.Fatalf("expected error for unknown placement")
	}
}

func TestWhatsAppLinkEscapesQueryDelimiters(t *testing.T) {
	greeting := "Plots & villas = 1+1 @ HSR: ok?"
	svc := NewService(Site{WhatsApp: WhatsApp{
		Number:    "918890178737",
		Greetings: map[string]string{"hero": greeting},
	}})

	link, err := svc.WhatsAppLink("hero")
	if err != nil {
		t.Fatalf("WhatsAppLink: %v", err)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse %q: %v", link, err)
	}
	if len(u.Query()) != 1 {
		t.Fatalf("greeting leaked into other query params: %q", link)
	}
	if got := u.Query().Get("text"); got != greeting {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestCopyrightUsesCurrentYear(t *testing.T) {
	svc := defaultService(t)
	svc.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }

	got := svc.Site().Footer.CopyrightText
	if got != "© 2031 HomelyAI Technologies Pvt. Ltd. All rights reserved." {
		t.Fatalf("unexpected copyright %q", got)
	}
}

func TestContentEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(defaultService(t), validator.New())
	engine := gin.New()
	engine.GET("/content", h.Site)
	engine.GET("/content/area-suggestions", h.AreaSuggestions)
	engine.GET("/content/whatsapp", h.WhatsApp)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/content/area-suggestions?q=del")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body suggestionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Suggestions) != 5 || body.Suggestions[0] != "Hauz Khas, Delhi" {
		t.Fatalf("unexpected suggestions %v", body.Suggestions)
	}

	if rec := get("/content/whatsapp?placement=floating"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := get("/content/whatsapp?placement=nowhere"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := get("/content"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"brandName":"HomelyAI"`) {
		t.Fatalf("unexpected site response %d %s", rec.Code, rec.Body.String())
	}
}
