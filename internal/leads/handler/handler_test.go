package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homely_backend/internal/events"
	"homely_backend/internal/leads/domain"
	"homely_backend/internal/leads/ports"
	"homely_backend/internal/leads/repository"
	"homely_backend/internal/leads/service"
	"homely_backend/internal/leads/transport"
	"homely_backend/platform/apperr"
	"homely_backend/platform/httpkit"
	"homely_backend/platform/logger"
	"homely_backend/platform/validator"
)

type sliceRepo struct{ leads []domain.Lead }

func (r *sliceRepo) Create(_ context.Context, l domain.Lead) (domain.Lead, error) {
	r.leads = append(r.leads, l)
	return l, nil
}

func (r *sliceRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	for _, l := range r.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Lead{}, repository.ErrNotFound
}

func (r *sliceRepo) List(context.Context, repository.ListParams) ([]domain.Lead, int, error) {
	return r.leads, len(r.leads), nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)           {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)                {}

type oneListing struct{}

func (oneListing) GetListingSummary(_ context.Context, id int) (ports.ListingSummary, error) {
	if id != 1 {
		return ports.ListingSummary{}, apperr.NotFound("listing not found")
	}
	return ports.ListingSummary{ID: 1, Title: "Modern Villa with Pool"}, nil
}

func newEngine() (*gin.Engine, *sliceRepo) {
	gin.SetMode(gin.TestMode)
	repo := &sliceRepo{}
	h := New(service.New(repo, oneListing{}, nopBus{}, logger.Discard()), validator.New())

	engine := gin.New()
	engine.POST("/leads/enquiries", h.SubmitEnquiry)
	engine.POST("/leads/visits", h.SubmitVisit)
	engine.POST("/leads/alerts", h.SubmitAlertSignup)
	engine.GET("/admin/leads", h.List)
	engine.GET("/admin/leads/:id", h.Get)
	return engine, repo
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSubmitEnquiryEndpoint(t *testing.T) {
	engine, repo := newEngine()

	rec := post(engine, "/leads/enquiries", `{"name":"Asha","email":"asha@example.com","phone":"9876543210","listingId":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body transport.SubmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != service.MsgEnquiryReceived || len(repo.leads) != 1 {
		t.Fatalf("unexpected response %+v", body)
	}
}

func TestSubmitEnquiryValidation(t *testing.T) {
	engine, repo := newEngine()

	rec := post(engine, "/leads/enquiries", `{"name":"Asha","email":"not-an-email","phone":"12","listingId":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body httpkit.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	details, _ := body.Details.(map[string]any)
	if details["Email"] != "email" || details["Phone"] != "in_phone" {
		t.Fatalf("unexpected details %+v", body.Details)
	}
	if len(repo.leads) != 0 {
		t.Fatalf("invalid form must not be stored")
	}

	if rec := post(engine, "/leads/enquiries", `{"name":"Asha","email":"a@example.com","phone":"9876543210","listingId":7}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown listing, got %d", rec.Code)
	}
}

func TestSubmitVisitValidatesDateAndTime(t *testing.T) {
	engine, _ := newEngine()

	rec := post(engine, "/leads/visits", `{"name":"Ravi","email":"r@example.com","phone":"9876543210","date":"12/03/2099","time":"16:30","listingId":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
	rec = post(engine, "/leads/visits", `{"name":"Ravi","email":"r@example.com","phone":"9876543210","date":"2099-03-12","time":"4pm","listingId":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad time, got %d", rec.Code)
	}
	rec = post(engine, "/leads/visits", `{"name":"Ravi","email":"r@example.com","phone":"9876543210","date":"2099-03-12","time":"16:30","listingId":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitAlertEndpoint(t *testing.T) {
	engine, _ := newEngine()
	rec := post(engine, "/leads/alerts", `{"name":"Meera","email":"m@example.com","phone":"+919876543210"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminEndpoints(t *testing.T) {
	engine, _ := newEngine()
	rec := post(engine, "/leads/alerts", `{"name":"Meera","email":"m@example.com","phone":"9876543210"}`)
	var created transport.SubmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	if rec := get("/admin/leads?kind=alert_signup"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := get("/admin/leads?kind=spam"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := get("/admin/leads/" + created.ID); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := get("/admin/leads/" + uuid.NewString()); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := get("/admin/leads/not-a-uuid"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
