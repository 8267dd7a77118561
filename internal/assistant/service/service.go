// Package service implements the Gemini-backed assistant: grounded one-shot
// answers, listing descriptions and streaming chat sessions.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/genai"

	"homely_backend/internal/assistant/transport"
	listingsdomain "homely_backend/internal/listings/domain"
	"homely_backend/platform/apperr"
	"homely_backend/platform/cache"
	"homely_backend/platform/logger"
)

// Client-facing fallback messages. They are returned verbatim in the error body.
const (
	MsgMarketNewsFailed  = "Sorry, I couldn't fetch the latest market news right now. Please try again."
	MsgLocalInfoFailed   = "Sorry, I couldn't find local information right now. Please ensure you've granted location permissions."
	MsgSmartSearchFailed = "Sorry, I couldn't generate a smart suggestion at this time. Please check your query and try again."
	MsgDescriptionFailed = "Sorry, I couldn't generate a description at this time. Please try again."
	MsgLocationRequired  = "I need your location to perform a local search. Please enable location services."
	MsgListingNotFound   = "Sorry, I couldn't find a property with that ID. Please enter a valid property ID."
)

const (
	upstreamService = "gemini"
	thinkingBudget  = int32(32768)
)

// Generator is the subset of the genai client used for one-shot calls.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ListingReader resolves a catalog listing by id.
type ListingReader interface {
	Get(ctx context.Context, id int) (listingsdomain.Listing, error)
}

// Models names the model used for each kind of call.
type Models struct {
	Grounded    string
	Description string
}

// Service answers one-shot assistant questions.
type Service struct {
	gen      Generator
	listings ListingReader
	models   Models
	cache    *cache.JSONCache
	log      *logger.Logger
}

// New creates an assistant service. answers may be nil to disable caching.
func New(gen Generator, listings ListingReader, models Models, answers *cache.JSONCache, log *logger.Logger) *Service {
	return &Service{
		gen:      gen,
		listings: listings,
		models:   models,
		cache:    answers,
		log:      log,
	}
}

// MarketNews answers a market question using Google Search grounding.
func (s *Service) MarketNews(ctx context.Context, req transport.MarketNewsRequest) (transport.AnswerResponse, error) {
	key := cache.Key("market-news", s.models.Grounded, req.Prompt)
	if answer, ok := s.cached(ctx, key); ok {
		return answer, nil
	}

	resp, err := s.gen.GenerateContent(ctx, s.models.Grounded, genai.Text(marketNewsPrompt(req.Prompt)), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err = checkResponse(resp, err); err != nil {
		s.log.UpstreamError(upstreamService, "market_news", err)
		return transport.AnswerResponse{}, apperr.Unavailable(MsgMarketNewsFailed, err).WithOp("assistant.MarketNews")
	}

	answer := transport.AnswerResponse{Text: resp.Text(), Sources: groundingSources(resp, true, false)}
	s.store(ctx, key, answer)
	return answer, nil
}

// LocalInfo answers a locality question using Google Maps grounding around the user.
func (s *Service) LocalInfo(ctx context.Context, req transport.LocalInfoRequest) (transport.AnswerResponse, error) {
	if req.Location == nil {
		return transport.AnswerResponse{}, apperr.Validation(MsgLocationRequired)
	}
	at := *req.Location

	resp, err := s.gen.GenerateContent(ctx, s.models.Grounded, genai.Text(localInfoPrompt(req.Prompt, at)), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(at.Latitude),
					Longitude: genai.Ptr(at.Longitude),
				},
			},
		},
	})
	if err = checkResponse(resp, err); err != nil {
		s.log.UpstreamError(upstreamService, "local_info", err)
		return transport.AnswerResponse{}, apperr.Unavailable(MsgLocalInfoFailed, err).WithOp("assistant.LocalInfo")
	}

	return transport.AnswerResponse{Text: resp.Text(), Sources: groundingSources(resp, false, true)}, nil
}

// SmartSearch summarises an area using both Search and Maps grounding.
func (s *Service) SmartSearch(ctx context.Context, req transport.SmartSearchRequest) (transport.AnswerResponse, error) {
	keyParts := []string{"smart-search", s.models.Grounded, req.Query}
	if req.Location != nil {
		keyParts = append(keyParts,
			strconv.FormatFloat(req.Location.Latitude, 'f', -1, 64),
			strconv.FormatFloat(req.Location.Longitude, 'f', -1, 64))
	}
	key := cache.Key(keyParts...)
	if answer, ok := s.cached(ctx, key); ok {
		return answer, nil
	}

	resp, err := s.gen.GenerateContent(ctx, s.models.Grounded, genai.Text(smartSearchPrompt(req.Query, req.Location)), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
			{GoogleMaps: &genai.GoogleMaps{}},
		},
	})
	if err = checkResponse(resp, err); err != nil {
		s.log.UpstreamError(upstreamService, "smart_search", err)
		return transport.AnswerResponse{}, apperr.Unavailable(MsgSmartSearchFailed, err).WithOp("assistant.SmartSearch")
	}

	answer := transport.AnswerResponse{Text: resp.Text(), Sources: groundingSources(resp, true, true)}
	s.store(ctx, key, answer)
	return answer, nil
}

// DescribeListing writes a marketing description for a catalog listing.
func (s *Service) DescribeListing(ctx context.Context, listingID int) (transport.DescriptionResponse, error) {
	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.DescriptionResponse{}, apperr.NotFound(MsgListingNotFound)
		}
		return transport.DescriptionResponse{}, err
	}

	resp, err := s.gen.GenerateContent(ctx, s.models.Description, genai.Text(descriptionPrompt(listing)), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(thinkingBudget)},
	})
	if err = checkResponse(resp, err); err != nil {
		s.log.UpstreamError(upstreamService, "describe_listing", err)
		return transport.DescriptionResponse{}, apperr.Unavailable(MsgDescriptionFailed, err).WithOp("assistant.DescribeListing")
	}

	return transport.DescriptionResponse{Text: resp.Text()}, nil
}

func (s *Service) cached(ctx context.Context, key string) (transport.AnswerResponse, bool) {
	var answer transport.AnswerResponse
	hit, err := s.cache.Get(ctx, key, &answer)
	if err != nil {
		s.log.Warn("assistant cache read failed", "error", err)
		return answer, false
	}
	return answer, hit
}

func (s *Service) store(ctx context.Context, key string, answer transport.AnswerResponse) {
	if err := s.cache.Set(ctx, key, answer); err != nil {
		s.log.Warn("assistant cache write failed", "error", err)
	}
}

var errEmptyResponse = errors.New("empty model response")

func checkResponse(resp *genai.GenerateContentResponse, err error) error {
	if err != nil {
		return fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return errEmptyResponse
	}
	return nil
}

// groundingSources collects citations from the first candidate, in chunk order.
func groundingSources(resp *genai.GenerateContentResponse, web, maps bool) []transport.Source {
	sources := []transport.Source{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case web && chunk.Web != nil:
			sources = append(sources, transport.Source{Title: chunk.Web.Title, URI: chunk.Web.URI, Type: transport.SourceWeb})
		case maps && chunk.Maps != nil:
			sources = append(sources, transport.Source{Title: chunk.Maps.Title, URI: chunk.Maps.URI, Type: transport.SourceMaps})
		}
	}
	return sources
}
