package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/mmcloughlin/geohash"
	"golang.org/x/sync/singleflight"

	"homely_backend/internal/adapters/storage"
	"homely_backend/internal/listings/domain"
	"homely_backend/internal/listings/repository"
	"homely_backend/internal/listings/transport"
	"homely_backend/platform/apperr"
	"homely_backend/platform/logger"
)

const (
	// MsgCatalogUnavailable is shown when the listing source fails.
	MsgCatalogUnavailable = "Failed to load properties. Please try again later."

	msgListingNotFound = "listing not found"
	msgStorageDisabled = "image uploads are not configured"

	catalogKey       = "catalog"
	maxSimilar       = 4
	geohashPrecision = 6
)

// Options configures the listings service.
type Options struct {
	// CacheTTL bounds how long a catalog snapshot is reused. Zero disables caching.
	CacheTTL time.Duration
	// BaseURL is the public site URL used in share links.
	BaseURL string
	// Storage is optional; without it image presigning reports an error.
	Storage storage.StorageService
	Bucket  string
}

// Service provides business logic for listings.
type Service struct {
	source  repository.Source
	cache   *ttlcache.Cache[string, []domain.Listing]
	loads   singleflight.Group
	baseURL string
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

// New creates a new listings service.
func New(source repository.Source, opts Options, log *logger.Logger) *Service {
	s := &Service{
		source:  source,
		baseURL: opts.BaseURL,
		storage: opts.Storage,
		bucket:  opts.Bucket,
		log:     log,
	}
	if opts.CacheTTL > 0 {
		s.cache = ttlcache.New(
			ttlcache.WithTTL[string, []domain.Listing](opts.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []domain.Listing](),
		)
	}
	return s
}

// Catalog returns the current snapshot. Concurrent misses share one load.
// Callers must not modify the returned slice.
func (s *Service) Catalog(ctx context.Context) ([]domain.Listing, error) {
	if s.cache != nil {
		if item := s.cache.Get(catalogKey); item != nil {
			return item.Value(), nil
		}
	}

	v, err, _ := s.loads.Do(catalogKey, func() (any, error) {
		listings, err := s.source.All(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if listings == nil {
			listings = []domain.Listing{}
		}
		if s.cache != nil {
			s.cache.Set(catalogKey, listings, ttlcache.DefaultTTL)
		}
		return listings, nil
	})
	if err != nil {
		s.log.DatabaseError("load listing catalog", err)
		return nil, apperr.Unavailable(MsgCatalogUnavailable, err).WithOp("listings.Catalog")
	}
	return v.([]domain.Listing), nil
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(catalogKey)
	}
}

// Search filters and orders the catalog.
func (s *Service) Search(ctx context.Context, req transport.SearchRequest) (transport.ListingListResponse, error) {
	criteria, err := criteriaFrom(req)
	if err != nil {
		return transport.ListingListResponse{}, err
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return transport.ListingListResponse{}, err
	}

	matched := domain.FilterAndSort(catalog, criteria)
	items := make([]transport.ListingResponse, 0, len(matched))
	for _, l := range matched {
		items = append(items, transport.ListingResponse{
			Listing:    l,
			PriceValue: domain.ExtractPrice(l.Price, criteria.PriceParser),
		})
	}
	return transport.ListingListResponse{Items: items, Total: len(items)}, nil
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, id int) (domain.Listing, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return domain.Listing{}, err
	}
	for _, l := range catalog {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Listing{}, apperr.NotFound(msgListingNotFound)
}

// Similar returns up to four other listings with exactly the same location, in catalog order.
func (s *Service) Similar(ctx context.Context, id int) ([]domain.Listing, error) {
	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Listing, 0, maxSimilar)
	for _, l := range catalog {
		if l.ID != target.ID && l.Location == target.Location {
			out = append(out, l)
			if len(out) == maxSimilar {
				break
			}
		}
	}
	return out, nil
}

// Map returns a marker for every listing that passes the filters.
func (s *Service) Map(ctx context.Context, req transport.SearchRequest) (transport.MapResponse, error) {
	criteria, err := criteriaFrom(req)
	if err != nil {
		return transport.MapResponse{}, err
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return transport.MapResponse{}, err
	}

	matched := domain.FilterAndSort(catalog, criteria)
	markers := make([]transport.MarkerResponse, 0, len(matched))
	for _, l := range matched {
		point := domain.Project(l.Position)
		markers = append(markers, transport.MarkerResponse{
			ID:       l.ID,
			Title:    l.Title,
			Price:    l.Price,
			Type:     l.Kind,
			Featured: l.IsFeatured(),
			Top:      point.Top,
			Left:     point.Left,
			Geohash:  geohash.EncodeWithPrecision(l.Position.Lat, l.Position.Lng, geohashPrecision),
		})
	}
	return transport.MapResponse{Bounds: domain.IndiaBounds, Markers: markers}, nil
}

// Popup returns the info window anchored at the listing's projected position.
func (s *Service) Popup(ctx context.Context, id int) (transport.PopupResponse, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return transport.PopupResponse{}, err
	}
	point := domain.Project(l.Position)
	return transport.PopupResponse{
		ID:       l.ID,
		Title:    l.Title,
		Location: l.Location,
		Price:    l.Price,
		ImageURL: l.PrimaryImage(),
		Top:      point.Top,
		Left:     point.Left,
	}, nil
}

// ShareLinks builds the deep link and social share URLs for a listing.
func (s *Service) ShareLinks(ctx context.Context, id int) (transport.ShareResponse, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return transport.ShareResponse{}, err
	}

	link := s.baseURL + "/?property=" + strconv.Itoa(l.ID)
	text := "Check out this amazing property: " + l.Title
	return transport.ShareResponse{
		URL:      link,
		Text:     text,
		Twitter:  "https://twitter.com/intent/tweet?url=" + url.QueryEscape(link) + "&text=" + url.QueryEscape(text),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(link),
	}, nil
}

// PresignImageUpload returns a presigned PUT URL for a new listing photo.
func (s *Service) PresignImageUpload(ctx context.Context, id int, req transport.PresignImageRequest) (transport.PresignImageResponse, error) {
	if s.storage == nil {
		return transport.PresignImageResponse{}, apperr.Unavailable(msgStorageDisabled, nil)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return transport.PresignImageResponse{}, err
	}

	folder := fmt.Sprintf("listings/%d", id)
	presigned, err := s.storage.GenerateUploadURL(ctx, s.bucket, folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PresignImageResponse{}, err
	}
	return transport.PresignImageResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		PublicURL: s.storage.PublicURL(s.bucket, presigned.FileKey),
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

func criteriaFrom(req transport.SearchRequest) (domain.FilterCriteria, error) {
	tx, err := domain.ParseTransactionFilter(req.Type)
	if err != nil {
		return domain.FilterCriteria{}, apperr.Validation(err.Error())
	}
	parser, err := domain.ParsePriceParserMode(req.Parser)
	if err != nil {
		return domain.FilterCriteria{}, apperr.Validation(err.Error())
	}
	return domain.FilterCriteria{
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		MinBedrooms: req.Bedrooms,
		Transaction: tx,
		PriceParser: parser,
	}, nil
}
