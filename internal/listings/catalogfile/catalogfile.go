// Package catalogfile reads listing catalogs from YAML documents and
// validates them against the embedded JSON Schema before decoding.
package catalogfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"homely_backend/internal/listings/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://homely.ai/schemas/catalog.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

type document struct {
	Listings []domain.Listing `yaml:"listings"`
}

// Default returns the embedded launch catalog.
func Default() ([]domain.Listing, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// Parse validates and decodes a YAML catalog. Listing ids must be unique.
func Parse(r io.Reader) ([]domain.Listing, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if err := Validate(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[int]struct{}, len(doc.Listings))
	for _, l := range doc.Listings {
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %d", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	if doc.Listings == nil {
		doc.Listings = []domain.Listing{}
	}
	return doc.Listings, nil
}

// Validate checks a YAML catalog against the schema.
func Validate(raw []byte) error {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("parse catalog yaml: %w", err)
	}

	// jsonschema expects encoding/json value types.
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("convert catalog to json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(asJSON))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("convert catalog to json: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(instance); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}

// Warning flags a listing whose display price the legacy parser misreads.
type Warning struct {
	ListingID int
	Price     string
	Reading   domain.PriceReading
}

func (w Warning) String() string {
	return fmt.Sprintf("listing %d: price %q reads as %g lakhs (%d digit runs)",
		w.ListingID, w.Price, w.Reading.Lakhs, w.Reading.DigitRuns)
}

// PriceWarnings lists every ambiguous display price.
func PriceWarnings(listings []domain.Listing) []Warning {
	var out []Warning
	for _, l := range listings {
		reading := domain.InspectPrice(l.Price)
		if reading.Ambiguous {
			out = append(out, Warning{ListingID: l.ID, Price: strings.TrimSpace(l.Price), Reading: reading})
		}
	}
	return out
}
