// Package catalog loads the fixed lookup lists the trip forms choose from
// (cities/airports and spoken languages) and answers type-ahead queries
// against them.
//
// Lists are embedded CSV files decoded with csvutil. Labels are folded to
// plain ASCII on load ("Zürich" becomes "Zurich") so that a user typing
// without accents still matches; the search package only keeps [a-z0-9].
package catalog

import (
	"bytes"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jszwec/csvutil"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/search"
)

//go:embed data/*.csv
var dataFS embed.FS

// cityRecord mirrors one row of data/cities.csv.
type cityRecord struct {
	Code    string `csv:"code"`
	Name    string `csv:"name"`
	Country string `csv:"country"`
}

// languageRecord mirrors one row of data/languages.csv.
type languageRecord struct {
	Name string `csv:"name"`
}

// Catalog is an immutable, ordered list of options with lookup by ID.
// It is safe for concurrent use.
type Catalog struct {
	options []search.Option
	byID    map[string]search.Option
}

// New builds a Catalog from options, keeping their order.
// Duplicate IDs are rejected.
func New(options []search.Option) (*Catalog, error) {
	c := &Catalog{
		options: make([]search.Option, 0, len(options)),
		byID:    make(map[string]search.Option, len(options)),
	}
	for _, o := range options {
		key := strings.ToUpper(o.ID)
		if _, dup := c.byID[key]; dup {
			return nil, fmt.Errorf("catalog.New: duplicate id %q", o.ID)
		}
		c.byID[key] = o
		c.options = append(c.options, o)
	}
	return c, nil
}

// Cities returns the embedded airport catalog. Labels look like "Paris (CDG)"
// and IDs are the IATA codes.
func Cities() (*Catalog, error) {
	b, err := dataFS.ReadFile("data/cities.csv")
	if err != nil {
		return nil, fmt.Errorf("catalog.Cities: %w", err)
	}
	return LoadCities(bytes.NewReader(b))
}

// Languages returns the embedded language catalog. Label and ID are both the
// language name.
func Languages() (*Catalog, error) {
	b, err := dataFS.ReadFile("data/languages.csv")
	if err != nil {
		return nil, fmt.Errorf("catalog.Languages: %w", err)
	}
	return LoadLanguages(bytes.NewReader(b))
}

// LoadCities decodes a code,name,country CSV with a header row.
func LoadCities(r io.Reader) (*Catalog, error) {
	var rows []cityRecord
	if err := decode(r, &rows); err != nil {
		return nil, fmt.Errorf("catalog.LoadCities: %w", err)
	}
	opts := make([]search.Option, 0, len(rows))
	for _, row := range rows {
		code := strings.ToUpper(strings.TrimSpace(row.Code))
		if code == "" {
			continue
		}
		name, err := foldASCII(strings.TrimSpace(row.Name))
		if err != nil {
			return nil, fmt.Errorf("catalog.LoadCities: fold %q: %w", row.Name, err)
		}
		opts = append(opts, search.Option{Label: fmt.Sprintf("%s (%s)", name, code), ID: code})
	}
	return New(opts)
}

// LoadLanguages decodes a single-column name CSV with a header row.
func LoadLanguages(r io.Reader) (*Catalog, error) {
	var rows []languageRecord
	if err := decode(r, &rows); err != nil {
		return nil, fmt.Errorf("catalog.LoadLanguages: %w", err)
	}
	opts := make([]search.Option, 0, len(rows))
	for _, row := range rows {
		name, err := foldASCII(strings.TrimSpace(row.Name))
		if err != nil {
			return nil, fmt.Errorf("catalog.LoadLanguages: fold %q: %w", row.Name, err)
		}
		if name == "" {
			continue
		}
		opts = append(opts, search.Option{Label: name, ID: name})
	}
	return New(opts)
}

// Search filters the catalog in order. See search.FilterOptions.
func (c *Catalog) Search(query string, limit int) []search.Match {
	return search.FilterOptions(c.options, query, limit)
}

// Lookup returns the option with the given ID, ignoring case.
func (c *Catalog) Lookup(id string) (search.Option, bool) {
	o, ok := c.byID[strings.ToUpper(strings.TrimSpace(id))]
	return o, ok
}

// Len returns the number of options.
func (c *Catalog) Len() int { return len(c.options) }

// decode reads every record of a headed CSV into v, a pointer to a slice.
// An empty input decodes to nothing.
func decode(r io.Reader, v any) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// foldASCII strips combining marks after canonical decomposition, so
// "São Paulo" becomes "Sao Paulo".
func foldASCII(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	return out, err
}
