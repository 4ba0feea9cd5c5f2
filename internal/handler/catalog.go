package handler

import (
	"net/http"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/search"
)

// CatalogOption is one type-ahead suggestion. Highlight is the byte range of
// the label that matched the query, or null when browsing without a query.
type CatalogOption struct {
	Code      string       `json:"code"`
	Label     string       `json:"label"`
	Highlight *search.Span `json:"highlight"`
}

// CatalogList is the body of GET /cities and GET /languages.
type CatalogList struct {
	Data []CatalogOption `json:"data"`
}

// ListCities handles GET /cities?q=&limit=.
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	s.searchCatalog(w, r, "cities", s.cities)
}

// ListLanguages handles GET /languages?q=&limit=.
func (s *Server) ListLanguages(w http.ResponseWriter, r *http.Request) {
	s.searchCatalog(w, r, "languages", s.languages)
}

// searchCatalog filters c by ?q=. Browsing (no query) is capped at the
// browse limit and searching at the tighter search limit; an explicit
// ?limit= may only lower those caps.
func (s *Server) searchCatalog(w http.ResponseWriter, r *http.Request, name string, c Catalog) {
	var (
		q     string
		limit *int
	)
	if err := queryParam(r, "q", &q); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		badRequest(w, err.Error())
		return
	}

	capped := s.searchLimit
	if search.Normalize(q) == "" {
		capped = s.browseLimit
	}
	if limit != nil {
		if *limit < 1 {
			badRequest(w, "limit must be at least 1")
			return
		}
		capped = min(capped, *limit)
	}

	matches := c.Search(q, capped)
	data := make([]CatalogOption, len(matches))
	for i, m := range matches {
		data[i] = CatalogOption{Code: m.ID, Label: m.Label, Highlight: m.Span}
	}
	if s.metrics != nil {
		s.metrics.CatalogSearch(name, search.Normalize(q), len(data))
	}
	writeJSON(w, http.StatusOK, CatalogList{Data: data})
}
