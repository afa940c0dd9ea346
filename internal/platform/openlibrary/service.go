package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Sentinels substituted for data the catalog does not have.
const (
	TitleUnknown  = "Unknown"
	AuthorUnknown = "Unknown"
	DateUnknown   = "N/A"
	NoDescription = "This book has no description."
)

// unknownCoverBase is the path of the bundled fallback cover image, served
// as a static asset by the surrounding application.
const unknownCoverBase = "/static/covers/unknown"

// Cache capacities. Growth stops at the cap instead of evicting, since
// entries are meant to live as long as the process.
const (
	urlCacheMax    = 8192
	authorCacheMax = 8192
	coverCacheMax  = 8192
)

// WorkRecord is the normalized view of an Open Library work document.
type WorkRecord struct {
	WorkID      string   `json:"work_id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Date        string   `json:"date"`
	Subjects    []string `json:"subjects"`
	Description string   `json:"description"`
}

// CoverResult points at a cover image. Known is false when Open Library has
// no cover for the work; URL then names the fallback image at the requested
// size, so callers can always render it as-is.
type CoverResult struct {
	URL   string `json:"url"`
	Known bool   `json:"known"`
}

// Service resolves works, authors and covers. It keeps three independent
// caches: raw JSON responses keyed by URL, author display names keyed by
// author key, and confirmed cover base URLs keyed by work id.
type Service struct {
	client  *Client
	urls    *memo[json.RawMessage]
	authors *memo[string]
	covers  *memo[string]
}

func NewService(client *Client) *Service {
	return &Service{
		client:  client,
		urls:    newMemo[json.RawMessage](urlCacheMax),
		authors: newMemo[string](authorCacheMax),
		covers:  newMemo[string](coverCacheMax),
	}
}

type workDoc struct {
	Title            string      `json:"title"`
	Description      any         `json:"description"` // string or {"type": ..., "value": ...}
	FirstPublishDate string      `json:"first_publish_date"`
	Subjects         []string    `json:"subjects"`
	Authors          []authorRef `json:"authors"`
}

type authorRef struct {
	Author struct {
		Key string `json:"key"`
	} `json:"author"`
}

type authorDoc struct {
	Name string `json:"name"`
}

// fetchJSON returns the decoded body for url, hitting the network at most
// once per distinct URL over the life of the process.
func (s *Service) fetchJSON(ctx context.Context, url string) (json.RawMessage, error) {
	return s.urls.GetOrFetch(url, func() (json.RawMessage, error) {
		var raw json.RawMessage
		if err := s.client.getJSON(ctx, url, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	})
}

// ResolveWork fetches the work document for workID and normalizes it.
// An identifier that fails validation returns ErrInvalidWorkID without any
// network traffic. Fetch and decode failures surface as *WorkFetchError;
// ResolveWorks exists for call-sites that prefer to skip failed items.
func (s *Service) ResolveWork(ctx context.Context, workID string) (WorkRecord, error) {
	if !ValidWorkID(workID) {
		return WorkRecord{}, fmt.Errorf("%w: %q", ErrInvalidWorkID, workID)
	}

	fetchURL := fmt.Sprintf("%s/works/%s.json", s.client.baseURL, workID)
	raw, err := s.fetchJSON(ctx, fetchURL)
	if err != nil {
		return WorkRecord{}, &WorkFetchError{WorkID: workID, Err: err}
	}

	var doc workDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return WorkRecord{}, &WorkFetchError{WorkID: workID, Err: &DecodeError{URL: fetchURL, Err: err}}
	}

	rec := WorkRecord{
		WorkID:      workID,
		Title:       doc.Title,
		Authors:     s.resolveAuthors(ctx, doc.Authors),
		Date:        doc.FirstPublishDate,
		Subjects:    doc.Subjects,
		Description: descriptionText(doc.Description),
	}
	if rec.Title == "" {
		rec.Title = TitleUnknown
	}
	if rec.Date == "" {
		rec.Date = DateUnknown
	}
	if rec.Subjects == nil {
		rec.Subjects = []string{}
	}
	return rec, nil
}

// ResolveWorks resolves each identifier in turn, logging and skipping the
// ones that fail so one bad entry does not abort a whole list.
func (s *Service) ResolveWorks(ctx context.Context, workIDs []string) []WorkRecord {
	records := make([]WorkRecord, 0, len(workIDs))
	for _, id := range workIDs {
		rec, err := s.ResolveWork(ctx, id)
		if err != nil {
			log.Printf("openlibrary: skipping work %s: %v", id, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// resolveAuthors maps author references to display names, preserving input
// order. Lookups are cached per author key. A failed lookup substitutes
// "Unknown" and moves on; one bad author never sinks the enclosing work.
func (s *Service) resolveAuthors(ctx context.Context, refs []authorRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		key := ref.Author.Key
		name, err := s.authors.GetOrFetch(key, func() (string, error) {
			fetchURL := fmt.Sprintf("%s%s.json", s.client.baseURL, key)
			raw, err := s.fetchJSON(ctx, fetchURL)
			if err != nil {
				return "", err
			}
			var doc authorDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return "", &DecodeError{URL: fetchURL, Err: err}
			}
			if doc.Name == "" {
				return AuthorUnknown, nil
			}
			return doc.Name, nil
		})
		if err != nil {
			log.Printf("openlibrary: author lookup %s failed, substituting %q: %v", key, AuthorUnknown, err)
			name = AuthorUnknown
		}
		names = append(names, name)
	}
	return names
}

// ResolveCover checks whether a cover exists for workID and returns its
// image URL at the requested size: "S" when thumbnail, "M" otherwise.
// Covers are decorative, so remote failures never surface as errors: a 404
// simply means no cover, any other failure is logged as unexpected, and
// both yield the fallback image. Only the identifier check can fail.
// Confirmed covers are cached per work id.
func (s *Service) ResolveCover(ctx context.Context, workID string, thumbnail bool) (CoverResult, error) {
	if !ValidWorkID(workID) {
		return CoverResult{}, fmt.Errorf("%w: %q", ErrInvalidWorkID, workID)
	}

	size := "M"
	if thumbnail {
		size = "S"
	}

	base, err := s.covers.GetOrFetch(workID, func() (string, error) {
		base := fmt.Sprintf("%s/b/olid/%s", s.client.coversURL, workID)
		var raw json.RawMessage
		if err := s.client.getJSON(ctx, base+".json", &raw); err != nil {
			return "", err
		}
		return base, nil
	})
	if err != nil {
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			log.Printf("openlibrary: unexpected error checking cover for %s: %v", workID, err)
		}
		return CoverResult{URL: fmt.Sprintf("%s-%s.jpg", unknownCoverBase, size)}, nil
	}
	return CoverResult{URL: fmt.Sprintf("%s-%s.jpg", base, size), Known: true}, nil
}

// SearchByTitle normalizes text and returns the raw search payload. This is
// operator tooling for digging up work ids; the payload shape is whatever
// the search endpoint returns.
func (s *Service) SearchByTitle(ctx context.Context, text string) (json.RawMessage, error) {
	fetchURL := fmt.Sprintf("%s/search.json?q=%s", s.client.baseURL, NormalizeQuery(text))
	return s.fetchJSON(ctx, fetchURL)
}

// descriptionText flattens the description field, which Open Library
// returns either as a plain string or as a {"type", "value"} object.
func descriptionText(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case map[string]any:
		if s, ok := d["value"].(string); ok {
			return s
		}
	}
	return NoDescription
}
