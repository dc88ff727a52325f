package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.finna.fi/v1"
	defaultBuilding    = "0/Keski/"
	defaultFormat      = "1/Game/BoardGame/"
	defaultPageSize    = 100
	defaultHTTPTimeout = 30 * time.Second
)

var searchFields = []string{
	"id",
	"title",
	"alternativeTitles",
	"year",
	"publicationDates",
	"humanReadablePublicationDates",
	"languages",
	"originalLanguages",
	"authors",
	"publishers",
	"summary",
	"genres",
	"subjects",
	"playingTimes",
	"targetAudienceNotes",
	"physicalDescriptions",
}

// Config describes the catalog client configuration.
type Config struct {
	BaseURL    string
	Building   string
	Format     string
	PageSize   int
	HTTPClient *http.Client
}

// Client wraps the catalog search and record endpoints.
type Client struct {
	baseURL  *url.URL
	building string
	format   string
	pageSize int
	http     *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("library: parse base url: %w", err)
	}
	building := strings.TrimSpace(cfg.Building)
	if building == "" {
		building = defaultBuilding
	}
	format := strings.TrimSpace(cfg.Format)
	if format == "" {
		format = defaultFormat
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:  baseURL,
		building: building,
		format:   format,
		pageSize: pageSize,
		http:     client,
	}, nil
}

// FetchRecords pages through the search endpoint until the resumption token
// runs out and returns every board game record in the configured building.
func (c *Client) FetchRecords(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, errors.New("library: client is nil")
	}

	params := url.Values{}
	params.Set("lookfor", "")
	params.Add("filter[]", fmt.Sprintf("building:%q", c.building))
	params.Add("filter[]", fmt.Sprintf("~format:%q", c.format))
	for _, field := range searchFields {
		params.Add("field[]", field)
	}
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("resumptionToken", "*")

	var records []Record
	for {
		payload, err := c.search(ctx, params)
		if err != nil {
			return nil, err
		}
		for _, raw := range payload.Records {
			records = append(records, raw.record())
		}
		token := payload.ResumptionToken.Token
		if token == "" {
			break
		}
		params = url.Values{}
		params.Set("resumptionToken", token)
	}
	return records, nil
}

// Availability describes which branches hold copies of a record.
type Availability struct {
	ID            string
	Title         string
	Buildings     []Building
	Locations     []string
	Organizations []string
}

// Building is one holding location as the catalog reports it.
type Building struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// FetchAvailability looks up the holding locations for one record id.
func (c *Client) FetchAvailability(ctx context.Context, id string) (Availability, error) {
	if c == nil {
		return Availability{}, errors.New("library: client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Availability{}, errors.New("library: empty record id")
	}

	params := url.Values{}
	params.Set("id", id)
	body, err := c.get(ctx, c.baseURL.JoinPath("record"), params)
	if err != nil {
		return Availability{}, err
	}

	var payload struct {
		Status  string `json:"status"`
		Records []struct {
			Title     string `json:"title"`
			Buildings []struct {
				Value      string `json:"value"`
				Translated string `json:"translated"`
			} `json:"buildings"`
		} `json:"records"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Availability{}, fmt.Errorf("library: decode record response: %w", err)
	}
	if payload.Status != "OK" || len(payload.Records) == 0 {
		return Availability{}, fmt.Errorf("library: record %s not found", id)
	}

	record := payload.Records[0]
	availability := Availability{ID: id, Title: record.Title}
	for _, building := range record.Buildings {
		name := building.Translated
		if name == "" {
			name = building.Value
		}
		availability.Buildings = append(availability.Buildings, Building{
			Value: building.Value,
			Name:  name,
		})
		if parts := strings.Split(building.Value, "/"); len(parts) >= 2 && parts[1] != "" {
			if !contains(availability.Organizations, parts[1]) {
				availability.Organizations = append(availability.Organizations, parts[1])
			}
		}
		if name != "" && !contains(availability.Locations, name) {
			availability.Locations = append(availability.Locations, name)
		}
	}
	return availability, nil
}

func (c *Client) search(ctx context.Context, params url.Values) (*searchPayload, error) {
	body, err := c.get(ctx, c.baseURL.JoinPath("search"), params)
	if err != nil {
		return nil, err
	}
	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("library: decode search response: %w", err)
	}
	if payload.Status != "OK" {
		message := payload.StatusMessage
		if message == "" {
			message = "unknown error"
		}
		return nil, fmt.Errorf("library: search failed: %s", message)
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, endpoint *url.URL, params url.Values) ([]byte, error) {
	endpoint.RawQuery = params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("library: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("library: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("library: request failed (%s): %s", resp.Status, strings.TrimSpace(string(body)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("library: read response: %w", err)
	}
	return body, nil
}

type searchPayload struct {
	Status          string          `json:"status"`
	StatusMessage   string          `json:"statusMessage"`
	Records         []recordPayload `json:"records"`
	ResumptionToken struct {
		Token string `json:"token"`
	} `json:"resumptionToken"`
}

type recordPayload struct {
	ID                            string       `json:"id"`
	Title                         string       `json:"title"`
	AlternativeTitles             []string     `json:"alternativeTitles"`
	Year                          string       `json:"year"`
	PublicationDates              []string     `json:"publicationDates"`
	HumanReadablePublicationDates []string     `json:"humanReadablePublicationDates"`
	Languages                     []string     `json:"languages"`
	OriginalLanguages             []string     `json:"originalLanguages"`
	Authors                       AuthorGroups `json:"authors"`
	Publishers                    []string     `json:"publishers"`
	Summary                       []string     `json:"summary"`
	Genres                        []string     `json:"genres"`
	Subjects                      subjectList  `json:"subjects"`
	PlayingTimes                  []string     `json:"playingTimes"`
	TargetAudienceNotes           []string     `json:"targetAudienceNotes"`
	PhysicalDescriptions          []string     `json:"physicalDescriptions"`
}

func (p recordPayload) record() Record {
	return Record{
		ID:                            p.ID,
		Title:                         p.Title,
		AlternativeTitles:             p.AlternativeTitles,
		Year:                          parseYear(p.Year),
		PublicationDates:              p.PublicationDates,
		HumanReadablePublicationDates: p.HumanReadablePublicationDates,
		Languages:                     p.Languages,
		OriginalLanguages:             p.OriginalLanguages,
		Authors:                       p.Authors,
		Publishers:                    p.Publishers,
		Summary:                       p.Summary,
		Genres:                        p.Genres,
		Subjects:                      p.Subjects,
		PlayingTimes:                  p.PlayingTimes,
		TargetAudienceNotes:           p.TargetAudienceNotes,
		PhysicalDescriptions:          p.PhysicalDescriptions,
	}
}

// subjectList flattens the catalog's nested subject arrays into plain
// strings.
type subjectList []string

func (s *subjectList) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		*s = flat
		return nil
	}
	var nested [][]string
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("library: decode subjects: %w", err)
	}
	flattened := make([]string, 0, len(nested))
	for _, parts := range nested {
		if joined := strings.TrimSpace(strings.Join(parts, " ")); joined != "" {
			flattened = append(flattened, joined)
		}
	}
	*s = flattened
	return nil
}

func parseYear(value string) *int {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year == 0 {
		return nil
	}
	return &year
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
