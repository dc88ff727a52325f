package bgg

import (
	"context"
	"encoding/json"
	"encoding/xml"
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
	defaultBaseURL        = "https://boardgamegeek.com/xmlapi2"
	defaultLinkedItemsURL = "https://api.geekdo.com/api/geekitem/linkeditems"
	defaultHTTPTimeout    = 30 * time.Second
)

// ErrStillProcessing reports that the API accepted a request but has not
// prepared the response yet. Callers should wait and retry.
var ErrStillProcessing = errors.New("bgg: request accepted, response still processing")

// Config describes the game database client configuration.
type Config struct {
	BaseURL        string
	LinkedItemsURL string
	HTTPClient     *http.Client
}

// Client wraps the game database XML API and its linked-items endpoint.
type Client struct {
	baseURL        *url.URL
	linkedItemsURL *url.URL
	http           *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("bgg: parse base url: %w", err)
	}
	linked := strings.TrimSpace(cfg.LinkedItemsURL)
	if linked == "" {
		linked = defaultLinkedItemsURL
	}
	linkedURL, err := url.Parse(linked)
	if err != nil {
		return nil, fmt.Errorf("bgg: parse linked items url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:        baseURL,
		linkedItemsURL: linkedURL,
		http:           client,
	}, nil
}

// SearchTitle queries the XML search endpoint for board games matching the
// title. Results keep the API's order.
func (c *Client) SearchTitle(ctx context.Context, title string) ([]Game, error) {
	if c == nil {
		return nil, errors.New("bgg: client is nil")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("bgg: empty search title")
	}
	params := url.Values{}
	params.Set("query", title)
	params.Set("type", "boardgame")

	body, err := c.get(ctx, c.baseURL.JoinPath("search"), params)
	if err != nil {
		return nil, err
	}

	var payload searchPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("bgg: decode search response: %w", err)
	}

	games := make([]Game, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Type != "boardgame" || item.ID == "" {
			continue
		}
		games = append(games, Game{
			ID:    item.ID,
			Names: nameValues(item.Names),
			Year:  parseYear(item.Year),
		})
	}
	return games, nil
}

// SearchDesigner resolves a designer name to a designer id. It returns the
// first search hit, or an empty id when the name is unknown.
func (c *Client) SearchDesigner(ctx context.Context, name string) (string, error) {
	if c == nil {
		return "", errors.New("bgg: client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("bgg: empty designer name")
	}
	params := url.Values{}
	params.Set("query", name)
	params.Set("type", "boardgamedesigner")

	body, err := c.get(ctx, c.baseURL.JoinPath("search"), params)
	if err != nil {
		return "", err
	}

	var payload searchPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("bgg: decode designer search response: %w", err)
	}
	for _, item := range payload.Items {
		if item.ID != "" {
			return item.ID, nil
		}
	}
	return "", nil
}

// DesignerGames lists the board games credited to the designer id using the
// linked-items JSON endpoint.
func (c *Client) DesignerGames(ctx context.Context, designerID string) ([]Game, error) {
	if c == nil {
		return nil, errors.New("bgg: client is nil")
	}
	designerID = strings.TrimSpace(designerID)
	if designerID == "" {
		return nil, errors.New("bgg: empty designer id")
	}
	params := url.Values{}
	params.Set("ajax", "1")
	params.Set("nosession", "1")
	params.Set("objecttype", "person")
	params.Set("objectid", designerID)
	params.Set("subtype", "boardgamedesigner")
	params.Set("linkdata_index", "boardgame")
	params.Set("showcount", "100")

	body, err := c.get(ctx, cloneURL(c.linkedItemsURL), params)
	if err != nil {
		return nil, err
	}

	var payload linkedItemsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("bgg: decode linked items response: %w", err)
	}

	games := make([]Game, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ObjectType != "thing" || item.Subtype != "boardgame" {
			continue
		}
		id := rawString(item.ObjectID)
		if id == "" {
			continue
		}
		game := Game{ID: id}
		if item.Name != "" {
			game.Names = []string{item.Name}
		}
		if year := rawString(item.YearPublished); year != "" {
			game.Year = parseYearString(year)
		}
		games = append(games, game)
	}
	return games, nil
}

// GameDetails fetches the full attribute set for one game id, statistics
// included.
func (c *Client) GameDetails(ctx context.Context, id string) (GameDetails, error) {
	if c == nil {
		return GameDetails{}, errors.New("bgg: client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return GameDetails{}, errors.New("bgg: empty game id")
	}
	params := url.Values{}
	params.Set("id", id)
	params.Set("stats", "1")

	body, err := c.get(ctx, c.baseURL.JoinPath("thing"), params)
	if err != nil {
		return GameDetails{}, err
	}

	var payload thingPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return GameDetails{}, fmt.Errorf("bgg: decode thing response: %w", err)
	}
	if len(payload.Items) == 0 {
		return GameDetails{}, fmt.Errorf("bgg: game %s not found", id)
	}
	return detailsFromItem(payload.Items[0]), nil
}

func (c *Client) get(ctx context.Context, endpoint *url.URL, params url.Values) ([]byte, error) {
	endpoint.RawQuery = params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("bgg: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bgg: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		return nil, ErrStillProcessing
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("bgg: request failed (%s): %s", resp.Status, strings.TrimSpace(string(body)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bgg: read response: %w", err)
	}
	return body, nil
}

func detailsFromItem(item thingItem) GameDetails {
	details := GameDetails{
		ID:          item.ID,
		Names:       nameValues(item.Names),
		Year:        parseYear(item.Year),
		Description: strings.TrimSpace(item.Description),
		MinPlayers:  attrString(item.MinPlayers),
		MaxPlayers:  attrString(item.MaxPlayers),
		PlayingTime: attrString(item.PlayingTime),
		MinPlayTime: attrString(item.MinPlayTime),
		MaxPlayTime: attrString(item.MaxPlayTime),
		MinAge:      attrString(item.MinAge),
	}
	for _, name := range item.Names {
		if name.Type == "primary" {
			details.PrimaryName = name.Value
			break
		}
	}
	if details.PrimaryName == "" && len(details.Names) > 0 {
		details.PrimaryName = details.Names[0]
	}
	for _, link := range item.Links {
		switch link.Type {
		case "boardgamecategory":
			details.Categories = append(details.Categories, link.Value)
		case "boardgamemechanic":
			details.Mechanics = append(details.Mechanics, link.Value)
		case "boardgamefamily":
			details.Families = append(details.Families, link.Value)
		case "boardgamedesigner":
			details.Designers = append(details.Designers, link.Value)
		case "boardgameartist":
			details.Artists = append(details.Artists, link.Value)
		case "boardgamepublisher":
			details.Publishers = append(details.Publishers, link.Value)
		}
	}
	if item.Statistics != nil {
		r := item.Statistics.Ratings
		details.AverageRating = attrString(r.Average)
		details.BayesAverage = attrString(r.BayesAverage)
		details.UsersRated = attrString(r.UsersRated)
		details.Weight = attrString(r.AverageWeight)
		details.Owned = attrString(r.Owned)
		for _, rank := range r.Ranks {
			if rank.Name == "boardgame" {
				details.Rank = rank.Value
				break
			}
		}
	}
	return details
}

func nameValues(names []nameValue) []string {
	values := make([]string, 0, len(names))
	for _, name := range names {
		if name.Value != "" {
			values = append(values, name.Value)
		}
	}
	return values
}

func attrString(value *attrValue) string {
	if value == nil {
		return ""
	}
	return value.Value
}

func parseYear(value *attrValue) *int {
	if value == nil {
		return nil
	}
	return parseYearString(value.Value)
}

func parseYearString(value string) *int {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year == 0 {
		return nil
	}
	return &year
}

func rawString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return trimmed
}

func cloneURL(u *url.URL) *url.URL {
	clone := *u
	return &clone
}
