package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError reports a non-200 response from the API.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: %s returned %d", e.URL, e.StatusCode)
}

// Client provides read-only access to the creature, species and
// evolution-chain endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client rooted at baseURL (for example https://pokeapi.co/api/v2).
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pokeapi base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse pokeapi base url: %w", err)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ListPokemon returns up to limit creature summaries.
func (c *Client) ListPokemon(ctx context.Context, limit int) ([]NamedResource, error) {
	return c.list(ctx, "pokemon", limit)
}

// ListSpecies returns up to limit species summaries.
func (c *Client) ListSpecies(ctx context.Context, limit int) ([]NamedResource, error) {
	return c.list(ctx, "pokemon-species", limit)
}

// Pokemon fetches a creature detail from the URL found in a listing.
func (c *Client) Pokemon(ctx context.Context, detailURL string) (*Pokemon, error) {
	var payload Pokemon
	if err := c.getJSON(ctx, detailURL, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PokemonByName fetches a creature detail by its API name.
func (c *Client) PokemonByName(ctx context.Context, name string) (*Pokemon, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("name must not be empty")
	}
	return c.Pokemon(ctx, c.baseURL+"/pokemon/"+url.PathEscape(name))
}

// Species fetches a species detail from the URL found in a listing.
func (c *Client) Species(ctx context.Context, detailURL string) (*Species, error) {
	var payload Species
	if err := c.getJSON(ctx, detailURL, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// EvolutionChain fetches the chain referenced by a species.
func (c *Client) EvolutionChain(ctx context.Context, chainURL string) (*EvolutionChain, error) {
	var payload EvolutionChain
	if err := c.getJSON(ctx, chainURL, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) list(ctx context.Context, resource string, limit int) ([]NamedResource, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	endpoint, err := url.Parse(c.baseURL + "/" + resource + "/")
	if err != nil {
		return nil, fmt.Errorf("parse pokeapi url: %w", err)
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = params.Encode()

	var payload ListResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	results := payload.Results
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	if strings.TrimSpace(target) == "" {
		return errors.New("pokeapi: empty url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}
	return nil
}

// SpeciesToPokemonURL rewrites a species URL into the matching creature URL,
// the way stage sprites are looked up for an evolution chain.
func SpeciesToPokemonURL(speciesURL string) string {
	return strings.Replace(speciesURL, "/pokemon-species/", "/pokemon/", 1)
}

// IDFromURL extracts the trailing numeric id from a resource URL such as
// https://pokeapi.co/api/v2/pokemon-species/25/. It returns 0 when absent.
func IDFromURL(resourceURL string) int {
	trimmed := strings.TrimRight(resourceURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil || id < 0 {
		return 0
	}
	return id
}
