package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	httpTimeout    = 10 * time.Second
	DefaultBaseURL = "https://date.nager.at/api/v3"
)

// newHTTPClient returns an http.Client with a 10-second timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// doGet performs a GET request and decodes the JSON response into dst.
func doGet(ctx context.Context, client *http.Client, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// Client fetches public holidays from the Nager.Date API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client for the public v3 endpoint.
func NewClient() *Client {
	return &Client{baseURL: DefaultBaseURL, client: newHTTPClient()}
}

// NewClientWithURL constructs a Client pointing at a custom base URL. Both the
// v2 and v3 endpoint generations are understood.
func NewClientWithURL(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: newHTTPClient()}
}

// Fetch retrieves all public holidays of one year for one country.
func (c *Client) Fetch(ctx context.Context, year int, countryCode string) ([]PublicHoliday, error) {
	endpoint := c.baseURL + "/PublicHolidays/" + strconv.Itoa(year) + "/" + url.PathEscape(countryCode)

	var holidays []PublicHoliday
	if err := doGet(ctx, c.client, endpoint, &holidays); err != nil {
		return nil, fmt.Errorf("public holidays fetch for %d/%s: %w", year, countryCode, err)
	}

	return holidays, nil
}
