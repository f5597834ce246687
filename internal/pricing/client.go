package pricing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

const fetchTimeout = 10 * time.Second

// Entry is one normalized catalog item. Name is the lowercased package name,
// Description a formatted price summary like
// "from 15 AED | Dry Clean: 15 aed, Steam: 8 aed".
type Entry struct {
	Name        string
	Description string
}

// Catalog holds normalized price entries in remote-API order.
type Catalog struct {
	entries []Entry
}

func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Client fetches the remote package catalog. Every failure mode degrades to a
// nil catalog; errors are logged and never surfaced to the caller.
type Client struct {
	url    string
	client *http.Client
	log    *logging.Logger
}

func NewClient(url string, log *logging.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

type packageEntry struct {
	Name     string           `json:"name"`
	Price    *float64         `json:"price"`
	ItemType []map[string]any `json:"itemtype"`
}

// FetchCatalog fetches and normalizes the live price list. It returns nil on
// network failure, a non-2xx status, malformed JSON, a non-array packages
// field, or when no package yields a usable description. The catalog is never
// partially populated from a response that fails parsing.
func (c *Client) FetchCatalog(ctx context.Context) *Catalog {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.log.Warn("pricing request build failed", "error", err)
		return nil
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("could not fetch prices from API", "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("pricing API returned non-success status", "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("failed to read pricing response", "error", err)
		return nil
	}

	var payload struct {
		Packages []packageEntry `json:"packages"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.Warn("pricing API did not return the expected JSON shape", "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(payload.Packages))
	for _, pkg := range payload.Packages {
		name := strings.TrimSpace(pkg.Name)
		if name == "" {
			continue
		}

		var parts []string
		if pkg.Price != nil {
			parts = append(parts, "from "+formatPrice(*pkg.Price)+" AED")
		}
		if variants := formatVariants(pkg.ItemType); variants != "" {
			parts = append(parts, variants)
		}
		if len(parts) == 0 {
			continue
		}
		entries = append(entries, Entry{
			Name:        strings.ToLower(name),
			Description: strings.Join(parts, " | "),
		})
	}

	if len(entries) == 0 {
		c.log.Warn("no prices found after parsing pricing response")
		return nil
	}
	return &Catalog{entries: entries}
}

// formatVariants renders itemtype entries as "Dry Clean: 10, Steam: 5".
// Variant maps normally carry a single key; multi-key maps are emitted in
// sorted key order to keep output deterministic.
func formatVariants(itemTypes []map[string]any) string {
	var variants []string
	for _, variant := range itemTypes {
		keys := make([]string, 0, len(variant))
		for k := range variant {
			keys = append(keys, k)
		}
		if len(keys) > 1 {
			sort.Strings(keys)
		}
		for _, k := range keys {
			variants = append(variants, k+": "+formatValue(variant[k]))
		}
	}
	return strings.Join(variants, ", ")
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return formatPrice(f)
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
