package form

import (
	"net/url"
	"strings"
)

// Pinned holds the values fixed by the page's query parameters. They survive
// a reset after a successful submission.
type Pinned struct {
	Location    string
	EquipmentID string
	EndpointURL string
}

// ParseParams reads lieu, equipment and scriptUrl. Unknown locations and
// equipment ids are ignored.
func ParseParams(q url.Values) Pinned {
	var p Pinned
	if lieu := q.Get("lieu"); IsLocation(lieu) {
		p.Location = lieu
	}
	if id := q.Get("equipment"); id != "" {
		if _, ok := Equipment(id); ok {
			p.EquipmentID = id
		}
	}
	p.EndpointURL = strings.TrimSpace(q.Get("scriptUrl"))
	return p
}

// Query encodes the pinned values back into query parameters.
func (p Pinned) Query() url.Values {
	q := url.Values{}
	if p.Location != "" {
		q.Set("lieu", p.Location)
	}
	if p.EquipmentID != "" {
		q.Set("equipment", p.EquipmentID)
	}
	if p.EndpointURL != "" {
		q.Set("scriptUrl", p.EndpointURL)
	}
	return q
}

// ResolveEndpoint picks the ingest URL: the query override when present,
// the configured URL otherwise.
func ResolveEndpoint(override, configured string) (string, error) {
	endpoint := strings.TrimSpace(override)
	if endpoint == "" {
		endpoint = strings.TrimSpace(configured)
	}
	if endpoint == "" {
		return "", ErrEndpointNotConfigured
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return "", ErrEndpointInvalid
	}
	return endpoint, nil
}
