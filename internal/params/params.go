// Package params keeps the calendar settings as a flat string map that is
// mirrored into the page URL's query string.
package params

import (
	"maps"
	"net/url"
	"sync"
)

// Recognised keys.
const (
	Lang         = "lang"
	StartDate    = "startDate"
	WeekStartsOn = "weekStartsOn"
	CountryCode  = "countryCode"
)

// Params is a query-param store. The zero value is not usable; call New.
type Params struct {
	mu     sync.RWMutex
	values map[string]string
}

// New merges query over defaults. The first value of each query key wins and
// empty values are ignored.
func New(defaults map[string]string, query url.Values) *Params {
	values := make(map[string]string, len(defaults)+len(query))
	maps.Copy(values, defaults)
	for k, vs := range query {
		if len(vs) == 0 || vs[0] == "" {
			continue
		}
		values[k] = vs[0]
	}
	return &Params{values: values}
}

// Get returns the current value of key, or "" when unset.
func (p *Params) Get(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

// Values returns a copy of all values.
func (p *Params) Values() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.values)
}

// Set updates one key. Values are not validated.
func (p *Params) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

// With returns a copy of p with key set to value.
func (p *Params) With(key, value string) *Params {
	c := &Params{values: p.Values()}
	c.values[key] = value
	return c
}

// Encode renders the values as a query string, keys sorted.
func (p *Params) Encode() string {
	q := make(url.Values)
	for k, v := range p.Values() {
		q.Set(k, v)
	}
	return q.Encode()
}

// URL returns path with the encoded query appended.
func (p *Params) URL(path string) string {
	q := p.Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}
