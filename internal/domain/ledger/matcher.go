package ledger

import (
	"sync"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// FindMatch scans candidates in order and returns the first customer
// whose normalized name or normalized company name equals the
// normalized ledger name. Returns nil when no candidate matches.
// Candidate order decides ties, so callers must pass a stably ordered
// slice.
func FindMatch(ledgerName string, candidates []partner.Customer) *partner.Customer {
	target := NormalizeName(ledgerName)
	if target == "" {
		return nil
	}
	for i := range candidates {
		c := &candidates[i]
		if NormalizeName(c.Name) == target {
			return c
		}
		if c.CompanyName != "" && NormalizeName(c.CompanyName) == target {
			return c
		}
	}
	return nil
}

type matchEntry struct {
	customerID uuid.UUID
	matched    bool
}

// MatchCache memoizes match resolutions for a single sync run, keyed by
// ledger customer ID. Both hits and misses are recorded so that an
// unmatched ledger customer is resolved at most once per run. The cache
// is owned by the run that created it and is discarded when the run
// ends; it is safe for concurrent use.
type MatchCache struct {
	mu      sync.Mutex
	entries map[int64]matchEntry
}

// NewMatchCache creates an empty run-scoped match cache
func NewMatchCache() *MatchCache {
	return &MatchCache{entries: make(map[int64]matchEntry)}
}

// Resolve returns the cached resolution for the given ledger customer,
// invoking resolve to compute and record it on first sight. The lock is
// held across resolve, so concurrent callers for the same run never
// compute a resolution twice or race to insert competing entries.
func (c *MatchCache) Resolve(ledgerCustomerID int64, resolve func() (uuid.UUID, bool)) (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[ledgerCustomerID]; ok {
		return e.customerID, e.matched
	}

	id, matched := resolve()
	c.entries[ledgerCustomerID] = matchEntry{customerID: id, matched: matched}
	return id, matched
}

// StoreMatch records a known link without invoking the matcher. Used to
// seed the cache from links already persisted on customers.
func (c *MatchCache) StoreMatch(ledgerCustomerID int64, customerID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ledgerCustomerID] = matchEntry{customerID: customerID, matched: true}
}

// Lookup returns the cached resolution without computing anything
func (c *MatchCache) Lookup(ledgerCustomerID int64) (uuid.UUID, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ledgerCustomerID]
	return e.customerID, e.matched, ok
}

// Len returns the number of cached resolutions
func (c *MatchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
