package metadata

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, reporting).

Rules:
 - ErrorCause is for observability only.
 - It must never be used to derive retry, continuation, or abort decisions.
 - Pipeline packages MAY map their local errors to ErrorCause,
   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	// CauseUnknown: the failure does not map cleanly to any known category.
	CauseUnknown ErrorCause = iota
	// CauseNetworkFailure: transport-level failure or remote unavailability
	// (timeouts, DNS failures, connection resets).
	CauseNetworkFailure
	// CausePolicyDisallow: access denied by an explicit rule
	// (HTTP 401/403, rate limiting).
	CausePolicyDisallow
	// CauseContentInvalid: content was fetched but could not be processed
	// (non-HTML responses, empty or unextractable bodies, broken DOM).
	CauseContentInvalid
	// CauseStorageFailure: failure while writing the summary artifact.
	CauseStorageFailure
	// CauseInvariantViolation: an internal consistency check failed.
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

// CacheEvent classifies cache observations. Observational only; the store's
// behavior never depends on what was recorded.
type CacheEvent string

const (
	CacheHit     CacheEvent = "hit"
	CacheMiss    CacheEvent = "miss"
	CacheStore   CacheEvent = "store"
	CacheExpired CacheEvent = "expired"
	CacheSweep   CacheEvent = "sweep"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrField      AttributeKey = "field"
	AttrMessage    AttributeKey = "message"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrCacheKey   AttributeKey = "cache_key"
	AttrWritePath  AttributeKey = "write_path"
	AttrMethod     AttributeKey = "method"
)
