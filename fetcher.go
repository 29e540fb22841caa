package harvest

import "context"

// Fetcher retrieves raw bytes from URLs. Implementations bound the number
// of in-flight requests for the lifetime of a run, pace outbound traffic,
// and retry transient failures with backoff.
//
// Failures are typed: ENOTFOUND for permanent failures such as HTTP 404
// (never retried), EUNAVAILABLE once the retry budget is exhausted on a
// transient failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
