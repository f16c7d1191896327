package fetcher

import (
	"context"

	"github.com/rohmanhakim/html2md/pkg/failure"
	"github.com/rohmanhakim/html2md/pkg/retry"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
