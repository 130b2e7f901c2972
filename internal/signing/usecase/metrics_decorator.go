package usecase

import (
	"context"
	"time"

	"github.com/nvish-ganesh/contentful-embargoed-api/internal/metrics"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
)

// signURLUseCaseWithMetrics decorates SignURLUseCase with metrics instrumentation.
type signURLUseCaseWithMetrics struct {
	next    SignURLUseCase
	metrics metrics.BusinessMetrics
}

// NewSignURLUseCaseWithMetrics wraps a SignURLUseCase with metrics recording.
func NewSignURLUseCaseWithMetrics(useCase SignURLUseCase, m metrics.BusinessMetrics) SignURLUseCase {
	return &signURLUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SignURL records metrics for URL signing operations.
func (s *signURLUseCaseWithMetrics) SignURL(
	ctx context.Context,
	input *signingDomain.SignURLInput,
) (*signingDomain.SignURLOutput, error) {
	start := time.Now()
	output, err := s.next.SignURL(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "signing", "sign_url", status)
	s.metrics.RecordDuration(ctx, "signing", "sign_url", time.Since(start), status)

	return output, err
}
