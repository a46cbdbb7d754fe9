package scraper

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/config"
)

// ErrExtractionFailed é o erro terminal do fetch: todas as tentativas
// falharam e não existia registro anterior para degradar.
var ErrExtractionFailed = errors.New("extração falhou após todas as tentativas")

// StaleSource devolve o último snapshot persistido para uma URL de um
// tenant, ou nil quando o link nunca foi raspado com sucesso.
type StaleSource interface {
	LastKnownSnapshot(ctx context.Context, tenantID, url string) (*ProductSnapshot, error)
}

// RetryFetcher envolve o extrator com tentativas limitadas e a política de
// degradação: uma falha transitória nunca apaga um preço já conhecido.
type RetryFetcher struct {
	extractor   Extractor
	stale       StaleSource
	maxAttempts int
	backoff     time.Duration
}

func NewRetryFetcher(extractor Extractor, stale StaleSource, cfg config.Scraper) *RetryFetcher {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	backoff := time.Duration(cfg.BackoffSeconds) * time.Second
	if backoff <= 0 {
		backoff = time.Second
	}

	return &RetryFetcher{
		extractor:   extractor,
		stale:       stale,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Fetch tenta extrair a página até maxAttempts vezes com backoff fixo. Na
// primeira falha consulta o registro persistido: existindo, devolve a leitura
// marcada como Stale em vez de insistir às cegas. Sem registro anterior as
// tentativas seguem até o esgotamento, que é um erro terminal do chamador.
func (f *RetryFetcher) Fetch(ctx context.Context, tenantID, url string) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		snapshot, err := f.extractor.Extract(ctx, url)
		if err == nil {
			return &Result{Snapshot: snapshot, Freshness: Fresh}, nil
		}

		lastErr = err
		logrus.WithError(err).WithFields(logrus.Fields{
			"url":       url,
			"tentativa": attempt,
		}).Warn("Falha na extração da página")

		if attempt == 1 && f.stale != nil {
			known, staleErr := f.stale.LastKnownSnapshot(ctx, tenantID, url)
			if staleErr != nil {
				logrus.WithError(staleErr).Warn("Erro ao consultar o último snapshot conhecido")
			}
			if known != nil {
				return &Result{Snapshot: known, Freshness: Stale}, nil
			}
		}

		if attempt < f.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.backoff):
			}
		}
	}

	return nil, errors.Wrapf(ErrExtractionFailed, "url %s: %v", url, lastErr)
}
