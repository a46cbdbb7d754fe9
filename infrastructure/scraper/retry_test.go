package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

type extractorStub struct {
	calls     int
	failures  int
	snapshot  *ProductSnapshot
	permanent bool
}

func (s *extractorStub) Extract(_ context.Context, _ string) (*ProductSnapshot, error) {
	s.calls++
	if s.permanent || s.calls <= s.failures {
		return nil, errors.New("timeout simulado")
	}
	return s.snapshot, nil
}

func (s *extractorStub) ExtractLinks(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type staleStub struct {
	snapshot *ProductSnapshot
	calls    int
}

func (s *staleStub) LastKnownSnapshot(_ context.Context, _, _ string) (*ProductSnapshot, error) {
	s.calls++
	return s.snapshot, nil
}

func newTestFetcher(extractor Extractor, stale StaleSource) *RetryFetcher {
	return &RetryFetcher{
		extractor:   extractor,
		stale:       stale,
		maxAttempts: 5,
		backoff:     time.Millisecond,
	}
}

func TestRetryFetcher_SucessoNaPrimeiraTentativa(t *testing.T) {
	snapshot := &ProductSnapshot{SKU: "MLB1", Price: 99.9, Availability: domain.InStock}
	extractor := &extractorStub{snapshot: snapshot}
	stale := &staleStub{}

	result, err := newTestFetcher(extractor, stale).Fetch(context.Background(), "tenant-1", "https://mercadolivre.com.br/p/MLB1")

	require.NoError(t, err)
	assert.Equal(t, Fresh, result.Freshness)
	assert.Equal(t, snapshot, result.Snapshot)
	assert.Equal(t, 1, extractor.calls)
	assert.Zero(t, stale.calls, "não deve consultar o registro persistido sem falha")
}

func TestRetryFetcher_DegradaParaSnapshotPersistido(t *testing.T) {
	known := &ProductSnapshot{SKU: "MLB2", Price: 50}
	extractor := &extractorStub{permanent: true}
	stale := &staleStub{snapshot: known}

	result, err := newTestFetcher(extractor, stale).Fetch(context.Background(), "tenant-1", "https://mercadolivre.com.br/p/MLB2")

	require.NoError(t, err)
	assert.Equal(t, Stale, result.Freshness)
	assert.Equal(t, known, result.Snapshot)
	assert.Equal(t, 1, extractor.calls, "a degradação acontece na primeira falha")
}

func TestRetryFetcher_FalhaTerminalSemRegistroAnterior(t *testing.T) {
	extractor := &extractorStub{permanent: true}
	stale := &staleStub{}

	result, err := newTestFetcher(extractor, stale).Fetch(context.Background(), "tenant-1", "https://mercadolivre.com.br/p/MLB3")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 5, extractor.calls, "deve esgotar todas as tentativas")
}

func TestRetryFetcher_RecuperaAposFalhasTransitorias(t *testing.T) {
	snapshot := &ProductSnapshot{SKU: "MLB4", Price: 75}
	extractor := &extractorStub{failures: 2, snapshot: snapshot}

	result, err := newTestFetcher(extractor, &staleStub{}).Fetch(context.Background(), "tenant-1", "https://mercadolivre.com.br/p/MLB4")

	require.NoError(t, err)
	assert.Equal(t, Fresh, result.Freshness)
	assert.Equal(t, 3, extractor.calls)
}
