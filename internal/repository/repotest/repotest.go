// Package repotest provides testify mocks of the repository interfaces for service tests.
package repotest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Taichi-iskw/tagscribe/internal/repository"
)

// Mocks holds one mock per repository
type Mocks struct {
	Videos      *VideoRepository
	Transcripts *TranscriptRepository
	Blocks      *BlockRepository
	Sections    *SectionRepository
	Taxonomy    *TaxonomyRepository
	Impressions *ImpressionRepository
}

// NewMocks creates a fresh set of mocks
func NewMocks() *Mocks {
	return &Mocks{
		Videos:      &VideoRepository{},
		Transcripts: &TranscriptRepository{},
		Blocks:      &BlockRepository{},
		Sections:    &SectionRepository{},
		Taxonomy:    &TaxonomyRepository{},
		Impressions: &ImpressionRepository{},
	}
}

// Stores exposes the mocks as repository.Stores
func (m *Mocks) Stores() repository.Stores {
	return repository.Stores{
		Videos:      m.Videos,
		Transcripts: m.Transcripts,
		Blocks:      m.Blocks,
		Sections:    m.Sections,
		Taxonomy:    m.Taxonomy,
		Impressions: m.Impressions,
	}
}

// TxRunner returns a runner that hands the mocks to fn and counts invocations
func (m *Mocks) TxRunner() *FakeTxRunner {
	return &FakeTxRunner{stores: m.Stores()}
}

// AssertExpectations checks every mock
func (m *Mocks) AssertExpectations(t mock.TestingT) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	m.Videos.AssertExpectations(t)
	m.Transcripts.AssertExpectations(t)
	m.Blocks.AssertExpectations(t)
	m.Sections.AssertExpectations(t)
	m.Taxonomy.AssertExpectations(t)
	m.Impressions.AssertExpectations(t)
}

// FakeTxRunner runs fn directly against mock stores
type FakeTxRunner struct {
	stores repository.Stores
	Calls  int
}

func (f *FakeTxRunner) InTx(ctx context.Context, fn func(stores repository.Stores) error) error {
	f.Calls++
	return fn(f.stores)
}
