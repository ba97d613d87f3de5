package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/Taichi-iskw/tagscribe/internal/repository/impression"
	"github.com/Taichi-iskw/tagscribe/internal/repository/section"
	"github.com/Taichi-iskw/tagscribe/internal/repository/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/repository/transcript"
	"github.com/Taichi-iskw/tagscribe/internal/repository/video"
	"github.com/jackc/pgx/v5"
)

// Stores bundles the typed repositories bound to one connection or transaction
type Stores struct {
	Videos      video.Repository
	Transcripts transcript.Repository
	Blocks      transcript.BlockRepository
	Sections    section.Repository
	Taxonomy    taxonomy.Repository
	Impressions impression.Repository
}

// NewStores binds every repository to db
func NewStores(db common.DBTX) Stores {
	return Stores{
		Videos:      video.NewRepository(db),
		Transcripts: transcript.NewRepository(db),
		Blocks:      transcript.NewBlockRepository(db),
		Sections:    section.NewRepository(db),
		Taxonomy:    taxonomy.NewRepository(db),
		Impressions: impression.NewRepository(db),
	}
}

// TxRunner runs a unit of work inside a single database transaction
type TxRunner interface {
	InTx(ctx context.Context, fn func(stores Stores) error) error
}

// StoresFactory builds Stores for a transaction; swapped out in tests
type StoresFactory func(db common.DBTX) Stores

// pgTxRunner implements TxRunner on a pgx pool
type pgTxRunner struct {
	pool      common.Pool
	newStores StoresFactory
}

// NewTxRunner creates a TxRunner that opens read-committed transactions on pool
func NewTxRunner(pool common.Pool) TxRunner {
	return &pgTxRunner{
		pool:      pool,
		newStores: NewStores,
	}
}

// InTx commits when fn returns nil and rolls back on error or panic
func (r *pgTxRunner) InTx(ctx context.Context, fn func(stores Stores) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
		}
	}()

	if err = fn(r.newStores(tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return common.HandlePostgreSQLError(err, "failed to commit transaction")
	}
	return nil
}
