// Package ops implements the fleet operations behind the CLI commands.
//
// Every operation follows the same shape: resolve the target wallets from the
// store, do the per-wallet or per-batch network work strictly sequentially,
// record one result per unit of work, and report an overall outcome that
// distinguishes full success, partial failure, and total failure. A failing
// wallet or batch never aborts the run.
package ops

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/solfleet/internal/common"
	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	"github.com/lugondev/solfleet/internal/selector"
	isolana "github.com/lugondev/solfleet/internal/solana"
	"github.com/lugondev/solfleet/internal/store"
)

// ChainClient is the slice of the Solana RPC surface the operations need.
// *solana.Client implements it; tests substitute a fake.
type ChainClient interface {
	GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error)
	GetTokenBalance(ctx context.Context, tokenAccount solana.PublicKey) (uint64, uint8, error)
	AccountExists(ctx context.Context, pubkey solana.PublicKey) (bool, error)
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error)
	RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error)
	SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

var _ ChainClient = (*isolana.Client)(nil)

// Runner executes fleet operations against one store and one RPC endpoint.
type Runner struct {
	common.LoggerMixin

	client  ChainClient
	store   *store.Store
	main    *isolana.Wallet
	out     io.Writer
	metrics metrics.Metrics
}

// NewRunner creates a Runner. The main wallet may be nil for operations that
// do not sign anything (list, balance, import, create).
func NewRunner(client ChainClient, st *store.Store) *Runner {
	r := &Runner{
		LoggerMixin: common.NewLoggerMixin(),
		client:      client,
		store:       st,
		out:         os.Stdout,
	}
	r.metrics = metrics.NewLogMetrics(r.GetLogger())
	return r
}

// WithMain sets the operating wallet used to fund and sign transfers.
func (r *Runner) WithMain(w *isolana.Wallet) *Runner {
	r.main = w
	return r
}

// WithOutput redirects the per-line user output (default os.Stdout).
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

// WithMetrics replaces the default in-memory counters, e.g. with a
// NoopMetrics for quiet runs or a Collection fanning out to several sinks.
func (r *Runner) WithMetrics(m metrics.Metrics) *Runner {
	if m != nil {
		r.metrics = m
	}
	return r
}

// Metrics exposes the run counters.
func (r *Runner) Metrics() metrics.Metrics {
	return r.metrics
}

func (r *Runner) requireMain() (*isolana.Wallet, error) {
	if r.main == nil {
		return nil, ferrors.ErrMissingMainWallet
	}
	return r.main, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Target is one wallet an operation acts on: its 1-based store position plus
// the record itself.
type Target struct {
	Pos int
	Rec store.Record
}

// targets resolves selector positions to wallets. An empty selection means
// every stored wallet; positions beyond the store are dropped.
func (r *Runner) targets(positions []int) []Target {
	if len(positions) == 0 {
		out := make([]Target, r.store.Len())
		for i, rec := range r.store.All() {
			out[i] = Target{Pos: i + 1, Rec: rec}
		}
		return out
	}

	out := make([]Target, 0, len(positions))
	for _, pos := range selector.Filter(positions, r.store.Len()) {
		if rec, ok := r.store.Get(pos); ok {
			out = append(out, Target{Pos: pos, Rec: rec})
		}
	}
	return out
}

// subWallet parses a stored record's secret into a signing wallet.
func subWallet(rec store.Record) (*isolana.Wallet, error) {
	w, err := isolana.ParseSecret(rec.PrivateKey)
	if err != nil {
		return nil, ferrors.InvalidRecord(rec.Name, err)
	}
	if w.PublicKey().String() != rec.PublicKey {
		return nil, ferrors.ErrAddressMismatch
	}
	return w, nil
}

// outcome converts a finished report into the operation's overall error:
// nil when nothing failed, a partial-failure sentinel when failures mixed
// with successes or skips, and a terminal error when every unit failed.
func (r *Runner) outcome(ctx context.Context, rep *Report) error {
	rep.finish()
	if err := r.metrics.Flush(ctx); err != nil {
		r.GetLogger().Warn("metrics flush failed", "error", err)
	}

	s := rep.Summary
	switch {
	case s.Failed == 0 && s.Skipped == 0:
		return nil
	case s.Failed == 0 && s.Succeeded == 0:
		// Everything was skipped; nothing was attempted, nothing went wrong.
		return nil
	case s.Succeeded == 0 && s.Skipped == 0:
		return ferrors.Custom(fmt.Sprintf("all %d units of work failed", s.Failed))
	default:
		return ferrors.ErrPartialFailure
	}
}
