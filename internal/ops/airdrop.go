package ops

import (
	"context"

	"github.com/gagliardetto/solana-go"

	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	"github.com/lugondev/solfleet/pkg/amount"
)

// Airdrop requests faucet SOL for each selected wallet. Only meaningful on
// devnet and testnet; the faucet signature is reported without waiting for
// confirmation.
func (r *Runner) Airdrop(ctx context.Context, lamports uint64, positions []int) (*Report, error) {
	rep := newReport("airdrop")

	for _, t := range r.targets(positions) {
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsProcessed, 1)

		pubkey, err := solana.PublicKeyFromBase58(t.Rec.PublicKey)
		if err != nil {
			r.failItem(rep, t, "invalid stored address", ferrors.InvalidRecord(t.Rec.Name, err))
			continue
		}

		sig, err := r.client.RequestAirdrop(ctx, pubkey, lamports)
		if err != nil {
			r.failItem(rep, t, "airdrop request failed", err)
			continue
		}

		r.printf("%3d  %-20s requested %s  %s\n", t.Pos, t.Rec.Name, amount.FormatSOL(lamports), sig)
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsSucceeded, 1)
		rep.addItem(ItemResult{
			Position:  t.Pos,
			Wallet:    t.Rec.Name,
			Address:   t.Rec.PublicKey,
			Status:    StatusOK,
			Amount:    amount.FormatSOL(lamports),
			Signature: sig.String(),
		})
	}

	r.printSummary(rep)
	return rep, r.outcome(ctx, rep)
}
