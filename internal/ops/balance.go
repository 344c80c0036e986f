package ops

import (
	"context"

	"github.com/gagliardetto/solana-go"

	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	"github.com/lugondev/solfleet/pkg/amount"
)

// Balance prints the native balance of each selected wallet, or the balance
// of the given token when mint is non-nil. A wallet without a token account
// reports zero rather than failing.
func (r *Runner) Balance(ctx context.Context, positions []int, mint *solana.PublicKey) (*Report, error) {
	rep := newReport("balance")

	var total uint64
	var decimals uint8 = amount.SOLDecimals

	for _, t := range r.targets(positions) {
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsProcessed, 1)

		owner, err := solana.PublicKeyFromBase58(t.Rec.PublicKey)
		if err != nil {
			r.failItem(rep, t, "invalid stored address", ferrors.InvalidRecord(t.Rec.Name, err))
			continue
		}

		var bal uint64
		if mint == nil {
			bal, err = r.client.GetBalance(ctx, owner)
			if err != nil {
				r.failItem(rep, t, "balance query failed", err)
				continue
			}
		} else {
			ata, _, err := solana.FindAssociatedTokenAddress(owner, *mint)
			if err != nil {
				r.failItem(rep, t, "token account derivation failed", err)
				continue
			}
			exists, err := r.client.AccountExists(ctx, ata)
			if err != nil {
				r.failItem(rep, t, "token account lookup failed", err)
				continue
			}
			if exists {
				var dec uint8
				bal, dec, err = r.client.GetTokenBalance(ctx, ata)
				if err != nil {
					r.failItem(rep, t, "token balance query failed", err)
					continue
				}
				decimals = dec
			} else {
				bal = 0
			}
		}

		total += bal
		formatted := amount.Format(bal, int(decimals))
		r.printf("%3d  %-20s %s  %s\n", t.Pos, t.Rec.Name, t.Rec.PublicKey, formatted)
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsSucceeded, 1)
		rep.addItem(ItemResult{
			Position: t.Pos,
			Wallet:   t.Rec.Name,
			Address:  t.Rec.PublicKey,
			Status:   StatusOK,
			Amount:   formatted,
		})
	}

	r.printf("total: %s\n", amount.Format(total, int(decimals)))
	return rep, r.outcome(ctx, rep)
}

// failItem records a failed wallet, prints its line, and counts it.
func (r *Runner) failItem(rep *Report, t Target, what string, err error) {
	r.printf("%3d  %-20s %s  FAILED: %v\n", t.Pos, t.Rec.Name, t.Rec.PublicKey, err)
	r.GetLogger().Error(what, "wallet", t.Rec.Name, "error", err)
	r.metrics.IncrementCounter(context.Background(), metrics.MetricWalletsFailed, 1)
	rep.addItem(ItemResult{
		Position:  t.Pos,
		Wallet:    t.Rec.Name,
		Address:   t.Rec.PublicKey,
		Status:    StatusFailed,
		Detail:    err.Error(),
		Transient: ferrors.IsTransient(err),
	})
}
