package ops

import (
	"context"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	"github.com/lugondev/solfleet/internal/planner"
	"github.com/lugondev/solfleet/pkg/amount"
)

// Collect withdraws SOL from each selected wallet back to the main wallet,
// wallet by wallet. Each withdrawal is its own transaction signed and paid by
// the sub-wallet; the fee is already deducted from the withdrawn amount.
// Wallets whose balance cannot cover reserve, fee, and the rent minimum are
// skipped with a diagnostic, not failed.
func (r *Runner) Collect(ctx context.Context, positions []int, reserve uint64) (*Report, error) {
	rep := newReport("collect")

	main, err := r.requireMain()
	if err != nil {
		return rep, err
	}

	minRent, err := r.client.GetMinimumBalanceForRentExemption(ctx, 0)
	if err != nil {
		return rep, err
	}

	for _, t := range r.targets(positions) {
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsProcessed, 1)

		sub, err := subWallet(t.Rec)
		if err != nil {
			r.failItem(rep, t, "unusable wallet record", err)
			continue
		}

		balance, err := r.client.GetBalance(ctx, sub.PublicKey())
		if err != nil {
			r.failItem(rep, t, "balance query failed", err)
			continue
		}

		plan := planner.PlanCollection(balance, reserve, planner.FeeEstimateLamports, minRent)
		if plan.Skip {
			r.skipItem(rep, t, "balance too low to withdraw")
			continue
		}

		signer := sub.PrivateKey()
		sig, err := r.sendSingle(ctx,
			[]solana.Instruction{
				system.NewTransferInstruction(plan.Withdraw, sub.PublicKey(), main.PublicKey()).Build(),
			},
			sub.PublicKey(),
			func(key solana.PublicKey) *solana.PrivateKey {
				if sub.PublicKey().Equals(key) {
					return &signer
				}
				return nil
			})
		if err != nil {
			r.failItem(rep, t, "withdrawal failed", err)
			continue
		}

		r.printf("%3d  %-20s withdrew %s  %s\n", t.Pos, t.Rec.Name, amount.FormatSOL(plan.Withdraw), sig)
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsSucceeded, 1)
		r.metrics.IncrementCounter(ctx, metrics.MetricLamportsMoved, plan.Withdraw)
		rep.addItem(ItemResult{
			Position:  t.Pos,
			Wallet:    t.Rec.Name,
			Address:   t.Rec.PublicKey,
			Status:    StatusOK,
			Amount:    amount.FormatSOL(plan.Withdraw),
			Signature: sig.String(),
		})
	}

	r.printSummary(rep)
	return rep, r.outcome(ctx, rep)
}

// CollectToken sweeps the full balance of an SPL token from each selected
// wallet into the main wallet's token account, batching up to the token
// ceiling per transaction. The main wallet pays every fee and co-signs with
// the batch's sub-wallets; wallets without the token are skipped.
func (r *Runner) CollectToken(ctx context.Context, mint solana.PublicKey, positions []int) (*Report, error) {
	rep := newReport("collect-token")

	main, err := r.requireMain()
	if err != nil {
		return rep, err
	}

	mainATA, _, err := solana.FindAssociatedTokenAddress(main.PublicKey(), mint)
	if err != nil {
		return rep, ferrors.Custom("failed to derive main token account").WithCause(err)
	}

	if err := r.ensureMainTokenAccount(ctx, main.PublicKey(), mint, mainATA); err != nil {
		return rep, err
	}

	// Resolve balances first; signing keys are held per source account for
	// the batch signer callback.
	signers := map[solana.PublicKey]solana.PrivateKey{main.PublicKey(): main.PrivateKey()}
	var units []planner.TransferUnit
	var decimals uint8

	for _, t := range r.targets(positions) {
		r.metrics.IncrementCounter(ctx, metrics.MetricWalletsProcessed, 1)

		sub, err := subWallet(t.Rec)
		if err != nil {
			r.failItem(rep, t, "unusable wallet record", err)
			continue
		}

		subATA, _, err := solana.FindAssociatedTokenAddress(sub.PublicKey(), mint)
		if err != nil {
			r.failItem(rep, t, "token account derivation failed", err)
			continue
		}

		exists, err := r.client.AccountExists(ctx, subATA)
		if err != nil {
			r.failItem(rep, t, "token account lookup failed", err)
			continue
		}
		if !exists {
			r.skipItem(rep, t, "no token account for this mint")
			continue
		}

		balance, dec, err := r.client.GetTokenBalance(ctx, subATA)
		if err != nil {
			r.failItem(rep, t, "token balance query failed", err)
			continue
		}
		if balance == 0 {
			r.skipItem(rep, t, "zero token balance")
			continue
		}
		decimals = dec

		signers[sub.PublicKey()] = sub.PrivateKey()
		units = append(units, planner.TransferUnit{
			WalletName:  t.Rec.Name,
			Source:      subATA,
			Destination: mainATA,
			Amount:      balance,
			Kind:        planner.AssetToken,
			SourceOwner: sub.PublicKey(),
		})
	}

	for _, batch := range planner.Partition(units, planner.AssetToken) {
		instructions := make([]solana.Instruction, 0, len(batch.Units))
		for _, u := range batch.Units {
			instructions = append(instructions, token.NewTransferInstruction(
				u.Amount,
				u.Source,
				u.Destination,
				u.SourceOwner,
				nil,
			).Build())
		}

		r.runBatch(ctx, rep, batch, instructions, main.PublicKey(), func(key solana.PublicKey) *solana.PrivateKey {
			if pk, ok := signers[key]; ok {
				return &pk
			}
			return nil
		})
	}

	if len(units) > 0 {
		var swept uint64
		for _, u := range units {
			swept += u.Amount
		}
		r.printf("swept up to %s token units across %d wallet(s)\n", amount.Format(swept, int(decimals)), len(units))
	}
	r.printSummary(rep)
	return rep, r.outcome(ctx, rep)
}

// ensureMainTokenAccount creates the main wallet's associated token account
// when it does not exist yet, in its own transaction ahead of the batches.
func (r *Runner) ensureMainTokenAccount(ctx context.Context, mainKey solana.PublicKey, mint, mainATA solana.PublicKey) error {
	exists, err := r.client.AccountExists(ctx, mainATA)
	if err != nil || exists {
		return err
	}

	signer := r.main.PrivateKey()
	sig, err := r.sendSingle(ctx,
		[]solana.Instruction{
			associatedtokenaccount.NewCreateInstruction(mainKey, mainKey, mint).Build(),
		},
		mainKey,
		func(key solana.PublicKey) *solana.PrivateKey {
			if mainKey.Equals(key) {
				return &signer
			}
			return nil
		})
	if err != nil {
		return ferrors.Wrap(err, "failed to create main token account")
	}
	r.GetLogger().Info("created main token account", "account", mainATA.String(), "signature", sig.String())
	return nil
}

// sendSingle builds, signs, submits, and confirms a one-off transaction.
func (r *Runner) sendSingle(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers func(solana.PublicKey) *solana.PrivateKey) (solana.Signature, error) {
	blockhash, err := r.client.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, ferrors.TransactionFailed("build", err)
	}
	if _, err := tx.Sign(signers); err != nil {
		return solana.Signature{}, ferrors.TransactionFailed("sign", err)
	}
	return r.client.SendAndConfirm(ctx, tx)
}

// skipItem records a skipped wallet with its reason.
func (r *Runner) skipItem(rep *Report, t Target, reason string) {
	r.printf("%3d  %-20s skipped: %s\n", t.Pos, t.Rec.Name, reason)
	r.metrics.IncrementCounter(context.Background(), metrics.MetricWalletsSkipped, 1)
	rep.addItem(ItemResult{
		Position: t.Pos,
		Wallet:   t.Rec.Name,
		Address:  t.Rec.PublicKey,
		Status:   StatusSkipped,
		Detail:   reason,
	})
}
