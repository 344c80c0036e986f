package ops

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	"github.com/lugondev/solfleet/internal/planner"
	"github.com/lugondev/solfleet/pkg/amount"
)

// Send distributes lamports from the main wallet to each selected wallet.
// With batched set, transfers are packed into multi-instruction transactions
// up to the native batch ceiling; otherwise each wallet gets its own
// transaction. Batches are submitted one at a time, each confirmed before the
// next, and one batch's failure never stops the rest.
func (r *Runner) Send(ctx context.Context, lamports uint64, positions []int, batched bool) (*Report, error) {
	command := "send"
	if batched {
		command = "send-batched"
	}
	rep := newReport(command)

	main, err := r.requireMain()
	if err != nil {
		return rep, err
	}

	units, err := r.nativeUnits(main.PublicKey(), lamports, positions)
	if err != nil {
		return rep, err
	}
	if len(units) == 0 {
		r.printf("no wallets selected\n")
		return rep, nil
	}

	max := 1
	if batched {
		max = planner.MaxNativeBatch
	}

	signer := main.PrivateKey()
	for _, batch := range planner.PartitionN(units, max) {
		instructions := make([]solana.Instruction, 0, len(batch.Units))
		for _, u := range batch.Units {
			instructions = append(instructions, system.NewTransferInstruction(u.Amount, u.Source, u.Destination).Build())
		}

		r.runBatch(ctx, rep, batch, instructions, main.PublicKey(), func(key solana.PublicKey) *solana.PrivateKey {
			if main.PublicKey().Equals(key) {
				return &signer
			}
			return nil
		})
	}

	r.printSummary(rep)
	return rep, r.outcome(ctx, rep)
}

// nativeUnits builds one transfer unit per selected wallet, main -> wallet.
func (r *Runner) nativeUnits(source solana.PublicKey, lamports uint64, positions []int) ([]planner.TransferUnit, error) {
	targets := r.targets(positions)
	units := make([]planner.TransferUnit, 0, len(targets))
	for _, t := range targets {
		dest, err := solana.PublicKeyFromBase58(t.Rec.PublicKey)
		if err != nil {
			return nil, ferrors.InvalidRecord(t.Rec.Name, err)
		}
		units = append(units, planner.TransferUnit{
			WalletName:  t.Rec.Name,
			Source:      source,
			Destination: dest,
			Amount:      lamports,
			Kind:        planner.AssetNative,
		})
	}
	return units, nil
}

// runBatch assembles, signs, submits, and confirms one batch, recording its
// outcome. The blockhash is fetched per batch so sequential confirmation
// never stales it.
func (r *Runner) runBatch(ctx context.Context, rep *Report, batch planner.Batch, instructions []solana.Instruction, payer solana.PublicKey, signers func(solana.PublicKey) *solana.PrivateKey) {
	names := make([]string, len(batch.Units))
	for i, u := range batch.Units {
		names[i] = u.WalletName
	}

	// A non-zero signature on failure means submission succeeded and only
	// confirmation failed; it is kept so the user can check the batch by hand.
	fail := func(what string, sig solana.Signature, err error) {
		r.printf("batch %d (%d wallet(s))  FAILED: %v\n", batch.Index, len(batch.Units), err)
		r.GetLogger().Error(what, "batch", batch.Index, "error", err)
		r.metrics.IncrementCounter(ctx, metrics.MetricBatchesFailed, 1)
		result := BatchResult{
			Index:     batch.Index,
			Wallets:   names,
			Status:    StatusFailed,
			Detail:    err.Error(),
			Transient: ferrors.IsTransient(err),
		}
		if sig != (solana.Signature{}) {
			result.Signature = sig.String()
		}
		rep.addBatch(result)
	}

	blockhash, err := r.client.GetLatestBlockhash(ctx)
	if err != nil {
		fail("blockhash fetch failed", solana.Signature{}, err)
		return
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		fail("transaction build failed", solana.Signature{}, ferrors.TransactionFailed("build", err))
		return
	}

	if _, err := tx.Sign(signers); err != nil {
		fail("transaction sign failed", solana.Signature{}, ferrors.TransactionFailed("sign", err))
		return
	}

	r.metrics.IncrementCounter(ctx, metrics.MetricBatchesSubmitted, 1)
	sig, err := r.client.SendAndConfirm(ctx, tx)
	if err != nil {
		fail("transaction submit or confirm failed", sig, err)
		return
	}

	var moved uint64
	for _, u := range batch.Units {
		moved += u.Amount
	}
	r.metrics.IncrementCounter(ctx, metrics.MetricBatchesConfirmed, 1)
	r.metrics.IncrementCounter(ctx, metrics.MetricLamportsMoved, moved)

	r.printf("batch %d (%d wallet(s))  %s\n", batch.Index, len(batch.Units), sig)
	r.GetLogger().Info("batch confirmed", "batch", batch.Index, "wallets", len(batch.Units), "signature", sig.String())
	rep.addBatch(BatchResult{
		Index:     batch.Index,
		Wallets:   names,
		Status:    StatusOK,
		Signature: sig.String(),
	})
}

func (r *Runner) printSummary(rep *Report) {
	s := rep.Summary
	r.printf("summary: %d ok, %d skipped, %d failed\n", s.Succeeded, s.Skipped, s.Failed)
}

// ParseSOLAmount converts a user-supplied SOL amount into lamports, wrapping
// parse failures in the domain error type.
func ParseSOLAmount(s string) (uint64, error) {
	v, err := amount.ParseSOL(s)
	if err != nil {
		return 0, ferrors.InvalidAmount(s, err)
	}
	if v == 0 {
		return 0, ferrors.InvalidAmount(s, nil)
	}
	return v, nil
}
