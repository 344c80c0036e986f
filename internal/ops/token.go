package ops

import (
	"context"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"

	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/planner"
	"github.com/lugondev/solfleet/pkg/amount"
)

// SendToken distributes an SPL token from the main wallet's token account to
// each selected wallet. Destinations without a token account get one created
// in the same transaction, immediately before the transfer into it, with the
// main wallet paying for the creation. Token batches are capped lower than
// native ones because each unit may carry two instructions.
func (r *Runner) SendToken(ctx context.Context, mint solana.PublicKey, amountStr string, positions []int, batched bool) (*Report, error) {
	command := "send-token"
	if batched {
		command = "send-token-batched"
	}
	rep := newReport(command)

	main, err := r.requireMain()
	if err != nil {
		return rep, err
	}

	sourceATA, _, err := solana.FindAssociatedTokenAddress(main.PublicKey(), mint)
	if err != nil {
		return rep, ferrors.Custom("failed to derive main token account").WithCause(err)
	}

	// The main account's balance lookup doubles as decimals discovery; the
	// sender must hold the token anyway.
	held, decimals, err := r.client.GetTokenBalance(ctx, sourceATA)
	if err != nil {
		return rep, ferrors.Wrap(err, "main wallet has no usable token account for this mint")
	}

	units64, err := amount.Parse(amountStr, int(decimals))
	if err != nil {
		return rep, ferrors.InvalidAmount(amountStr, err)
	}

	units, err := r.tokenUnits(ctx, main.PublicKey(), mint, units64, positions)
	if err != nil {
		return rep, err
	}
	if len(units) == 0 {
		r.printf("no wallets selected\n")
		return rep, nil
	}

	count := uint64(len(units))
	if units64 > 0 && count > math.MaxUint64/units64 {
		return rep, ferrors.InvalidAmount(amountStr, fmt.Errorf("total for %d wallets overflows", len(units)))
	}
	if need := units64 * count; held < need {
		return rep, ferrors.InsufficientFunds(held, need)
	}

	max := 1
	if batched {
		max = planner.MaxTokenBatch
	}

	signer := main.PrivateKey()
	for _, batch := range planner.PartitionN(units, max) {
		instructions := make([]solana.Instruction, 0, 2*len(batch.Units))
		for _, u := range batch.Units {
			if u.CreateDestination {
				instructions = append(instructions, associatedtokenaccount.NewCreateInstruction(
					main.PublicKey(),   // payer
					u.DestinationOwner, // wallet owning the new account
					mint,
				).Build())
			}
			instructions = append(instructions, token.NewTransferInstruction(
				u.Amount,
				sourceATA,
				u.Destination,
				main.PublicKey(),
				nil,
			).Build())
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

// tokenUnits builds one token transfer unit per selected wallet, resolving
// every destination's associated token account before any batch is
// assembled and marking the ones that must be created.
func (r *Runner) tokenUnits(ctx context.Context, mainKey solana.PublicKey, mint solana.PublicKey, units64 uint64, positions []int) ([]planner.TransferUnit, error) {
	targets := r.targets(positions)
	units := make([]planner.TransferUnit, 0, len(targets))
	for _, t := range targets {
		owner, err := solana.PublicKeyFromBase58(t.Rec.PublicKey)
		if err != nil {
			return nil, ferrors.InvalidRecord(t.Rec.Name, err)
		}
		destATA, _, err := solana.FindAssociatedTokenAddress(owner, mint)
		if err != nil {
			return nil, ferrors.InvalidRecord(t.Rec.Name, err)
		}
		exists, err := r.client.AccountExists(ctx, destATA)
		if err != nil {
			return nil, err
		}
		units = append(units, planner.TransferUnit{
			WalletName:        t.Rec.Name,
			Source:            mainKey,
			Destination:       destATA,
			Amount:            units64,
			Kind:              planner.AssetToken,
			CreateDestination: !exists,
			DestinationOwner:  owner,
		})
	}
	return units, nil
}
