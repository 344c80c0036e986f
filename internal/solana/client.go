package solana

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	ferrors "github.com/lugondev/solfleet/internal/errors"
)

const confirmPollInterval = 2 * time.Second

// Client wraps the Solana RPC client
type Client struct {
	rpc            *rpc.Client
	callTimeout    time.Duration
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// NewClient creates a new Solana client
func NewClient(endpoint string) *Client {
	return &Client{
		rpc:            rpc.New(endpoint),
		callTimeout:    30 * time.Second,
		confirmTimeout: 90 * time.Second,
		pollInterval:   confirmPollInterval,
	}
}

// WithCallTimeout sets the deadline applied to each individual RPC call.
func (c *Client) WithCallTimeout(d time.Duration) *Client {
	if d > 0 {
		c.callTimeout = d
	}
	return c
}

// WithConfirmTimeout sets how long ConfirmTransaction waits before giving up.
func (c *Client) WithConfirmTimeout(d time.Duration) *Client {
	if d > 0 {
		c.confirmTimeout = d
	}
	return c
}

// callCtx derives the per-call deadline context for one RPC round trip.
func (c *Client) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.callTimeout)
}

// GetBalance returns the balance of an account in lamports
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	result, err := c.rpc.GetBalance(ctx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return 0, ferrors.RPCUnavailable("getBalance", err)
	}
	return result.Value, nil
}

// GetTokenBalance returns the balance of a token account in the token's base
// units, along with the token's decimals.
func (c *Client) GetTokenBalance(ctx context.Context, tokenAccount solana.PublicKey) (uint64, uint8, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	result, err := c.rpc.GetTokenAccountBalance(ctx, tokenAccount, rpc.CommitmentFinalized)
	if err != nil {
		return 0, 0, ferrors.RPCUnavailable("getTokenAccountBalance", err)
	}
	amount, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable token amount %q: %w", result.Value.Amount, err)
	}
	return amount, result.Value.Decimals, nil
}

// AccountExists reports whether an account exists on chain.
func (c *Client) AccountExists(ctx context.Context, pubkey solana.PublicKey) (bool, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	result, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		if ferrors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, ferrors.RPCUnavailable("getAccountInfo", err)
	}
	return result != nil && result.Value != nil, nil
}

// GetLatestBlockhash returns the latest blockhash
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, ferrors.RPCUnavailable("getLatestBlockhash", err)
	}
	return result.Value.Blockhash, nil
}

// GetMinimumBalanceForRentExemption returns the minimum lamports an account
// with the given data size must hold to stay rent-exempt.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	min, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, rpc.CommitmentFinalized)
	if err != nil {
		return 0, ferrors.RPCUnavailable("getMinimumBalanceForRentExemption", err)
	}
	return min, nil
}

// RequestAirdrop requests an airdrop of SOL (only works on devnet/testnet)
func (c *Client) RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	sig, err := c.rpc.RequestAirdrop(ctx, pubkey, lamports, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, ferrors.RPCUnavailable("requestAirdrop", err)
	}
	return sig, nil
}

// SendTransaction submits a signed transaction with preflight checks enabled.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return solana.Signature{}, ferrors.TransactionFailed("submit rejected", err)
	}
	return sig, nil
}

// ConfirmTransaction polls signature status until the transaction is
// confirmed or finalized, the transaction fails on chain, or the confirmation
// timeout elapses.
func (c *Client) ConfirmTransaction(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		statuses, err := c.signatureStatuses(ctx, sig)
		if err == nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				return ferrors.TransactionFailed(fmt.Sprintf("confirmed with on-chain error: %v", status.Err), nil)
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return ferrors.ErrConfirmTimeout
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) signatureStatuses(ctx context.Context, sig solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	return c.rpc.GetSignatureStatuses(ctx, false, sig)
}

// SendAndConfirm submits a transaction and waits for confirmation. The
// returned signature is valid whenever submission succeeded, even when
// confirmation subsequently failed or timed out.
func (c *Client) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := c.ConfirmTransaction(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}
