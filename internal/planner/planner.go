// Package planner decides how fleet-wide transfer work is split into
// transactions and how much each wallet can safely give up during collection.
//
// The batch planner partitions an ordered list of transfer units into
// contiguous batches, each small enough to encode as a single transaction.
// Each instruction consumes a fixed serialized-byte budget and the network
// enforces a hard transaction-size ceiling, so the per-kind batch sizes are
// conservative constants rather than anything measured at runtime.
package planner

import "github.com/gagliardetto/solana-go"

// AssetKind distinguishes native SOL transfers from SPL token transfers.
type AssetKind int

const (
	// AssetNative is the chain's base currency (lamports).
	AssetNative AssetKind = iota
	// AssetToken is a fungible SPL token, addressed by its mint.
	AssetToken
)

// String returns the string representation of the AssetKind.
func (k AssetKind) String() string {
	switch k {
	case AssetNative:
		return "native"
	case AssetToken:
		return "token"
	default:
		return "unknown"
	}
}

// Per-kind batch size ceilings. Token transfers carry more accounts per
// instruction (and may need a create-account instruction alongside), so they
// pack fewer units per transaction.
const (
	MaxNativeBatch = 10
	MaxTokenBatch  = 5
)

// MaxBatchSize returns the maximum number of transfer units a single
// transaction may carry for the given asset kind.
func MaxBatchSize(kind AssetKind) int {
	if kind == AssetToken {
		return MaxTokenBatch
	}
	return MaxNativeBatch
}

// TransferUnit is one (source, destination, amount) tuple, the atomic
// instruction a batch packs.
type TransferUnit struct {
	// WalletName is the stored name of the sub-wallet this unit targets,
	// carried through for reporting.
	WalletName string

	// Source is the account the funds leave.
	Source solana.PublicKey

	// Destination is the account the funds arrive at. For token transfers
	// this is the destination's associated token account.
	Destination solana.PublicKey

	// Amount is in base units (lamports, or the token's smallest unit).
	Amount uint64

	// Kind is the asset being moved.
	Kind AssetKind

	// CreateDestination marks a token destination whose receiving account
	// does not exist yet. The batch that carries this unit must create the
	// account immediately before the transfer into it.
	CreateDestination bool

	// DestinationOwner is the wallet that owns Destination; required when
	// CreateDestination is set so the create instruction can name the owner.
	DestinationOwner solana.PublicKey

	// SourceOwner is the wallet with authority over Source. Token transfers
	// out of a sub-wallet's account need it as the signing authority.
	SourceOwner solana.PublicKey
}

// Batch is an ordered, non-empty run of transfer units that fits in one
// transaction.
type Batch struct {
	// Index is the 1-based position of this batch within the plan.
	Index int

	// Units are the transfers this batch carries, in original order.
	Units []TransferUnit
}

// Partition splits units into ceil(len/max) contiguous batches for the given
// asset kind, preserving original order. Concatenating the batches' units
// reproduces the input exactly. An empty input yields no batches.
func Partition(units []TransferUnit, kind AssetKind) []Batch {
	return PartitionN(units, MaxBatchSize(kind))
}

// PartitionN is Partition with an explicit batch size ceiling.
func PartitionN(units []TransferUnit, max int) []Batch {
	if len(units) == 0 {
		return nil
	}
	if max < 1 {
		max = 1
	}

	batches := make([]Batch, 0, (len(units)+max-1)/max)
	for start := 0; start < len(units); start += max {
		end := start + max
		if end > len(units) {
			end = len(units)
		}
		batches = append(batches, Batch{
			Index: len(batches) + 1,
			Units: units[start:end],
		})
	}
	return batches
}
