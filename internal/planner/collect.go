package planner

// FeeEstimateLamports is the conservative flat fee assumed for one
// single-signer transaction (0.000005 SOL).
const FeeEstimateLamports = 5000

// CollectionPlan is the decision for one wallet during collection: skip, or
// withdraw a concrete amount back to the main wallet.
type CollectionPlan struct {
	// Skip is set when the wallet's balance is too low to withdraw safely.
	Skip bool

	// Withdraw is the amount to move, in lamports. Zero when Skip is set.
	Withdraw uint64
}

// PlanCollection decides how much of balance can be withdrawn given the
// user-specified reserve, the flat fee estimate, and the network's
// rent-exemption minimum.
//
// The rent minimum only gates the skip decision; it is not subtracted from
// the withdrawal itself, so a withdrawing wallet keeps exactly reserve+fee
// behind. That asymmetry is intentional and load-bearing: callers and tests
// depend on withdraw == balance - reserve - fee.
func PlanCollection(balance, reserve, fee, minRentExempt uint64) CollectionPlan {
	threshold := minRentExempt + fee + reserve
	if balance <= threshold {
		return CollectionPlan{Skip: true}
	}
	return CollectionPlan{Withdraw: balance - reserve - fee}
}
