package planner

import (
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func makeUnits(n int) []TransferUnit {
	units := make([]TransferUnit, n)
	for i := range units {
		units[i] = TransferUnit{
			WalletName:  fmt.Sprintf("w%d", i+1),
			Destination: solana.NewWallet().PublicKey(),
			Amount:      uint64(i + 1),
		}
	}
	return units
}

func TestPartitionSizes(t *testing.T) {
	tests := []struct {
		n         int
		kind      AssetKind
		wantSizes []int
	}{
		{23, AssetNative, []int{10, 10, 3}},
		{10, AssetNative, []int{10}},
		{1, AssetNative, []int{1}},
		{0, AssetNative, nil},
		{23, AssetToken, []int{5, 5, 5, 5, 3}},
		{5, AssetToken, []int{5}},
		{6, AssetToken, []int{5, 1}},
	}

	for _, tt := range tests {
		batches := Partition(makeUnits(tt.n), tt.kind)
		if len(batches) != len(tt.wantSizes) {
			t.Errorf("Partition(%d, %v): got %d batches, want %d", tt.n, tt.kind, len(batches), len(tt.wantSizes))
			continue
		}
		for i, b := range batches {
			if len(b.Units) != tt.wantSizes[i] {
				t.Errorf("Partition(%d, %v): batch %d has %d units, want %d", tt.n, tt.kind, i+1, len(b.Units), tt.wantSizes[i])
			}
			if b.Index != i+1 {
				t.Errorf("Partition(%d, %v): batch at position %d has index %d", tt.n, tt.kind, i, b.Index)
			}
		}
	}
}

func TestPartitionLosslessOrderPreserving(t *testing.T) {
	units := makeUnits(23)
	batches := Partition(units, AssetNative)

	var flat []TransferUnit
	for _, b := range batches {
		flat = append(flat, b.Units...)
	}

	if len(flat) != len(units) {
		t.Fatalf("flattened %d units, want %d", len(flat), len(units))
	}
	for i := range units {
		if flat[i].WalletName != units[i].WalletName || flat[i].Amount != units[i].Amount {
			t.Errorf("unit %d: got %s/%d, want %s/%d", i, flat[i].WalletName, flat[i].Amount, units[i].WalletName, units[i].Amount)
		}
	}
}

func TestPartitionNClampsMax(t *testing.T) {
	batches := PartitionN(makeUnits(3), 0)
	if len(batches) != 3 {
		t.Errorf("PartitionN with max 0: got %d batches, want 3", len(batches))
	}
}

func TestMaxBatchSize(t *testing.T) {
	if got := MaxBatchSize(AssetNative); got != 10 {
		t.Errorf("MaxBatchSize(native) = %d, want 10", got)
	}
	if got := MaxBatchSize(AssetToken); got != 5 {
		t.Errorf("MaxBatchSize(token) = %d, want 5", got)
	}
}
