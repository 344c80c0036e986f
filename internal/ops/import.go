package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	isolana "github.com/lugondev/solfleet/internal/solana"
	"github.com/lugondev/solfleet/internal/store"
)

// importRecord is one entry of an import file. Name is optional; the secret
// may be a base58 string, a hex string, or a JSON byte array.
type importRecord struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Secret  json.RawMessage `json:"secret"`
}

// secretText normalizes the raw secret to the string form ParseSecret expects.
func (ir importRecord) secretText() (string, error) {
	if len(ir.Secret) == 0 {
		return "", fmt.Errorf("missing secret")
	}
	if ir.Secret[0] == '"' {
		var s string
		if err := json.Unmarshal(ir.Secret, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	// Keep array form verbatim; the secret parser understands it.
	return string(ir.Secret), nil
}

// ImportWallets merges the records of an import file into the store.
//
// Each incoming record is validated first: its secret must parse, and its
// stored address must match the address the secret derives. A mismatch skips
// the record unless fixMismatch is set, in which case the derived address
// wins. Validated records then merge under the overwrite/skip duplicate rule;
// a bad record never blocks the rest of the file.
func (r *Runner) ImportWallets(path string, overwrite, fixMismatch bool) (*Report, error) {
	rep := newReport("import")

	data, err := os.ReadFile(path)
	if err != nil {
		return rep, ferrors.StoreIO("import read", err)
	}

	var raw []importRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return rep, ferrors.ErrStoreCorrupt.WithCause(err)
	}

	valid := make([]store.Record, 0, len(raw))
	for i, ir := range raw {
		label := ir.Name
		if label == "" {
			label = fmt.Sprintf("record %d", i+1)
		}

		rec, err := validateImport(ir, i, fixMismatch)
		if err != nil {
			r.printf("%-20s skipped: %v\n", label, err)
			rep.addItem(ItemResult{Position: i + 1, Wallet: label, Status: StatusSkipped, Detail: err.Error()})
			continue
		}
		valid = append(valid, rec)
	}

	merged, stats := store.Merge(r.store.All(), valid, overwrite)
	r.store.Replace(merged)
	if err := r.store.Save(); err != nil {
		return rep, err
	}

	for _, name := range stats.SkippedNames {
		r.printf("%-20s skipped: duplicate of existing wallet\n", name)
	}

	rep.Summary.Succeeded += uint64(stats.Imported)
	rep.Summary.Skipped += uint64(stats.Skipped)
	rep.Summary.Processed = uint64(len(raw))

	ctx := context.Background()
	r.metrics.IncrementCounter(ctx, metrics.MetricRecordsImported, rep.Summary.Succeeded)
	r.metrics.IncrementCounter(ctx, metrics.MetricRecordsSkipped, rep.Summary.Skipped)

	r.printf("imported %d, skipped %d, store now holds %d\n", stats.Imported, rep.Summary.Skipped, r.store.Len())
	r.GetLogger().Info("import finished", "imported", stats.Imported, "skipped", rep.Summary.Skipped, "store", r.store.Path())
	rep.finish()
	return rep, nil
}

func validateImport(ir importRecord, index int, fixMismatch bool) (store.Record, error) {
	secret, err := ir.secretText()
	if err != nil {
		return store.Record{}, ferrors.InvalidRecord(ir.Name, err)
	}

	w, err := isolana.ParseSecret(secret)
	if err != nil {
		return store.Record{}, ferrors.InvalidRecord(ir.Name, err)
	}

	derived := w.PublicKey().String()
	address := ir.Address
	switch {
	case address == "":
		address = derived
	case address != derived && fixMismatch:
		address = derived
	case address != derived:
		return store.Record{}, ferrors.ErrAddressMismatch
	}

	name := ir.Name
	if name == "" {
		name = fmt.Sprintf("imported-%d", index+1)
	}

	return store.Record{
		Name:       name,
		PublicKey:  address,
		PrivateKey: w.PrivateKey().String(),
	}, nil
}
