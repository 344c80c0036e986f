package ops

import (
	"fmt"

	isolana "github.com/lugondev/solfleet/internal/solana"
	"github.com/lugondev/solfleet/internal/store"
)

// DefaultNamePrefix is used when create is invoked without a prefix.
const DefaultNamePrefix = "wallet"

// Create generates count fresh keypairs and appends them to the store.
// Names are prefix-N with N continuing from the current store size; name
// collisions get a numeric suffix bump. With fresh set, the existing store
// contents are discarded first; the default always preserves them.
func Create(st *store.Store, count int, prefix string, fresh bool) (*Report, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if prefix == "" {
		prefix = DefaultNamePrefix
	}

	rep := newReport("create")

	if fresh {
		st.Replace(nil)
	}

	base := st.Len()
	for i := 0; i < count; i++ {
		w := isolana.NewWallet()
		rec := store.Record{
			Name:       fmt.Sprintf("%s-%d", prefix, base+i+1),
			PublicKey:  w.PublicKey().String(),
			PrivateKey: w.PrivateKey().String(),
		}
		st.Append(rec)

		rep.addItem(ItemResult{
			Position: st.Len(),
			Wallet:   st.Records[st.Len()-1].Name,
			Address:  rec.PublicKey,
			Status:   StatusOK,
		})
	}

	if err := st.Save(); err != nil {
		return rep, err
	}
	rep.finish()
	return rep, nil
}

// CreateWallets generates wallets and prints one line per wallet.
func (r *Runner) CreateWallets(count int, prefix string, fresh bool) (*Report, error) {
	rep, err := Create(r.store, count, prefix, fresh)
	if err != nil {
		return rep, err
	}

	for _, item := range rep.Items {
		r.printf("%3d  %-20s %s\n", item.Position, item.Wallet, item.Address)
	}
	r.printf("created %d wallet(s), store now holds %d\n", count, r.store.Len())
	r.GetLogger().Info("wallets created", "count", count, "store", r.store.Path())
	return rep, nil
}

// List prints every stored wallet with its 1-based position.
func (r *Runner) List() *Report {
	rep := newReport("list")
	for i, rec := range r.store.All() {
		r.printf("%3d  %-20s %s\n", i+1, rec.Name, rec.PublicKey)
		rep.addItem(ItemResult{Position: i + 1, Wallet: rec.Name, Address: rec.PublicKey, Status: StatusOK})
	}
	r.printf("%d wallet(s)\n", r.store.Len())
	rep.finish()
	return rep
}
