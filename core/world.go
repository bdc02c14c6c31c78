package core

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// World is the authoritative in-memory map set of every on-chain entity.
// It is never mutated directly outside a StateTransaction's commit path;
// read accessors are safe to call concurrently with a writer because
// callers always go through a Snapshot (see Clone).
type World struct {
	domains          map[DomainId]*Domain
	accounts         map[AccountId]*Account
	assetDefinitions map[AssetDefinitionId]*AssetDefinition
	assets           map[AssetId]*Asset
	nfts             map[NftId]*Nft
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		domains:          make(map[DomainId]*Domain),
		accounts:         make(map[AccountId]*Account),
		assetDefinitions: make(map[AssetDefinitionId]*AssetDefinition),
		assets:           make(map[AssetId]*Asset),
		nfts:             make(map[NftId]*Nft),
	}
}

// Clone produces a deep copy suitable as a read-only MVCC snapshot: readers
// keep using the old World object while a writer commits a new one.
func (w *World) Clone() *World {
	out := NewWorld()
	for k, v := range w.domains {
		d := *v
		d.Metadata = v.Metadata.Clone()
		out.domains[k] = &d
	}
	for k, v := range w.accounts {
		a := *v
		a.Metadata = v.Metadata.Clone()
		out.accounts[k] = &a
	}
	for k, v := range w.assetDefinitions {
		d := *v
		d.Metadata = v.Metadata.Clone()
		out.assetDefinitions[k] = &d
	}
	for k, v := range w.assets {
		a := *v
		out.assets[k] = &a
	}
	for k, v := range w.nfts {
		n := *v
		n.Content = v.Content.Clone()
		out.nfts[k] = &n
	}
	return out
}

// ---- singular lookups --------------------------------------------------

func (w *World) Domain(id DomainId) (*Domain, error) {
	d, ok := w.domains[id]
	if !ok {
		return nil, newNotFoundError("Domain", id)
	}
	return d, nil
}

func (w *World) Account(id AccountId) (*Account, error) {
	a, ok := w.accounts[id]
	if !ok {
		return nil, newNotFoundError("Account", id)
	}
	return a, nil
}

func (w *World) AssetDefinition(id AssetDefinitionId) (*AssetDefinition, error) {
	d, ok := w.assetDefinitions[id]
	if !ok {
		return nil, newNotFoundError("AssetDefinition", id)
	}
	return d, nil
}

func (w *World) Asset(id AssetId) (*Asset, error) {
	a, ok := w.assets[id]
	if !ok {
		return nil, newNotFoundError("Asset", id)
	}
	return a, nil
}

func (w *World) Nft(id NftId) (*Nft, error) {
	n, ok := w.nfts[id]
	if !ok {
		return nil, newNotFoundError("Nft", id)
	}
	return n, nil
}

// ---- deterministic iteration -------------------------------------------

func (w *World) DomainsIter() []*Domain {
	ids := make([]DomainId, 0, len(w.domains))
	for id := range w.domains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	out := make([]*Domain, len(ids))
	for i, id := range ids {
		out[i] = w.domains[id]
	}
	return out
}

func (w *World) AccountsIter() []*Account {
	ids := make([]AccountId, 0, len(w.accounts))
	for id := range w.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	out := make([]*Account, len(ids))
	for i, id := range ids {
		out[i] = w.accounts[id]
	}
	return out
}

func (w *World) AssetDefinitionsIter() []*AssetDefinition {
	ids := make([]AssetDefinitionId, 0, len(w.assetDefinitions))
	for id := range w.assetDefinitions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	out := make([]*AssetDefinition, len(ids))
	for i, id := range ids {
		out[i] = w.assetDefinitions[id]
	}
	return out
}

func (w *World) AssetsIter() []*Asset {
	ids := make([]AssetId, 0, len(w.assets))
	for id := range w.assets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	out := make([]*Asset, len(ids))
	for i, id := range ids {
		out[i] = w.assets[id]
	}
	return out
}

func (w *World) NftsIter() []*Nft {
	ids := make([]NftId, 0, len(w.nfts))
	for id := range w.nfts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	out := make([]*Nft, len(ids))
	for i, id := range ids {
		out[i] = w.nfts[id]
	}
	return out
}

// ---- mutators (called only from within a StateTransaction overlay) ----

// assetOrInsert returns the mutable Asset row for id, inserting it with
// value `zero` if absent. It also verifies the owning account and asset
// definition exist.
func (w *World) assetOrInsert(id AssetId, zero Numeric) (*Asset, error) {
	if _, err := w.Account(id.Account); err != nil {
		return nil, err
	}
	if _, err := w.AssetDefinition(id.Definition); err != nil {
		return nil, err
	}
	a, ok := w.assets[id]
	if !ok {
		a = &Asset{Id: id, Value: zero}
		w.assets[id] = a
	}
	return a, nil
}

// removeAssetIfZero drops the row once its value returns to zero, enforcing
// the zero-materialization invariant.
func (w *World) removeAssetIfZero(id AssetId) {
	if a, ok := w.assets[id]; ok && a.Value.IsZero() {
		delete(w.assets, id)
	}
}

// increaseAssetTotalAmount / decreaseAssetTotalAmount perform checked
// arithmetic on AssetDefinition.TotalQuantity.
func (w *World) increaseAssetTotalAmount(def AssetDefinitionId, delta Numeric) error {
	d, err := w.AssetDefinition(def)
	if err != nil {
		return err
	}
	total, err := d.TotalQuantity.CheckedAdd(delta)
	if err != nil {
		return err
	}
	d.TotalQuantity = total
	return nil
}

func (w *World) decreaseAssetTotalAmount(def AssetDefinitionId, delta Numeric) error {
	d, err := w.AssetDefinition(def)
	if err != nil {
		return err
	}
	total, err := d.TotalQuantity.CheckedSub(delta)
	if err != nil {
		return err
	}
	d.TotalQuantity = total
	return nil
}

// Hash computes a deterministic digest over every entity collection in id
// order. Every conforming node that has applied the same block sequence
// must compute the same Hash.
func (w *World) Hash() [32]byte {
	h := sha256.New()
	for _, d := range w.DomainsIter() {
		fmt.Fprintf(h, "domain:%s:%s\n", d.Id, d.OwnedBy)
	}
	for _, a := range w.AccountsIter() {
		fmt.Fprintf(h, "account:%s\n", a.Id)
	}
	for _, d := range w.AssetDefinitionsIter() {
		fmt.Fprintf(h, "assetdef:%s:%s:%s:%s\n", d.Id, d.Spec, d.Mintable, d.TotalQuantity)
	}
	for _, a := range w.AssetsIter() {
		fmt.Fprintf(h, "asset:%s:%s\n", a.Id, a.Value)
	}
	for _, n := range w.NftsIter() {
		fmt.Fprintf(h, "nft:%s:%s\n", n.Id, n.OwnedBy)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
