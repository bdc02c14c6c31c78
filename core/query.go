package core

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// MAX_FETCH_SIZE bounds the batch size an iterable query may request per
// round-trip. Named in SCREAMING_CASE since it is effectively a wire
// constant, not an internal implementation detail.
const MAX_FETCH_SIZE = 10_000

// Predicate is a leaf test on a single entity of type T. It must be pure
// and side-effect-free.
type Predicate[T any] func(T) bool

// CompoundPredicate is a boolean combinator over leaf Predicates. The zero
// value matches everything.
type CompoundPredicate[T any] struct {
	all []Predicate[T]
}

// And returns a CompoundPredicate requiring every given leaf predicate.
func And[T any](preds ...Predicate[T]) CompoundPredicate[T] {
	return CompoundPredicate[T]{all: preds}
}

func (c CompoundPredicate[T]) applies(v T) bool {
	for _, p := range c.all {
		if !p(v) {
			return false
		}
	}
	return true
}

// Cursor is an opaque continuation token for a paginated iterable query: a
// base64-encoded JSON envelope naming the collection and the offset to
// resume at. Callers must treat it as opaque; this package is free to
// change its encoding.
type Cursor struct {
	Collection string `json:"collection"`
	Offset     int    `json:"offset"`
}

func (c Cursor) encode() string {
	b, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(b)
}

func decodeCursor(token string) (Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrCursorInvalid, err)
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrCursorInvalid, err)
	}
	return c, nil
}

// Page is one batch of an iterable query's results, with an opaque
// ContinueToken set when more rows remain.
type Page[T any] struct {
	Results       []T
	ContinueToken string
}

// findPage runs filter over all, starting at the offset named by
// continueToken (empty for the first page), returning at most fetchSize
// results and a ContinueToken if rows remain.
func findPage[T any](collection string, all []T, filter CompoundPredicate[T], fetchSize int, continueToken string) (Page[T], error) {
	if fetchSize > MAX_FETCH_SIZE {
		return Page[T]{}, ErrFetchSizeTooBig
	}
	if fetchSize <= 0 {
		fetchSize = MAX_FETCH_SIZE
	}

	start := 0
	if continueToken != "" {
		c, err := decodeCursor(continueToken)
		if err != nil {
			return Page[T]{}, err
		}
		if c.Collection != collection {
			return Page[T]{}, fmt.Errorf("%w: cursor collection mismatch", ErrCursorInvalid)
		}
		if c.Offset < 0 || c.Offset > len(all) {
			return Page[T]{}, fmt.Errorf("%w: cursor offset out of range", ErrCursorInvalid)
		}
		start = c.Offset
	}

	matched := make([]T, 0, fetchSize)
	i := start
	for ; i < len(all) && len(matched) < fetchSize; i++ {
		if filter.applies(all[i]) {
			matched = append(matched, all[i])
		}
	}

	page := Page[T]{Results: matched}
	if i < len(all) {
		page.ContinueToken = Cursor{Collection: collection, Offset: i}.encode()
	}
	return page, nil
}

// FindDomains returns a filtered page of Domains in id order.
func FindDomains(w *World, filter CompoundPredicate[*Domain], fetchSize int, continueToken string) (Page[*Domain], error) {
	return findPage("domains", w.DomainsIter(), filter, fetchSize, continueToken)
}

// FindAccounts returns a filtered page of Accounts in id order.
func FindAccounts(w *World, filter CompoundPredicate[*Account], fetchSize int, continueToken string) (Page[*Account], error) {
	return findPage("accounts", w.AccountsIter(), filter, fetchSize, continueToken)
}

// FindAssetsDefinitions returns a filtered page of AssetDefinitions in id
// order (name kept plural-irregular for consistency with the wire query name).
func FindAssetsDefinitions(w *World, filter CompoundPredicate[*AssetDefinition], fetchSize int, continueToken string) (Page[*AssetDefinition], error) {
	return findPage("asset_definitions", w.AssetDefinitionsIter(), filter, fetchSize, continueToken)
}

// FindAssets returns a filtered page of Assets in id order. Per the
// zero-materialization rule, a zero-valued asset never appears here because
// it was never inserted into World.assets in the first place.
func FindAssets(w *World, filter CompoundPredicate[*Asset], fetchSize int, continueToken string) (Page[*Asset], error) {
	return findPage("assets", w.AssetsIter(), filter, fetchSize, continueToken)
}

// FindNfts returns a filtered page of Nfts in id order.
func FindNfts(w *World, filter CompoundPredicate[*Nft], fetchSize int, continueToken string) (Page[*Nft], error) {
	return findPage("nfts", w.NftsIter(), filter, fetchSize, continueToken)
}

// ExecuteSingle collapses an iterable query down to the Singular query
// shape, returning ErrExpectedOneGotNone or ErrExpectedOneGotMany when the
// match count isn't exactly one. It always fetches with an unbounded
// cursor since a singular query is never paginated.
func ExecuteSingle[T any](w *World, find func(*World, CompoundPredicate[T], int, string) (Page[T], error), filter CompoundPredicate[T]) (T, error) {
	var zero T
	page, err := find(w, filter, MAX_FETCH_SIZE, "")
	if err != nil {
		return zero, err
	}
	switch len(page.Results) {
	case 0:
		return zero, ErrExpectedOneGotNone
	case 1:
		return page.Results[0], nil
	default:
		return zero, ErrExpectedOneGotMany
	}
}
