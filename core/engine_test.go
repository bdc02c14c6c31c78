package core

import "testing"

// mustNumeric is a test-only helper wrapping NewNumeric, failing fast on a
// bad scale rather than threading an error through every table entry.
func mustNumeric(t *testing.T, mantissa int64, scale uint8) Numeric {
	t.Helper()
	n, err := NewNumeric(mantissa, scale)
	if err != nil {
		t.Fatalf("NewNumeric(%d, %d): %v", mantissa, scale, err)
	}
	return n
}

func mustDomain(id string) DomainId {
	d, err := ParseDomainId(id)
	if err != nil {
		panic(err)
	}
	return d
}

func mustAccount(id string) AccountId {
	a, err := ParseAccountId(id)
	if err != nil {
		panic(err)
	}
	return a
}

func mustAssetDef(id string) AssetDefinitionId {
	d, err := ParseAssetDefinitionId(id)
	if err != nil {
		panic(err)
	}
	return d
}

func mustNft(id string) NftId {
	n, err := ParseNftId(id)
	if err != nil {
		panic(err)
	}
	return n
}

// newTestEngine seeds an Engine with one domain owned by owner and one
// account registered inside it, the minimum fixture most instruction tests
// build on.
func newTestEngine(t *testing.T, domain DomainId, owner AccountId) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.ApplyTransaction(owner, []Instruction{
		RegisterDomain{Id: domain, OwnedBy: owner},
	}); err != nil {
		t.Fatalf("seed domain: %v", err)
	}
	if owner.Domain == domain {
		if err := e.ApplyTransaction(owner, []Instruction{
			RegisterAccount{Id: owner},
		}); err != nil {
			t.Fatalf("seed owner account: %v", err)
		}
	}
	return e
}
