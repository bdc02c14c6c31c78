package core

import "testing"

// TestFetchSizeTooBigFailsBeforeIteration is invariant 7: a fetch_size over
// MAX_FETCH_SIZE must fail immediately, without touching the collection.
func TestFetchSizeTooBigFailsBeforeIteration(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	_, err := FindDomains(e.Snapshot(), CompoundPredicate[*Domain]{}, MAX_FETCH_SIZE+1, "")
	if err != ErrFetchSizeTooBig {
		t.Fatalf("got %v, want ErrFetchSizeTooBig", err)
	}
}

// TestExecuteSingleCardinality covers both failure shapes execute_single
// must report: zero matches and more than one match.
func TestExecuteSingleCardinality(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	_, err := ExecuteSingle(e.Snapshot(), FindAccounts, And(func(a *Account) bool { return a.Id.PublicKey == "nobody" }))
	if err != ErrExpectedOneGotNone {
		t.Fatalf("zero matches: got %v, want ErrExpectedOneGotNone", err)
	}

	bob := mustAccount("bob@wonderland")
	carol := mustAccount("carol@wonderland")
	if err := e.ApplyTransaction(alice, []Instruction{RegisterAccount{Id: bob}}); err != nil {
		t.Fatal(err)
	}
	if err := e.ApplyTransaction(alice, []Instruction{RegisterAccount{Id: carol}}); err != nil {
		t.Fatal(err)
	}

	_, err = ExecuteSingle(e.Snapshot(), FindAccounts, And(func(a *Account) bool { return a.Id.Domain == wonderland }))
	if err != ErrExpectedOneGotMany {
		t.Fatalf("three matches: got %v, want ErrExpectedOneGotMany", err)
	}

	one, err := ExecuteSingle(e.Snapshot(), FindAccounts, And(func(a *Account) bool { return a.Id == bob }))
	if err != nil {
		t.Fatalf("exactly one match: %v", err)
	}
	if one.Id != bob {
		t.Fatalf("got %s, want %s", one.Id, bob)
	}
}

// TestFindPagination walks a multi-page query to its end via continue
// cursors, confirming every row is seen exactly once.
func TestFindPagination(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	names := []string{"bob", "carol", "dave", "erin", "frank"}
	for _, n := range names {
		acct := mustAccount(n + "@wonderland")
		if err := e.ApplyTransaction(alice, []Instruction{RegisterAccount{Id: acct}}); err != nil {
			t.Fatal(err)
		}
	}

	world := e.Snapshot()
	seen := make(map[AccountId]bool)
	cursor := ""
	for {
		page, err := FindAccounts(world, CompoundPredicate[*Account]{}, 2, cursor)
		if err != nil {
			t.Fatalf("page: %v", err)
		}
		for _, a := range page.Results {
			if seen[a.Id] {
				t.Fatalf("account %s returned twice across pages", a.Id)
			}
			seen[a.Id] = true
		}
		if page.ContinueToken == "" {
			break
		}
		cursor = page.ContinueToken
	}

	if len(seen) != len(names)+1 { // +1 for alice, seeded by newTestEngine
		t.Fatalf("saw %d accounts across all pages, want %d", len(seen), len(names)+1)
	}
}
