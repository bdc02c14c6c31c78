package core

import "testing"

// TestAssetTotalQuantityScenario is scenario S4: across five accounts,
// mint 1 then 10 then burn 5 each, check the conserved total, burn the rest
// to zero and unregister, then confirm the definition is gone.
func TestAssetTotalQuantityScenario(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	def := mustAssetDef("quantity#wonderland")
	if err := e.ApplyTransaction(alice, []Instruction{
		RegisterAssetDefinition{Id: def, Spec: UnconstrainedSpec, Mintable: MintableInfinitely},
	}); err != nil {
		t.Fatalf("register asset definition: %v", err)
	}

	accounts := make([]AccountId, 5)
	for i := range accounts {
		acct := mustAccount(string(rune('b'+i)) + "@wonderland")
		accounts[i] = acct
		if err := e.ApplyTransaction(alice, []Instruction{RegisterAccount{Id: acct}}); err != nil {
			t.Fatalf("register account %s: %v", acct, err)
		}
	}

	one := mustNumeric(t, 1, 0)
	ten := mustNumeric(t, 10, 0)
	five := mustNumeric(t, 5, 0)

	for _, acct := range accounts {
		assetId := NewAssetId(def, acct)
		if err := e.ApplyTransaction(alice, []Instruction{MintAsset{Object: one, Destination: assetId}}); err != nil {
			t.Fatalf("mint 1 to %s: %v", acct, err)
		}
		if err := e.ApplyTransaction(alice, []Instruction{MintAsset{Object: ten, Destination: assetId}}); err != nil {
			t.Fatalf("mint 10 to %s: %v", acct, err)
		}
		if err := e.ApplyTransaction(alice, []Instruction{BurnAsset{Object: five, Destination: assetId}}); err != nil {
			t.Fatalf("burn 5 from %s: %v", acct, err)
		}
	}

	world := e.Snapshot()
	gotDef, err := world.AssetDefinition(def)
	if err != nil {
		t.Fatalf("lookup definition: %v", err)
	}
	want := mustNumeric(t, 30, 0)
	if gotDef.TotalQuantity.Cmp(want) != 0 {
		t.Fatalf("total_quantity = %s, want %s", gotDef.TotalQuantity, want)
	}

	six := mustNumeric(t, 6, 0)
	for _, acct := range accounts {
		assetId := NewAssetId(def, acct)
		if err := e.ApplyTransaction(alice, []Instruction{BurnAsset{Object: six, Destination: assetId}}); err != nil {
			t.Fatalf("burn remaining 6 from %s: %v", acct, err)
		}
	}

	world = e.Snapshot()
	gotDef, err = world.AssetDefinition(def)
	if err != nil {
		t.Fatalf("lookup definition after draining: %v", err)
	}
	if !gotDef.TotalQuantity.IsZero() {
		t.Fatalf("total_quantity = %s, want 0", gotDef.TotalQuantity)
	}

	for _, acct := range accounts {
		if _, err := world.Asset(NewAssetId(def, acct)); err == nil {
			t.Fatalf("asset row for %s still present after draining to zero", acct)
		}
	}

	if err := e.ApplyTransaction(alice, []Instruction{UnregisterAssetDefinition{Id: def}}); err != nil {
		t.Fatalf("unregister definition: %v", err)
	}

	world = e.Snapshot()
	_, err = ExecuteSingle(world, FindAssetsDefinitions, And(func(d *AssetDefinition) bool { return d.Id == def }))
	if err != ErrExpectedOneGotNone {
		t.Fatalf("query after unregister: got %v, want ErrExpectedOneGotNone", err)
	}
}

// TestMintOnceScenario is scenario S6: mintable=Once allows exactly one
// mint, emits MintabilityChanged, and rejects the second attempt.
func TestMintOnceScenario(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	def := mustAssetDef("rare#wonderland")
	if err := e.ApplyTransaction(alice, []Instruction{
		RegisterAssetDefinition{Id: def, Spec: UnconstrainedSpec, Mintable: MintableOnce},
	}); err != nil {
		t.Fatalf("register asset definition: %v", err)
	}

	id, ch := e.Events().Subscribe(16)
	defer e.Events().Unsubscribe(id)

	assetId := NewAssetId(def, alice)
	one := mustNumeric(t, 1, 0)
	if err := e.ApplyTransaction(alice, []Instruction{MintAsset{Object: one, Destination: assetId}}); err != nil {
		t.Fatalf("first mint: %v", err)
	}

	sawMintabilityChanged := false
	drain:
	for {
		select {
		case ev := <-ch:
			if ev.AssetDefinition != nil && ev.AssetDefinition.Kind == AssetDefinitionMintabilityChanged && ev.AssetDefinition.Id == def {
				sawMintabilityChanged = true
			}
		default:
			break drain
		}
	}
	if !sawMintabilityChanged {
		t.Fatal("expected AssetDefinitionMintabilityChanged event on first mint")
	}

	world := e.Snapshot()
	gotDef, err := world.AssetDefinition(def)
	if err != nil {
		t.Fatalf("lookup definition: %v", err)
	}
	if gotDef.Mintable != MintableNot {
		t.Fatalf("Mintable = %s, want Not", gotDef.Mintable)
	}

	err = e.ApplyTransaction(alice, []Instruction{MintAsset{Object: one, Destination: assetId}})
	if err != ErrMintUnmintable {
		t.Fatalf("second mint: got %v, want ErrMintUnmintable", err)
	}
}

// TestTransferAssetConservesSum is invariant 6: transfer is a no-op on
// balance(a)+balance(b) and on total_quantity.
func TestTransferAssetConservesSum(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	bob := mustAccount("bob@wonderland")
	e := newTestEngine(t, wonderland, alice)
	if err := e.ApplyTransaction(alice, []Instruction{RegisterAccount{Id: bob}}); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	def := mustAssetDef("coin#wonderland")
	if err := e.ApplyTransaction(alice, []Instruction{
		RegisterAssetDefinition{Id: def, Spec: UnconstrainedSpec, Mintable: MintableInfinitely},
	}); err != nil {
		t.Fatalf("register definition: %v", err)
	}

	aliceAsset := NewAssetId(def, alice)
	hundred := mustNumeric(t, 100, 0)
	if err := e.ApplyTransaction(alice, []Instruction{MintAsset{Object: hundred, Destination: aliceAsset}}); err != nil {
		t.Fatalf("mint: %v", err)
	}

	totalBefore, err := e.Snapshot().AssetDefinition(def)
	if err != nil {
		t.Fatal(err)
	}

	forty := mustNumeric(t, 40, 0)
	if err := e.ApplyTransaction(alice, []Instruction{
		TransferAsset{Source: aliceAsset, Object: forty, Destination: bob},
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	world := e.Snapshot()
	bobAsset, err := world.Asset(NewAssetId(def, bob))
	if err != nil {
		t.Fatalf("bob asset missing: %v", err)
	}
	aliceRow, err := world.Asset(aliceAsset)
	if err != nil {
		t.Fatalf("alice asset missing: %v", err)
	}
	sum, err := aliceRow.Value.CheckedAdd(bobAsset.Value)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Cmp(hundred) != 0 {
		t.Fatalf("balance(alice)+balance(bob) = %s, want %s", sum, hundred)
	}

	totalAfter, err := world.AssetDefinition(def)
	if err != nil {
		t.Fatal(err)
	}
	if totalAfter.TotalQuantity.Cmp(totalBefore.TotalQuantity) != 0 {
		t.Fatalf("total_quantity changed across transfer: %s -> %s", totalBefore.TotalQuantity, totalAfter.TotalQuantity)
	}
}

// TestRegisterAssetDefinitionTwiceFails is invariant 4 applied to asset
// definitions.
func TestRegisterAssetDefinitionTwiceFails(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	def := mustAssetDef("coin#wonderland")
	reg := RegisterAssetDefinition{Id: def, Spec: UnconstrainedSpec, Mintable: MintableInfinitely}
	if err := e.ApplyTransaction(alice, []Instruction{reg}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := e.ApplyTransaction(alice, []Instruction{reg})
	var repErr *RepetitionError
	if err == nil {
		t.Fatal("second register: expected RepetitionError, got nil")
	}
	if !asRepetitionError(err, &repErr) {
		t.Fatalf("second register: got %v, want *RepetitionError", err)
	}
}

func asRepetitionError(err error, target **RepetitionError) bool {
	re, ok := err.(*RepetitionError)
	if !ok {
		return false
	}
	*target = re
	return true
}

// TestMintTypeMismatch checks that the minted object's scale must satisfy
// the definition's NumericSpec.
func TestMintTypeMismatch(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	e := newTestEngine(t, wonderland, alice)

	def := mustAssetDef("coin#wonderland")
	if err := e.ApplyTransaction(alice, []Instruction{
		RegisterAssetDefinition{Id: def, Spec: FractionalSpec(2), Mintable: MintableInfinitely},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tooPrecise := mustNumeric(t, 12345, 3)
	err := e.ApplyTransaction(alice, []Instruction{
		MintAsset{Object: tooPrecise, Destination: NewAssetId(def, alice)},
	})
	var typeErr *TypeError
	te, ok := err.(*TypeError)
	if !ok {
		t.Fatalf("got %v, want *TypeError", err)
	}
	typeErr = te
	if typeErr.Expected.String() != "Fractional(2)" {
		t.Fatalf("Expected = %s, want Fractional(2)", typeErr.Expected)
	}
}
