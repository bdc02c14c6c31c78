package core

// RegisterAssetDefinition creates a new AssetDefinition owned by the
// authority, with TotalQuantity starting at zero.
type RegisterAssetDefinition struct {
	Id       AssetDefinitionId
	Spec     NumericSpec
	Mintable Mintable
	Logo     string
	Metadata Metadata
}

func (r RegisterAssetDefinition) Execute(authority AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.AssetDefinition(r.Id); err == nil {
		return newRepetitionError("Register", r.Id)
	}
	if _, err := tx.overlay.Domain(r.Id.Domain); err != nil {
		return err
	}
	def := &AssetDefinition{
		Id:            r.Id,
		Spec:          r.Spec,
		Mintable:      r.Mintable,
		Logo:          r.Logo,
		Metadata:      r.Metadata,
		OwnedBy:       authority,
		TotalQuantity: ZeroNumeric,
	}
	tx.overlay.assetDefinitions[r.Id] = def
	tx.emit(Event{AssetDefinition: &AssetDefinitionEvent{Kind: AssetDefinitionCreated, Id: r.Id}})
	return nil
}

// UnregisterAssetDefinition removes an AssetDefinition. This also makes
// subsequent total-quantity queries for it return not-found, since the
// row itself is gone.
type UnregisterAssetDefinition struct {
	Id AssetDefinitionId
}

func (u UnregisterAssetDefinition) Execute(_ AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.AssetDefinition(u.Id); err != nil {
		return err
	}
	delete(tx.overlay.assetDefinitions, u.Id)
	tx.emit(Event{AssetDefinition: &AssetDefinitionEvent{Kind: AssetDefinitionDeleted, Id: u.Id}})
	return nil
}

// MintAsset credits `Object` units onto `Destination`.
type MintAsset struct {
	Object      Numeric
	Destination AssetId
}

func (m MintAsset) Execute(_ AccountId, tx *StateTransaction) error {
	def, err := tx.overlay.AssetDefinition(m.Destination.Definition)
	if err != nil {
		return err
	}
	if err := assertNumericSpec(m.Object, def); err != nil {
		return err
	}
	if err := assertCanMint(def, tx); err != nil {
		return err
	}

	asset, err := tx.overlay.assetOrInsert(m.Destination, ZeroNumeric)
	if err != nil {
		return err
	}
	newValue, err := asset.Value.CheckedAdd(m.Object)
	if err != nil {
		return err
	}
	asset.Value = newValue
	tx.overlay.removeAssetIfZero(m.Destination)

	if err := tx.overlay.increaseAssetTotalAmount(m.Destination.Definition, m.Object); err != nil {
		return err
	}

	tx.emit(Event{Asset: &AssetEvent{Kind: AssetAdded, Asset: m.Destination, Amount: m.Object}})
	return nil
}

// assertNumericSpec checks that object satisfies def's NumericSpec,
// returning a TypeError describing the mismatch otherwise.
func assertNumericSpec(object Numeric, def *AssetDefinition) error {
	if def.Spec.Check(object) {
		return nil
	}
	return &TypeError{Expected: def.Spec, Actual: specOf(object)}
}

// assertCanMint enforces the Mintable policy, flipping Once -> Not and
// emitting MintabilityChanged on the first successful mint.
func assertCanMint(def *AssetDefinition, tx *StateTransaction) error {
	switch def.Mintable {
	case MintableInfinitely:
		return nil
	case MintableNot:
		return ErrMintUnmintable
	case MintableOnce:
		def.Mintable = MintableNot
		tx.emit(Event{AssetDefinition: &AssetDefinitionEvent{
			Kind: AssetDefinitionMintabilityChanged,
			Id:   def.Id,
		}})
		return nil
	default:
		return ErrMintUnmintable
	}
}

// BurnAsset debits `Object` units from `Destination`, removing the row if
// its value returns to zero.
type BurnAsset struct {
	Object      Numeric
	Destination AssetId
}

func (b BurnAsset) Execute(_ AccountId, tx *StateTransaction) error {
	def, err := tx.overlay.AssetDefinition(b.Destination.Definition)
	if err != nil {
		return err
	}
	if err := assertNumericSpec(b.Object, def); err != nil {
		return err
	}

	asset, err := tx.overlay.Asset(b.Destination)
	if err != nil {
		return err
	}
	newValue, err := asset.Value.CheckedSub(b.Object)
	if err != nil {
		return err
	}
	asset.Value = newValue
	tx.overlay.removeAssetIfZero(b.Destination)

	if err := tx.overlay.decreaseAssetTotalAmount(b.Destination.Definition, b.Object); err != nil {
		return err
	}

	tx.emit(Event{Asset: &AssetEvent{Kind: AssetRemoved, Asset: b.Destination, Amount: b.Object}})
	return nil
}

// TransferAsset moves `Object` units of the asset identified by Source's
// definition from Source's account to Destination, bypassing mintability
// entirely — transfers never consume mint permission nor affect
// TotalQuantity.
//
// Ordering matters: the decrement happens before the credit, so a
// self-transfer with sufficient balance is a no-op and one with
// insufficient balance still errors (rather than crediting first and
// making self-transfer always succeed).
type TransferAsset struct {
	Source      AssetId
	Object      Numeric
	Destination AccountId
}

func (t TransferAsset) Execute(_ AccountId, tx *StateTransaction) error {
	def, err := tx.overlay.AssetDefinition(t.Source.Definition)
	if err != nil {
		return err
	}
	if err := assertNumericSpec(t.Object, def); err != nil {
		return err
	}

	source, err := tx.overlay.Asset(t.Source)
	if err != nil {
		return err
	}
	newSourceValue, err := source.Value.CheckedSub(t.Object)
	if err != nil {
		return err
	}
	source.Value = newSourceValue
	tx.overlay.removeAssetIfZero(t.Source)

	destinationId := NewAssetId(t.Source.Definition, t.Destination)
	destination, err := tx.overlay.assetOrInsert(destinationId, ZeroNumeric)
	if err != nil {
		return err
	}
	newDestValue, err := destination.Value.CheckedAdd(t.Object)
	if err != nil {
		return err
	}
	destination.Value = newDestValue
	tx.overlay.removeAssetIfZero(destinationId)

	tx.emit(
		Event{Asset: &AssetEvent{Kind: AssetRemoved, Asset: t.Source, Amount: t.Object}},
		Event{Asset: &AssetEvent{Kind: AssetAdded, Asset: destinationId, Amount: t.Object}},
	)
	return nil
}
