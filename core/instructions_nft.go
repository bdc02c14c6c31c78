package core

// RegisterNft creates a new Nft owned by the authority, carrying the given
// initial content as its metadata.
type RegisterNft struct {
	Id      NftId
	Content Metadata
}

func (r RegisterNft) Execute(authority AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.Nft(r.Id); err == nil {
		return newRepetitionError("Register", r.Id)
	}
	if _, err := tx.overlay.Domain(r.Id.Domain); err != nil {
		return err
	}
	n := &Nft{Id: r.Id, Content: r.Content, OwnedBy: authority}
	tx.overlay.nfts[r.Id] = n
	tx.emit(Event{Nft: &NftEvent{Kind: NftCreated, Nft: r.Id}})
	return nil
}

// UnregisterNft removes an Nft outright. Unlike assets, nfts have no
// zero-materialization rule: the row only ever disappears by explicit
// Unregister.
type UnregisterNft struct {
	Id NftId
}

func (u UnregisterNft) Execute(_ AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.Nft(u.Id); err != nil {
		return err
	}
	delete(tx.overlay.nfts, u.Id)
	tx.emit(Event{Nft: &NftEvent{Kind: NftDeleted, Nft: u.Id}})
	return nil
}

// SetKeyValueNft inserts or overwrites a single metadata key on an Nft.
// Authorization (only the domain owner may call this) is enforced in
// validateInstruction, not here.
type SetKeyValueNft struct {
	Id    NftId
	Key   Name
	Value Json
}

func (s SetKeyValueNft) Execute(_ AccountId, tx *StateTransaction) error {
	n, err := tx.overlay.Nft(s.Id)
	if err != nil {
		return err
	}
	n.Content.Insert(s.Key, s.Value)
	tx.emit(Event{Nft: &NftEvent{Kind: NftMetadataInserted, Nft: s.Id, Key: s.Key}})
	return nil
}

// RemoveKeyValueNft deletes a single metadata key from an Nft, returning
// ErrNotFound if the key is absent.
type RemoveKeyValueNft struct {
	Id  NftId
	Key Name
}

func (r RemoveKeyValueNft) Execute(_ AccountId, tx *StateTransaction) error {
	n, err := tx.overlay.Nft(r.Id)
	if err != nil {
		return err
	}
	old, existed := n.Content.Remove(r.Key)
	if !existed {
		return newNotFoundError("MetadataKey", Name(r.Key))
	}
	tx.emit(Event{Nft: &NftEvent{Kind: NftMetadataRemoved, Nft: r.Id, Key: r.Key, OldValue: old}})
	return nil
}

// TransferNft reassigns ownership of an Nft. Only the current owner may do
// this (enforced in validateInstruction); the metadata travels with the
// token unchanged.
type TransferNft struct {
	Source      AccountId
	Object      NftId
	Destination AccountId
}

func (t TransferNft) Execute(_ AccountId, tx *StateTransaction) error {
	n, err := tx.overlay.Nft(t.Object)
	if err != nil {
		return err
	}
	if n.OwnedBy != t.Source {
		return ErrInvariantViolation
	}
	if _, err := tx.overlay.Account(t.Destination); err != nil {
		return err
	}
	n.OwnedBy = t.Destination
	tx.emit(Event{Nft: &NftEvent{Kind: NftOwnerChanged, Nft: t.Object, NewOwner: t.Destination}})
	return nil
}
