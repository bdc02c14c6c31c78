package core

// RegisterDomain creates a new Domain owned by the given account. The
// domain owner is the authority for the domain's own metadata and for Nft
// metadata inside it (account metadata is changed only by the account
// itself), and a domain must exist before anything can be registered into
// it.
type RegisterDomain struct {
	Id       DomainId
	OwnedBy  AccountId
	Metadata Metadata
}

func (r RegisterDomain) Execute(_ AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.Domain(r.Id); err == nil {
		return newRepetitionError("Register", r.Id)
	}
	tx.overlay.domains[r.Id] = &Domain{Id: r.Id, OwnedBy: r.OwnedBy, Metadata: r.Metadata}
	return nil
}

// UnregisterDomain removes a Domain. Leftover accounts/assets/nfts scoped
// to it become unreachable through their id's domain component but are not
// swept eagerly.
type UnregisterDomain struct {
	Id DomainId
}

func (u UnregisterDomain) Execute(_ AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.Domain(u.Id); err != nil {
		return err
	}
	delete(tx.overlay.domains, u.Id)
	return nil
}

// RegisterAccount creates a new Account inside an existing Domain.
type RegisterAccount struct {
	Id       AccountId
	Metadata Metadata
}

func (r RegisterAccount) Execute(_ AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.Domain(r.Id.Domain); err != nil {
		return err
	}
	if _, err := tx.overlay.Account(r.Id); err == nil {
		return newRepetitionError("Register", r.Id)
	}
	tx.overlay.accounts[r.Id] = &Account{Id: r.Id, Metadata: r.Metadata}
	return nil
}

// UnregisterAccount removes an Account.
type UnregisterAccount struct {
	Id AccountId
}

func (u UnregisterAccount) Execute(_ AccountId, tx *StateTransaction) error {
	if _, err := tx.overlay.Account(u.Id); err != nil {
		return err
	}
	delete(tx.overlay.accounts, u.Id)
	return nil
}

// SetKeyValueAccount inserts or overwrites a metadata key on an Account.
// Only the account itself may call this (enforced in validateInstruction).
type SetKeyValueAccount struct {
	Id    AccountId
	Key   Name
	Value Json
}

func (s SetKeyValueAccount) Execute(_ AccountId, tx *StateTransaction) error {
	a, err := tx.overlay.Account(s.Id)
	if err != nil {
		return err
	}
	a.Metadata.Insert(s.Key, s.Value)
	return nil
}

// RemoveKeyValueAccount deletes a metadata key from an Account.
type RemoveKeyValueAccount struct {
	Id  AccountId
	Key Name
}

func (r RemoveKeyValueAccount) Execute(_ AccountId, tx *StateTransaction) error {
	a, err := tx.overlay.Account(r.Id)
	if err != nil {
		return err
	}
	if _, existed := a.Metadata.Remove(r.Key); !existed {
		return newNotFoundError("MetadataKey", Name(r.Key))
	}
	return nil
}

// SetKeyValueDomain inserts or overwrites a metadata key on a Domain. Only
// the domain owner may call this (enforced in validateInstruction).
type SetKeyValueDomain struct {
	Id    DomainId
	Key   Name
	Value Json
}

func (s SetKeyValueDomain) Execute(_ AccountId, tx *StateTransaction) error {
	d, err := tx.overlay.Domain(s.Id)
	if err != nil {
		return err
	}
	d.Metadata.Insert(s.Key, s.Value)
	return nil
}

// RemoveKeyValueDomain deletes a metadata key from a Domain.
type RemoveKeyValueDomain struct {
	Id  DomainId
	Key Name
}

func (r RemoveKeyValueDomain) Execute(_ AccountId, tx *StateTransaction) error {
	d, err := tx.overlay.Domain(r.Id)
	if err != nil {
		return err
	}
	if _, existed := d.Metadata.Remove(r.Key); !existed {
		return newNotFoundError("MetadataKey", Name(r.Key))
	}
	return nil
}
