package core

import (
	"fmt"
	"strings"
)

// Name is an opaque, non-empty identifier component shared by every id type
// in the data model (domain names, asset names, role names, ...).
type Name string

func (n Name) String() string { return string(n) }

func parseName(kind, s string) (Name, error) {
	if s == "" {
		return "", fmt.Errorf("%s: %w: empty name", kind, ErrParse)
	}
	return Name(s), nil
}

// DomainId identifies a Domain. Textual form is the bare name.
type DomainId struct {
	Name Name
}

func NewDomainId(name Name) DomainId { return DomainId{Name: name} }

func (d DomainId) String() string { return string(d.Name) }

func ParseDomainId(s string) (DomainId, error) {
	n, err := parseName("DomainId", s)
	if err != nil {
		return DomainId{}, err
	}
	return DomainId{Name: n}, nil
}

// AccountId identifies an Account by its signatory public key and domain.
// Textual form is "public_key@domain".
type AccountId struct {
	PublicKey string
	Domain    DomainId
}

func NewAccountId(publicKey string, domain DomainId) AccountId {
	return AccountId{PublicKey: publicKey, Domain: domain}
}

func (a AccountId) String() string {
	return fmt.Sprintf("%s@%s", a.PublicKey, a.Domain)
}

// ParseAccountId parses "public_key@domain". Both components must be
// non-empty.
func ParseAccountId(s string) (AccountId, error) {
	key, domain, ok := strings.Cut(s, "@")
	if !ok {
		return AccountId{}, fmt.Errorf("AccountId: %w: expected `public_key@domain`", ErrParse)
	}
	if key == "" {
		return AccountId{}, fmt.Errorf("AccountId: %w: empty public_key part", ErrParse)
	}
	domainId, err := ParseDomainId(domain)
	if err != nil {
		return AccountId{}, fmt.Errorf("AccountId: %w", err)
	}
	return AccountId{PublicKey: key, Domain: domainId}, nil
}

// AssetDefinitionId identifies an AssetDefinition by name and domain.
// Textual form is "name#domain".
type AssetDefinitionId struct {
	Name   Name
	Domain DomainId
}

func NewAssetDefinitionId(name Name, domain DomainId) AssetDefinitionId {
	return AssetDefinitionId{Name: name, Domain: domain}
}

func (a AssetDefinitionId) String() string {
	return fmt.Sprintf("%s#%s", a.Name, a.Domain)
}

func ParseAssetDefinitionId(s string) (AssetDefinitionId, error) {
	name, domain, ok := strings.Cut(s, "#")
	if !ok {
		return AssetDefinitionId{}, fmt.Errorf("AssetDefinitionId: %w: expected `name#domain`", ErrParse)
	}
	n, err := parseName("AssetDefinitionId", name)
	if err != nil {
		return AssetDefinitionId{}, err
	}
	domainId, err := ParseDomainId(domain)
	if err != nil {
		return AssetDefinitionId{}, fmt.Errorf("AssetDefinitionId: %w", err)
	}
	return AssetDefinitionId{Name: n, Domain: domainId}, nil
}

// AssetId identifies an Asset by its definition and owning account.
// Textual form is "def_name#def_domain#acct_name@acct_domain", with the
// shorthand "def_name##acct_name@acct_domain" admitted when
// def_domain == acct_domain.
type AssetId struct {
	Definition AssetDefinitionId
	Account    AccountId
}

func NewAssetId(def AssetDefinitionId, account AccountId) AssetId {
	return AssetId{Definition: def, Account: account}
}

func (a AssetId) String() string {
	if a.Definition.Domain == a.Account.Domain {
		return fmt.Sprintf("%s##%s", a.Definition.Name, a.Account)
	}
	return fmt.Sprintf("%s#%s#%s", a.Definition.Name, a.Definition.Domain, a.Account)
}

// ParseAssetId parses either the full "def#def_domain#acct@acct_domain" form
// or the "def##acct@acct_domain" shorthand.
func ParseAssetId(s string) (AssetId, error) {
	if idx := strings.Index(s, "##"); idx >= 0 {
		defName := s[:idx]
		rest := s[idx+2:]
		n, err := parseName("AssetId", defName)
		if err != nil {
			return AssetId{}, err
		}
		account, err := ParseAccountId(rest)
		if err != nil {
			return AssetId{}, fmt.Errorf("AssetId: %w", err)
		}
		return AssetId{
			Definition: AssetDefinitionId{Name: n, Domain: account.Domain},
			Account:    account,
		}, nil
	}

	parts := strings.SplitN(s, "#", 3)
	if len(parts) != 3 {
		return AssetId{}, fmt.Errorf("AssetId: %w: expected `name#domain#acct@domain`", ErrParse)
	}
	defId, err := ParseAssetDefinitionId(parts[0] + "#" + parts[1])
	if err != nil {
		return AssetId{}, fmt.Errorf("AssetId: %w", err)
	}
	account, err := ParseAccountId(parts[2])
	if err != nil {
		return AssetId{}, fmt.Errorf("AssetId: %w", err)
	}
	return AssetId{Definition: defId, Account: account}, nil
}

// NftId identifies a non-fungible token by name and domain.
// Textual form is "name$domain".
type NftId struct {
	Name   Name
	Domain DomainId
}

func NewNftId(name Name, domain DomainId) NftId {
	return NftId{Name: name, Domain: domain}
}

func (n NftId) String() string {
	return fmt.Sprintf("%s$%s", n.Name, n.Domain)
}

func ParseNftId(s string) (NftId, error) {
	name, domain, ok := strings.Cut(s, "$")
	if !ok {
		return NftId{}, fmt.Errorf("NftId: %w: expected `name$domain`", ErrParse)
	}
	n, err := parseName("NftId", name)
	if err != nil {
		return NftId{}, err
	}
	domainId, err := ParseDomainId(domain)
	if err != nil {
		return NftId{}, fmt.Errorf("NftId: %w", err)
	}
	return NftId{Name: n, Domain: domainId}, nil
}
