package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// SignedTransaction is the wire envelope a client submits and a block
// carries. Instructions is a closed-type-switch slice, so it needs custom
// JSON handling (see MarshalJSON/UnmarshalJSON below); block payloads use
// RLP instead, via Block.Encode and DecodeBlock.
type SignedTransaction struct {
	ChainID      string
	Authority    AccountId
	Instructions []Instruction
	Metadata     Metadata
	Nonce        uint32
	Signatures   []string
}

// wireInstruction carries one instruction's concrete kind name alongside
// its JSON payload, so decoding can dispatch back to the right Go type — a
// JSON analogue of the closed type switch executor.go dispatches on.
type wireInstruction struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type jsonSignedTransaction struct {
	ChainID      string            `json:"chain_id"`
	Authority    string            `json:"authority"`
	Instructions []wireInstruction `json:"instructions"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
	Nonce        uint32            `json:"nonce"`
	Signatures   []string          `json:"signatures,omitempty"`
}

func (s SignedTransaction) MarshalJSON() ([]byte, error) {
	wireInstrs := make([]wireInstruction, len(s.Instructions))
	for i, instr := range s.Instructions {
		kind, payload, err := encodeInstruction(instr)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		wireInstrs[i] = wireInstruction{Kind: kind, Payload: payload}
	}
	meta := make(map[string]any, s.Metadata.Len())
	s.Metadata.Each(func(key Name, value Json) { meta[string(key)] = value.Value })
	return json.Marshal(jsonSignedTransaction{
		ChainID:      s.ChainID,
		Authority:    s.Authority.String(),
		Instructions: wireInstrs,
		Metadata:     meta,
		Nonce:        s.Nonce,
		Signatures:   s.Signatures,
	})
}

func (s *SignedTransaction) UnmarshalJSON(data []byte) error {
	var raw jsonSignedTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	authority, err := ParseAccountId(raw.Authority)
	if err != nil {
		return fmt.Errorf("authority: %w", err)
	}
	instrs := make([]Instruction, len(raw.Instructions))
	for i, wi := range raw.Instructions {
		instr, err := decodeInstruction(wi.Kind, wi.Payload)
		if err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		instrs[i] = instr
	}
	meta := NewMetadata()
	for k, v := range raw.Metadata {
		meta.Insert(Name(k), NewJson(v))
	}
	*s = SignedTransaction{
		ChainID:      raw.ChainID,
		Authority:    authority,
		Instructions: instrs,
		Metadata:     meta,
		Nonce:        raw.Nonce,
		Signatures:   raw.Signatures,
	}
	return nil
}

// encodeInstruction/decodeInstruction form the closed registry mapping
// every Instruction implementation to a stable wire kind name. Adding a new
// instruction kind means adding one case to each.
func encodeInstruction(instr Instruction) (kind string, payload json.RawMessage, err error) {
	var p []byte
	switch v := instr.(type) {
	case RegisterAssetDefinition:
		kind = "RegisterAssetDefinition"
		p, err = json.Marshal(v)
	case UnregisterAssetDefinition:
		kind = "UnregisterAssetDefinition"
		p, err = json.Marshal(v)
	case MintAsset:
		kind = "MintAsset"
		p, err = json.Marshal(v)
	case BurnAsset:
		kind = "BurnAsset"
		p, err = json.Marshal(v)
	case TransferAsset:
		kind = "TransferAsset"
		p, err = json.Marshal(v)
	case RegisterNft:
		kind = "RegisterNft"
		p, err = json.Marshal(v)
	case UnregisterNft:
		kind = "UnregisterNft"
		p, err = json.Marshal(v)
	case SetKeyValueNft:
		kind = "SetKeyValueNft"
		p, err = json.Marshal(v)
	case RemoveKeyValueNft:
		kind = "RemoveKeyValueNft"
		p, err = json.Marshal(v)
	case TransferNft:
		kind = "TransferNft"
		p, err = json.Marshal(v)
	case RegisterDomain:
		kind = "RegisterDomain"
		p, err = json.Marshal(v)
	case UnregisterDomain:
		kind = "UnregisterDomain"
		p, err = json.Marshal(v)
	case RegisterAccount:
		kind = "RegisterAccount"
		p, err = json.Marshal(v)
	case UnregisterAccount:
		kind = "UnregisterAccount"
		p, err = json.Marshal(v)
	case SetKeyValueAccount:
		kind = "SetKeyValueAccount"
		p, err = json.Marshal(v)
	case RemoveKeyValueAccount:
		kind = "RemoveKeyValueAccount"
		p, err = json.Marshal(v)
	case SetKeyValueDomain:
		kind = "SetKeyValueDomain"
		p, err = json.Marshal(v)
	case RemoveKeyValueDomain:
		kind = "RemoveKeyValueDomain"
		p, err = json.Marshal(v)
	default:
		return "", nil, fmt.Errorf("%w: unknown instruction type %T", ErrType, instr)
	}
	return kind, p, err
}

func decodeInstruction(kind string, payload json.RawMessage) (Instruction, error) {
	switch kind {
	case "RegisterAssetDefinition":
		var v RegisterAssetDefinition
		return v, json.Unmarshal(payload, &v)
	case "UnregisterAssetDefinition":
		var v UnregisterAssetDefinition
		return v, json.Unmarshal(payload, &v)
	case "MintAsset":
		var v MintAsset
		return v, json.Unmarshal(payload, &v)
	case "BurnAsset":
		var v BurnAsset
		return v, json.Unmarshal(payload, &v)
	case "TransferAsset":
		var v TransferAsset
		return v, json.Unmarshal(payload, &v)
	case "RegisterNft":
		var v RegisterNft
		return v, json.Unmarshal(payload, &v)
	case "UnregisterNft":
		var v UnregisterNft
		return v, json.Unmarshal(payload, &v)
	case "SetKeyValueNft":
		var v SetKeyValueNft
		return v, json.Unmarshal(payload, &v)
	case "RemoveKeyValueNft":
		var v RemoveKeyValueNft
		return v, json.Unmarshal(payload, &v)
	case "TransferNft":
		var v TransferNft
		return v, json.Unmarshal(payload, &v)
	case "RegisterDomain":
		var v RegisterDomain
		return v, json.Unmarshal(payload, &v)
	case "UnregisterDomain":
		var v UnregisterDomain
		return v, json.Unmarshal(payload, &v)
	case "RegisterAccount":
		var v RegisterAccount
		return v, json.Unmarshal(payload, &v)
	case "UnregisterAccount":
		var v UnregisterAccount
		return v, json.Unmarshal(payload, &v)
	case "SetKeyValueAccount":
		var v SetKeyValueAccount
		return v, json.Unmarshal(payload, &v)
	case "RemoveKeyValueAccount":
		var v RemoveKeyValueAccount
		return v, json.Unmarshal(payload, &v)
	case "SetKeyValueDomain":
		var v SetKeyValueDomain
		return v, json.Unmarshal(payload, &v)
	case "RemoveKeyValueDomain":
		var v RemoveKeyValueDomain
		return v, json.Unmarshal(payload, &v)
	default:
		return nil, fmt.Errorf("%w: unknown instruction kind %q", ErrType, kind)
	}
}

// rlpSignedTransaction is SignedTransaction's RLP shape: a flattened,
// deterministic byte encoding used only for the on-disk block payload,
// never for the CLI-facing JSON form. Instructions are embedded
// pre-encoded as JSON blobs so RLP never has to reason about the
// Instruction interface itself.
type rlpSignedTransaction struct {
	ChainID      string
	Authority    string
	Instructions [][]byte
	Nonce        uint32
	Signatures   []string
}

func (s SignedTransaction) toRLP() (rlpSignedTransaction, error) {
	instrs := make([][]byte, len(s.Instructions))
	for i, instr := range s.Instructions {
		kind, payload, err := encodeInstruction(instr)
		if err != nil {
			return rlpSignedTransaction{}, err
		}
		b, err := json.Marshal(wireInstruction{Kind: kind, Payload: payload})
		if err != nil {
			return rlpSignedTransaction{}, err
		}
		instrs[i] = b
	}
	return rlpSignedTransaction{
		ChainID:      s.ChainID,
		Authority:    s.Authority.String(),
		Instructions: instrs,
		Nonce:        s.Nonce,
		Signatures:   s.Signatures,
	}, nil
}

func signedTransactionFromRLP(r rlpSignedTransaction) (SignedTransaction, error) {
	authority, err := ParseAccountId(r.Authority)
	if err != nil {
		return SignedTransaction{}, err
	}
	instrs := make([]Instruction, len(r.Instructions))
	for i, b := range r.Instructions {
		var wi wireInstruction
		if err := json.Unmarshal(b, &wi); err != nil {
			return SignedTransaction{}, err
		}
		instr, err := decodeInstruction(wi.Kind, wi.Payload)
		if err != nil {
			return SignedTransaction{}, err
		}
		instrs[i] = instr
	}
	return SignedTransaction{
		ChainID:      r.ChainID,
		Authority:    authority,
		Instructions: instrs,
		Nonce:        r.Nonce,
		Signatures:   r.Signatures,
	}, nil
}

// Block is the signed, length-prefixed byte blob the Block Store persists.
// Its identity is the hash of its signed form; genesis has an absent
// PrevHash.
type Block struct {
	Height       uint64
	PrevHash     []byte // nil/empty for genesis
	Timestamp    int64
	Transactions []SignedTransaction
}

// Encode produces the deterministic RLP byte form fed to the Block Store
// and hashed for PrevHash linkage.
func (b Block) Encode() ([]byte, error) {
	rlpTxs := make([]rlpSignedTransaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		r, err := tx.toRLP()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		rlpTxs[i] = r
	}
	return rlp.EncodeToBytes(struct {
		Height       uint64
		PrevHash     []byte
		Timestamp    uint64 // rlp has no signed integers; converted back in DecodeBlock
		Transactions []rlpSignedTransaction
	}{b.Height, b.PrevHash, uint64(b.Timestamp), rlpTxs})
}

// DecodeBlock reverses Encode.
func DecodeBlock(data []byte) (Block, error) {
	var raw struct {
		Height       uint64
		PrevHash     []byte
		Timestamp    uint64
		Transactions []rlpSignedTransaction
	}
	if err := rlp.DecodeBytes(data, &raw); err != nil {
		return Block{}, err
	}
	txs := make([]SignedTransaction, len(raw.Transactions))
	for i, r := range raw.Transactions {
		tx, err := signedTransactionFromRLP(r)
		if err != nil {
			return Block{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs[i] = tx
	}
	return Block{Height: raw.Height, PrevHash: raw.PrevHash, Timestamp: int64(raw.Timestamp), Transactions: txs}, nil
}

// Hash identifies a block by the digest of its encoded signed form.
func (b Block) Hash() ([32]byte, error) {
	encoded, err := b.Encode()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(encoded), nil
}
