package core

import (
	"encoding/json"
	"testing"
)

func TestNumericJSONRoundTrip(t *testing.T) {
	cases := []string{"0", "12.340", "-7", "100", "-0.001"}
	for _, s := range cases {
		n, err := ParseNumeric(s)
		if err != nil {
			t.Fatalf("ParseNumeric(%q): %v", s, err)
		}
		data, err := json.Marshal(n)
		if err != nil {
			t.Fatalf("marshal %q: %v", s, err)
		}
		var out Numeric
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal %q: %v", s, err)
		}
		if out.Cmp(n) != 0 {
			t.Fatalf("round-trip %q: got %s", s, out)
		}
	}
}

func TestNumericSpecJSONRoundTrip(t *testing.T) {
	for _, spec := range []NumericSpec{UnconstrainedSpec, FractionalSpec(4)} {
		data, err := json.Marshal(spec)
		if err != nil {
			t.Fatal(err)
		}
		var out NumericSpec
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out.String() != spec.String() {
			t.Fatalf("round-trip %s: got %s", spec, out)
		}
	}
}

func TestMetadataJSONRoundTripPreservesOrder(t *testing.T) {
	m := NewMetadata()
	m.Insert("z", NewJson(float64(1)))
	m.Insert("a", NewJson("hello"))
	m.Insert("m", NewJson(true))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var out Metadata
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != m.Len() {
		t.Fatalf("Len() = %d, want %d", out.Len(), m.Len())
	}
	var gotKeys []Name
	out.Each(func(key Name, _ Json) { gotKeys = append(gotKeys, key) })
	want := []Name{"z", "a", "m"}
	if len(gotKeys) != len(want) {
		t.Fatalf("keys = %v, want %v", gotKeys, want)
	}
	for i := range want {
		if gotKeys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", gotKeys, want)
		}
	}
}

func TestSignedTransactionJSONRoundTrip(t *testing.T) {
	wonderland := mustDomain("wonderland")
	alice := mustAccount("alice@wonderland")
	def := mustAssetDef("coin#wonderland")
	amount := mustNumeric(t, 10, 0)

	stx := SignedTransaction{
		ChainID:   "test-chain",
		Authority: alice,
		Instructions: []Instruction{
			RegisterDomain{Id: wonderland, OwnedBy: alice},
			MintAsset{Object: amount, Destination: NewAssetId(def, alice)},
		},
		Nonce: 42,
	}

	data, err := json.Marshal(stx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out SignedTransaction
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ChainID != stx.ChainID || out.Authority != stx.Authority || out.Nonce != stx.Nonce {
		t.Fatalf("round-trip header mismatch: %+v", out)
	}
	if len(out.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(out.Instructions))
	}
	if _, ok := out.Instructions[0].(RegisterDomain); !ok {
		t.Fatalf("instruction[0] = %T, want RegisterDomain", out.Instructions[0])
	}
	mint, ok := out.Instructions[1].(MintAsset)
	if !ok {
		t.Fatalf("instruction[1] = %T, want MintAsset", out.Instructions[1])
	}
	if mint.Object.Cmp(amount) != 0 {
		t.Fatalf("mint.Object = %s, want %s", mint.Object, amount)
	}
}

// TestBlockEncodeDecodeRoundTrip exercises the RLP on-disk block codec
// independent of the block store.
func TestBlockEncodeDecodeRoundTrip(t *testing.T) {
	alice := mustAccount("alice@wonderland")
	def := mustAssetDef("coin#wonderland")
	stx := SignedTransaction{
		ChainID:   "test-chain",
		Authority: alice,
		Instructions: []Instruction{
			MintAsset{Object: mustNumeric(t, 5, 0), Destination: NewAssetId(def, alice)},
		},
		Nonce: 1,
	}
	block := Block{Height: 1, Timestamp: 1234, Transactions: []SignedTransaction{stx}}

	encoded, err := block.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeBlock(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Height != block.Height || decoded.Timestamp != block.Timestamp {
		t.Fatalf("decoded header mismatch: %+v", decoded)
	}
	if len(decoded.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(decoded.Transactions))
	}
	mint, ok := decoded.Transactions[0].Instructions[0].(MintAsset)
	if !ok {
		t.Fatalf("decoded instruction = %T, want MintAsset", decoded.Transactions[0].Instructions[0])
	}
	if mint.Object.Cmp(stx.Instructions[0].(MintAsset).Object) != 0 {
		t.Fatalf("decoded mint amount = %s", mint.Object)
	}

	h1, err := block.Hash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := decoded.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("hash not stable across encode/decode: %x != %x", h1, h2)
	}
}
