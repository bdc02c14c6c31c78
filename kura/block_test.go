package kura

import (
	"testing"

	"irohacore/core"
)

func mustAccount(t *testing.T, s string) core.AccountId {
	t.Helper()
	a, err := core.ParseAccountId(s)
	if err != nil {
		t.Fatalf("ParseAccountId(%q): %v", s, err)
	}
	return a
}

// TestBlocksReversedAndLinked is scenario S5: after committing two user
// transactions (one block each) on a fresh chain, FindBlocks returns them
// newest-first and prev_block_hash links head-to-tail, with genesis's
// prev_block_hash absent.
func TestBlocksReversedAndLinked(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	alice := mustAccount(t, "alice@wonderland")

	genesis := core.Block{
		Height:       1,
		PrevHash:     nil,
		Timestamp:    1000,
		Transactions: []core.SignedTransaction{{ChainID: "test", Authority: alice, Nonce: 1}},
	}
	if err := store.AppendBlock(genesis); err != nil {
		t.Fatalf("append genesis: %v", err)
	}
	genesisHash, err := genesis.Hash()
	if err != nil {
		t.Fatal(err)
	}

	second := core.Block{
		Height:       2,
		PrevHash:     genesisHash[:],
		Timestamp:    2000,
		Transactions: []core.SignedTransaction{{ChainID: "test", Authority: alice, Nonce: 2}},
	}
	if err := store.AppendBlock(second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	blocks, err := store.FindBlocks(10)
	if err != nil {
		t.Fatalf("FindBlocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("FindBlocks returned %d blocks, want 2", len(blocks))
	}
	if blocks[0].Height != 2 || blocks[1].Height != 1 {
		t.Fatalf("FindBlocks order = [%d, %d], want [2, 1] (reverse height order)", blocks[0].Height, blocks[1].Height)
	}

	if len(blocks[1].PrevHash) != 0 {
		t.Fatalf("genesis PrevHash = %x, want absent", blocks[1].PrevHash)
	}
	if string(blocks[0].PrevHash) != string(genesisHash[:]) {
		t.Fatalf("block 2 PrevHash = %x, want hash(genesis) = %x", blocks[0].PrevHash, genesisHash)
	}
}

// TestBlockAtIsOneBased confirms BlockAt rejects height 0 and that height 1
// is the first appended block (genesis), matching the external 1-based
// convention documented on BlockAt.
func TestBlockAtIsOneBased(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	alice := mustAccount(t, "alice@wonderland")
	genesis := core.Block{Height: 1, Transactions: []core.SignedTransaction{{ChainID: "test", Authority: alice}}}
	if err := store.AppendBlock(genesis); err != nil {
		t.Fatal(err)
	}

	if _, err := store.BlockAt(0); err == nil {
		t.Fatal("BlockAt(0): expected an error, got nil")
	}
	b, err := store.BlockAt(1)
	if err != nil {
		t.Fatalf("BlockAt(1): %v", err)
	}
	if b.Height != 1 {
		t.Fatalf("BlockAt(1).Height = %d, want 1", b.Height)
	}
}

// TestFindTransactionsReverseCommitOrder exercises FindTransactions across
// multiple blocks and multiple transactions per block.
func TestFindTransactionsReverseCommitOrder(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	alice := mustAccount(t, "alice@wonderland")
	bob := mustAccount(t, "bob@wonderland")

	first := core.Block{
		Height: 1,
		Transactions: []core.SignedTransaction{
			{ChainID: "test", Authority: alice, Nonce: 1},
			{ChainID: "test", Authority: bob, Nonce: 2},
		},
	}
	if err := store.AppendBlock(first); err != nil {
		t.Fatal(err)
	}
	h1, err := first.Hash()
	if err != nil {
		t.Fatal(err)
	}
	second := core.Block{
		Height:   2,
		PrevHash: h1[:],
		Transactions: []core.SignedTransaction{
			{ChainID: "test", Authority: alice, Nonce: 3},
		},
	}
	if err := store.AppendBlock(second); err != nil {
		t.Fatal(err)
	}

	txs, err := store.FindTransactions(10)
	if err != nil {
		t.Fatalf("FindTransactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	wantNonces := []uint32{3, 2, 1}
	for i, want := range wantNonces {
		if txs[i].Nonce != want {
			t.Fatalf("txs[%d].Nonce = %d, want %d", i, txs[i].Nonce, want)
		}
	}
}
