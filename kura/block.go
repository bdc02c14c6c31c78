package kura

import (
	"fmt"

	"irohacore/core"
)

// AppendBlock encodes block and appends it to the store. The caller is
// responsible for having set block.PrevHash to the hash of the previous
// block (absent only for genesis) before calling this — the store itself
// has no opinion on chain linkage, only on durable, ordered storage.
func (s *Store) AppendBlock(block core.Block) error {
	payload, err := block.Encode()
	if err != nil {
		return fmt.Errorf("kura: encode block %d: %w", block.Height, err)
	}
	return s.Append(payload)
}

// BlockAt decodes the block stored at the given 1-based external height
// (genesis == height 1 == internal index 0).
func (s *Store) BlockAt(height uint64) (core.Block, error) {
	if height == 0 {
		return core.Block{}, fmt.Errorf("kura: height must be >= 1, got 0")
	}
	raw, err := s.ReadBlockAt(height - 1)
	if err != nil {
		return core.Block{}, err
	}
	return core.DecodeBlock(raw)
}

// FindBlocks returns up to count blocks in reverse height order (newest
// first), starting from the chain's current tip.
func (s *Store) FindBlocks(count uint64) ([]core.Block, error) {
	total, err := s.ReadIndexCount()
	if err != nil {
		return nil, err
	}
	if count > total {
		count = total
	}
	out := make([]core.Block, 0, count)
	for i := uint64(0); i < count; i++ {
		height := total - i // 1-based height, newest first
		b, err := s.BlockAt(height)
		if err != nil {
			return nil, fmt.Errorf("kura: decode block at height %d: %w", height, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// FindTransactions returns up to count transactions in reverse commit
// order (newest first), flattening across blocks newest-to-oldest and,
// within each block, last-submitted-first.
func (s *Store) FindTransactions(count uint64) ([]core.SignedTransaction, error) {
	total, err := s.ReadIndexCount()
	if err != nil {
		return nil, err
	}
	out := make([]core.SignedTransaction, 0, count)
	for i := uint64(0); i < total && uint64(len(out)) < count; i++ {
		height := total - i
		b, err := s.BlockAt(height)
		if err != nil {
			return nil, fmt.Errorf("kura: decode block at height %d: %w", height, err)
		}
		for j := len(b.Transactions) - 1; j >= 0 && uint64(len(out)) < count; j-- {
			out = append(out, b.Transactions[j])
		}
	}
	return out, nil
}
