package core

import "sync"

// Instruction is the single contract every instruction kind implements: a
// deterministic, authority-checked mutation against a StateTransaction's
// overlay. authority is advisory — concrete Execute methods enforce
// authorization through explicit checks, never by trusting the caller.
//
// Dispatch is a closed type switch over this interface, not an open
// inheritance hierarchy.
type Instruction interface {
	Execute(authority AccountId, tx *StateTransaction) error
}

// TransactionResult records the outcome of one submitted transaction within
// a block: a rejected transaction does not stop the block from committing.
type TransactionResult struct {
	Instructions int
	Err          error
}

func (r TransactionResult) Rejected() bool { return r.Err != nil }

// Engine owns the single canonical World root and serializes all writers
// behind one mutex: the state engine is single-writer. Readers call
// Snapshot and keep using the returned World even while a
// writer commits a new one, because commits always swap in a fresh World
// object rather than mutating the old one in place.
type Engine struct {
	mu      sync.RWMutex
	world   *World
	bus     *EventBus
	checker AuthorityChecker
}

// NewEngine returns an Engine seeded with an empty World and the AllowAll
// AuthorityChecker.
func NewEngine() *Engine {
	return &Engine{world: NewWorld(), bus: NewEventBus(), checker: AllowAll{}}
}

// NewEngineWithChecker is NewEngine with a caller-supplied AuthorityChecker,
// for wiring in a real role/permission system in place of AllowAll.
func NewEngineWithChecker(checker AuthorityChecker) *Engine {
	return &Engine{world: NewWorld(), bus: NewEventBus(), checker: checker}
}

// Events returns the Engine's Event Bus.
func (e *Engine) Events() *EventBus { return e.bus }

// Snapshot returns a consistent read-only view of the World for queries.
// The returned World is never mutated in place.
func (e *Engine) Snapshot() *World {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.world
}

// ApplyTransaction opens a StateTransaction, validates and executes every
// instruction in submission order, and either commits the whole batch or
// discards it atomically.
func (e *Engine) ApplyTransaction(authority AccountId, instructions []Instruction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx := newStateTransaction(e.world)
	for _, instr := range instructions {
		if err := validateInstruction(authority, instr, tx.overlay); err != nil {
			return err
		}
		allowed, err := e.checker.CanExecute(authority, instr, tx.overlay)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrValidationFail
		}
		if err := instr.Execute(authority, tx); err != nil {
			return err
		}
	}
	e.world = tx.overlay
	e.bus.publish(tx.events)
	return nil
}

// ApplyBlock applies every transaction in block order. A rejected
// transaction is recorded in the returned results with its failure
// reason but does not prevent later transactions in the block from
// committing, and the block itself still commits.
func (e *Engine) ApplyBlock(txs []SignedTransaction) []TransactionResult {
	results := make([]TransactionResult, len(txs))
	for i, stx := range txs {
		err := e.ApplyTransaction(stx.Authority, stx.Instructions)
		results[i] = TransactionResult{Instructions: len(stx.Instructions), Err: err}
	}
	return results
}
