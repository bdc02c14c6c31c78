package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Concrete errors wrap one of these with
// fmt.Errorf("...: %w", ...) so callers can dispatch with errors.Is.
var (
	// ErrParse is returned by id-parsing grammar failures.
	ErrParse = errors.New("parse error")

	// ErrNotFound is returned when an entity looked up by id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRepetition is returned when Register targets an id that already
	// exists.
	ErrRepetition = errors.New("already exists")

	// ErrType is returned when a Numeric value violates a NumericSpec.
	ErrType = errors.New("type error")

	// ErrOverflow and ErrNotEnoughQuantity are the two MathError variants.
	ErrOverflow         = errors.New("math overflow")
	ErrNotEnoughQuantity = errors.New("not enough quantity")

	// ErrMintUnmintable is returned by Mint against a Not/already-Once
	// asset definition.
	ErrMintUnmintable = errors.New("asset is not mintable")

	// ErrInvariantViolation covers semantic guards that are not simple
	// not-found/repetition errors, such as the NFT transfer ownership
	// check and the other ownership checks in validateInstruction
	// (including the NFT metadata-mutation domain-owner check).
	ErrInvariantViolation = errors.New("invariant violation")

	// Query execution failures.
	ErrFetchSizeTooBig    = errors.New("fetch size too big")
	ErrCursorInvalid      = errors.New("cursor invalid")
	ErrExpectedOneGotNone = errors.New("expected exactly one result, got none")
	ErrExpectedOneGotMany = errors.New("expected exactly one result, got more than one")

	// ErrValidationFail is returned when the Engine's AuthorityChecker
	// rejects an instruction.
	ErrValidationFail = errors.New("validation failed")

	// ErrNotImplemented marks a deliberately unimplemented out-of-scope
	// collaborator surface (networking, consensus, WASM, ...).
	ErrNotImplemented = errors.New("not implemented")
)

// RepetitionError names the instruction and id that collided.
type RepetitionError struct {
	Instruction string
	Id          fmt.Stringer
}

func (e *RepetitionError) Error() string {
	return fmt.Sprintf("%s: %s %q already exists", ErrRepetition, e.Instruction, e.Id)
}

func (e *RepetitionError) Unwrap() error { return ErrRepetition }

func newRepetitionError(instruction string, id fmt.Stringer) error {
	return &RepetitionError{Instruction: instruction, Id: id}
}

// NotFoundError names the entity kind and id that was missing.
type NotFoundError struct {
	Kind string
	Id   fmt.Stringer
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrNotFound, e.Kind, e.Id)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func newNotFoundError(kind string, id fmt.Stringer) error {
	return &NotFoundError{Kind: kind, Id: id}
}

// TypeError reports the mismatch between a NumericSpec and the value it
// rejected.
type TypeError struct {
	Expected NumericSpec
	Actual   NumericSpec
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrType, e.Expected, e.Actual)
}

func (e *TypeError) Unwrap() error { return ErrType }
