package core

// AuthorityChecker is the general permission-system collaborator the
// executor consults for every instruction, after validateInstruction's
// data-model-level authorization checks have passed. Roles, granted permissions and multisig
// approval are out of scope for this slice (see cmd/iroha's `role` and
// `multisig` stub subcommands); this interface exists so Engine has a seam
// to plug a real implementation into without a Non-goal leaving a silent
// gap in the closed Instruction dispatch.
type AuthorityChecker interface {
	// CanExecute reports whether authority is permitted to run instr against
	// the given World snapshot.
	CanExecute(authority AccountId, instr Instruction, world *World) (bool, error)
}

// AllowAll is the zero-configuration AuthorityChecker: every instruction is
// permitted, deferring entirely to validateInstruction's data-model checks.
// It is what Engine uses until a real role/permission system is wired in.
type AllowAll struct{}

func (AllowAll) CanExecute(AccountId, Instruction, *World) (bool, error) {
	return true, nil
}
