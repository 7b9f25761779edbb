package directory

import "errors"

// Not-found errors are deliberately identical for "does not exist" and
// "belongs to another organisation" so cross-tenant probes learn nothing.
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrAlreadyAssigned    = errors.New("employee already assigned to this team")
	ErrAssignmentNotFound = errors.New("employee not assigned to this team")
)
