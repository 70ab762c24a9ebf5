package store

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	// Confirmed approves everything; for callers that already asked.
	Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })
	// Declined refuses everything.
	Declined Confirmer = ConfirmFunc(func(string) bool { return false })
)

// confirmed treats a missing confirmer as a refusal.
func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}
