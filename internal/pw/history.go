package pw

// PasswordHistory keeps accepted passwords in memory, in insertion order, for
// similarity checks. It is never persisted and is not safe for concurrent
// use; CredentialService serializes access to it.
type PasswordHistory struct {
	entries []string
}

// NewPasswordHistory creates an empty history.
func NewPasswordHistory() *PasswordHistory {
	return &PasswordHistory{}
}

// Add appends a password to the history.
func (h *PasswordHistory) Add(password string) {
	h.entries = append(h.entries, password)
}

// Entries returns a copy of the history, oldest first.
func (h *PasswordHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of remembered passwords.
func (h *PasswordHistory) Len() int {
	return len(h.entries)
}

// IsSimilar checks candidate against every remembered password.
func (h *PasswordHistory) IsSimilar(candidate string, threshold float64) bool {
	return IsSimilar(candidate, h.entries, threshold)
}
