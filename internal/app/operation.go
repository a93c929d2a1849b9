package app

import "github.com/google/uuid"

// Operation identifies one CLI invocation in the log. Every line written
// during the invocation carries its SessionID.
type Operation struct {
	Name      string
	SessionID string
	Status    string // "success" or "error"
}

// NewOperation creates an operation with a fresh session ID.
func NewOperation(name string) *Operation {
	return &Operation{
		Name:      name,
		SessionID: uuid.New().String(),
		Status:    "success",
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}
