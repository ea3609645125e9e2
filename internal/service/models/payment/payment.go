package payment

// AuthorizeModel carries one authorization request into the payment service.
// RejectionProbability and MaxAttempts are caller overrides; nil means use the
// configured defaults. They are validated by the payment service, not here.
type AuthorizeModel struct {
	Token                string
	AmountCents          int64
	OrderID              int64
	CustomerID           int64
	CustomerName         string
	NotificationEmail    string
	RejectionProbability *float64
	MaxAttempts          *int
}

// Outcome is the business result of one authorization call. It is ephemeral:
// the orchestrator folds it into the order and it is never persisted on its
// own.
type Outcome struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
	Attempts int    `json:"attempts"`
}
