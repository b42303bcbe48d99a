package models

// PaysendWebhookPayload is the provider's transaction notification body.
type PaysendWebhookPayload struct {
	TransactionID string           `json:"transactionId"`
	Status        string           `json:"status"`
	Recipient     PaysendRecipient `json:"recipient"`
}

// PaysendRecipient identifies the credited party in a provider payload.
type PaysendRecipient struct {
	PhoneNumber string `json:"phone_number"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

// WebhookAck is the synchronous acknowledgement body for webhooks.
type WebhookAck struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Result        string `json:"result"`
}

// CashOutVerifyRequest is the ATM gateway's code verification payload.
type CashOutVerifyRequest struct {
	PhoneNumber    string `json:"phone_number"`
	WithdrawalCode string `json:"withdrawal_code"`
	IdempotencyKey string `json:"-"`
}
