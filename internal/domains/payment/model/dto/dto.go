package dto

import "strings"

const transferTypeIn = "in"

// WebhookRequest is the bank-transfer notification posted by the payment gateway.
type WebhookRequest struct {
	ID              int64  `json:"id"`
	Gateway         string `json:"gateway"`
	TransactionDate string `json:"transactionDate"`
	AccountNumber   string `json:"accountNumber"`
	Content         string `json:"content"`
	TransferType    string `json:"transferType"`
	TransferAmount  int64  `json:"transferAmount"`
	ReferenceCode   string `json:"referenceCode"`
	Description     string `json:"description"`
}

// IsIncoming reports whether the notification is money arriving. Gateways that omit the
// type only report incoming transfers.
func (w *WebhookRequest) IsIncoming() bool {
	return w.TransferType == "" || strings.EqualFold(w.TransferType, transferTypeIn)
}

// Text is where the guest's transfer description may appear.
func (w *WebhookRequest) Text() string {
	if w.Description == "" {
		return w.Content
	}

	return w.Content + " " + w.Description
}

// Outcome says what the webhook did. Every outcome is acknowledged to the gateway.
type Outcome string

const (
	OutcomeConfirmed      Outcome = "confirmed"
	OutcomeIgnored        Outcome = "ignored"
	OutcomeNoOrderCode    Outcome = "no_order_code"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeAlreadyPaid    Outcome = "already_paid"
	OutcomeNotPayable     Outcome = "not_payable"
	OutcomeInsufficient   Outcome = "insufficient_amount"
	OutcomeAlreadyHandled Outcome = "already_handled"
)

type WebhookResult struct {
	Outcome   Outcome
	BookingID string
	OrderCode string
	Credited  int64
}

type WebhookAck struct {
	Success bool `json:"success"`
}
