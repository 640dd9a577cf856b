// Package payments implements order checkout and payment confirmation
// against a hosted checkout processor.
package payments

import "context"

// SessionParams describes the single-line-item checkout session the
// engine asks the processor to create.
type SessionParams struct {
	AmountCents   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// Session is the processor's handle on a created checkout session.
type Session struct {
	ID  string
	URL string
}

// RetrievedSession is what confirmation needs back from the processor:
// the payment-intent id and the metadata echoed from creation.
type RetrievedSession struct {
	PaymentIntentID string
	Metadata        map[string]string
}

// Gateway is the payment-processor boundary. The processor owns all
// session state; this side only creates and retrieves.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*RetrievedSession, error)
}
