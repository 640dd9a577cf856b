package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"local-chef-bazaar-api/storage"
)

const checkoutCurrency = "usd"

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CheckoutInput is what a checkout session is built from. TotalPrice is
// the caller-supplied price in major currency units, kept as a string so
// the integer parse below owns the conversion.
type CheckoutInput struct {
	OrderID       string
	MealTitle     string
	CustomerEmail string
	TotalPrice    string
}

// Confirmation is the result of applying (or replaying) a payment.
type Confirmation struct {
	OrderID       string `json:"orderId,omitempty"`
	TransactionID string `json:"transactionId"`
	TrackingID    string `json:"trackingId"`
	// AlreadyPaid reports that the transaction had been recorded before
	// and no state was written on this call.
	AlreadyPaid bool `json:"alreadyPaid"`
}

// Engine drives an order from created(unpaid) to paid. Paid is terminal:
// confirming the same session again returns the recorded identifiers
// without writing.
type Engine struct {
	store        storage.Store
	gateway      Gateway
	clientOrigin string
	now          func() time.Time
}

func New(store storage.Store, gateway Gateway, clientOrigin string) *Engine {
	return &Engine{
		store:        store,
		gateway:      gateway,
		clientOrigin: clientOrigin,
		now:          time.Now,
	}
}

// CreateCheckoutSession builds a single-item USD session for the order
// and returns the processor's redirect URL. The amount is the integer
// parse of TotalPrice times 100: fractions are truncated, never rounded
// up, matching how the price has always been converted.
func (e *Engine) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	major, err := parseMajorUnits(in.TotalPrice)
	if err != nil {
		return "", fmt.Errorf("parse total price %q: %w", in.TotalPrice, err)
	}

	sess, err := e.gateway.CreateCheckoutSession(ctx, SessionParams{
		AmountCents:   major * 100,
		Currency:      checkoutCurrency,
		ProductName:   in.MealTitle,
		CustomerEmail: in.CustomerEmail,
		Metadata:      map[string]string{"orderId": in.OrderID},
		SuccessURL:    e.clientOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     e.clientOrigin + "/payment-cancelled",
	})
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// ConfirmPayment retrieves the session, takes its payment-intent id as
// the canonical transaction id, and marks the order from the session
// metadata paid with a freshly generated tracking id.
//
// Idempotent: if any order already carries the transaction id, its
// recorded trackingId/transactionId are returned and nothing is written.
// Two concurrent confirms for a not-yet-recorded transaction can both
// pass the check and both write; the update is a single per-document
// $set, so last write wins and both callers observe a paid order.
func (e *Engine) ConfirmPayment(ctx context.Context, sessionID string) (*Confirmation, error) {
	sess, err := e.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PaymentIntentID == "" {
		return nil, fmt.Errorf("session %s carries no payment intent", sessionID)
	}

	existing, err := e.store.GetOrderByTransactionID(ctx, sess.PaymentIntentID)
	if err == nil {
		return &Confirmation{
			OrderID:       existing.ID.Hex(),
			TransactionID: existing.TransactionID,
			TrackingID:    existing.TrackingID,
			AlreadyPaid:   true,
		}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("look up transaction: %w", err)
	}

	orderHex := sess.Metadata["orderId"]
	orderID, err := bson.ObjectIDFromHex(orderHex)
	if err != nil {
		return nil, fmt.Errorf("session metadata orderId %q: %w", orderHex, err)
	}

	trackingID := newTrackingID(e.now())
	if err := e.store.MarkOrderPaid(ctx, orderID, sess.PaymentIntentID, trackingID); err != nil {
		return nil, fmt.Errorf("mark order %s paid: %w", orderHex, err)
	}

	return &Confirmation{
		OrderID:       orderHex,
		TransactionID: sess.PaymentIntentID,
		TrackingID:    trackingID,
	}, nil
}

// parseMajorUnits reads the leading integer portion of a price string,
// truncating any fraction ("25", "25.90" and "25 USD" all parse to 25).
func parseMajorUnits(s string) (int64, error) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, errors.New("no leading integer")
	}
	var n int64
	for _, c := range s[digits:i] {
		n = n*10 + int64(c-'0')
	}
	if s[start] == '-' {
		n = -n
	}
	return n, nil
}

// newTrackingID builds MEAL-YYYYMMDD-XXXXXX with an uppercase
// alphanumeric suffix.
func newTrackingID(t time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = trackingAlphabet[rand.IntN(len(trackingAlphabet))]
	}
	return "MEAL-" + t.Format("20060102") + "-" + string(suffix)
}
