package payment

import "context"

// Gateway charges a payment source on behalf of a connected host
// account. Charge is a single all-or-nothing call: any non-nil error
// means no funds moved and the attempt is terminal for the caller.
type Gateway interface {
	Charge(ctx context.Context, amount int64, source, destinationAccount string) error
}

// WalletConnector exchanges a payout-provider OAuth code for a connected
// account ID that can receive booking income.
type WalletConnector interface {
	Connect(ctx context.Context, code string) (accountID string, err error)
}
