package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/oauth"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway and WalletConnector against the
// Stripe API. The global stripe.Key must be set before use.
type StripeGateway struct {
	Logger *zap.Logger
}

// platformFeeRate is the share of each charge retained by the platform.
const platformFeeRate = 0.05

// Charge creates a direct charge on the host's connected account,
// retaining the platform fee. Amounts are USD minor units.
func (g *StripeGateway) Charge(ctx context.Context, amount int64, source, destinationAccount string) error {
	params := &stripe.ChargeParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:               stripe.Int64(amount),
		Currency:             stripe.String(string(stripe.CurrencyUSD)),
		ApplicationFeeAmount: stripe.Int64(int64(math.Round(float64(amount) * platformFeeRate))),
	}
	if err := params.SetSource(source); err != nil {
		return fmt.Errorf("invalid payment source: %w", err)
	}
	params.SetStripeAccount(destinationAccount)

	ch, err := charge.New(params)
	if err != nil {
		return fmt.Errorf("stripe charge failed: %w", err)
	}
	if ch.Status != stripe.ChargeStatusSucceeded {
		return fmt.Errorf("stripe charge not successful: status %s", ch.Status)
	}

	g.Logger.Info("stripe charge succeeded",
		zap.String("charge", ch.ID),
		zap.Int64("amount", amount),
		zap.String("destination", destinationAccount),
	)
	return nil
}

// Connect exchanges the OAuth authorization code for the host's
// connected account ID.
func (g *StripeGateway) Connect(ctx context.Context, code string) (string, error) {
	params := &stripe.OAuthTokenParams{
		Params: stripe.Params{
			Context: ctx,
		},
		GrantType: stripe.String("authorization_code"),
		Code:      stripe.String(code),
	}

	token, err := oauth.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe connect failed: %w", err)
	}
	if token.StripeUserID == "" {
		return "", fmt.Errorf("stripe connect returned no account id")
	}
	return token.StripeUserID, nil
}
