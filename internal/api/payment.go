// ABOUTME: Payment resource client for VNPay deposits
// ABOUTME: Creates hosted payment sessions; the browser completes the flow

package api

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// PaymentClient wraps the payment endpoints. A deposit hands the user off to
// a hosted VNPay page; the result comes back on a return URL parsed by the
// vnpay package.
type PaymentClient struct {
	t *Transport
}

// CreateDeposit opens a VNPay payment session for the given amount (VND)
// and returns the hosted payment URL to open in a browser.
func (c *PaymentClient) CreateDeposit(ctx context.Context, amount int64) (string, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/payment/vnpay",
		body:        map[string]int64{"amount": amount},
		requireAuth: true,
		fallback:    msgPaymentFailed,
	})
	if !env.Success {
		return "", env
	}
	if env.Data.Type == gjson.String {
		return env.Data.String(), env
	}
	for _, key := range []string{"paymentUrl", "PaymentUrl", "url"} {
		if v := env.Data.Get(key); v.Exists() {
			return v.String(), env
		}
	}
	return "", failureEnvelope(KindDecode, env.Status, msgPaymentFailed, nil)
}
