// ABOUTME: VNPay return-URL parsing for the wallet deposit flow
// ABOUTME: Determines payment outcome from query parameters without a server round-trip

package vnpay

import (
	"fmt"
	"net/url"
	"strconv"
)

// VNPay reports the outcome of a hosted payment on the return URL's query
// string. Amounts come back multiplied by 100.
const successCode = "00"

// Result is the parsed outcome of a deposit.
type Result struct {
	Success      bool
	ResponseCode string
	Amount       int64 // VND, already divided by 100
	TxnRef       string
	OrderInfo    string
	BankCode     string
	PayDate      string
}

// ParseReturn extracts the payment result from a VNPay return URL or a bare
// query string. The outcome is decided locally; the backend reconciles the
// transaction on its own IPN channel.
func ParseReturn(raw string) (*Result, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid return URL: %w", err)
	}

	q := u.Query()
	if len(q) == 0 {
		// Tolerate a bare query string without a path.
		if q, err = url.ParseQuery(raw); err != nil {
			return nil, fmt.Errorf("invalid return URL: %w", err)
		}
	}

	code := q.Get("vnp_ResponseCode")
	if code == "" {
		return nil, fmt.Errorf("missing vnp_ResponseCode parameter")
	}

	result := &Result{
		Success:      code == successCode,
		ResponseCode: code,
		TxnRef:       q.Get("vnp_TxnRef"),
		OrderInfo:    q.Get("vnp_OrderInfo"),
		BankCode:     q.Get("vnp_BankCode"),
		PayDate:      q.Get("vnp_PayDate"),
	}

	if rawAmount := q.Get("vnp_Amount"); rawAmount != "" {
		amount, err := strconv.ParseInt(rawAmount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vnp_Amount %q: %w", rawAmount, err)
		}
		result.Amount = amount / 100
	}

	return result, nil
}
