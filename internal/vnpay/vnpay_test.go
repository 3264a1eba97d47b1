// ABOUTME: Tests for VNPay return-URL parsing
// ABOUTME: Success codes, amount scaling, and malformed input

package vnpay

import "testing"

func TestParseReturn_Success(t *testing.T) {
	raw := "https://evmarket.vn/payment/callback?vnp_Amount=50000000&vnp_BankCode=NCB&vnp_OrderInfo=Nap+tien+vi&vnp_ResponseCode=00&vnp_TxnRef=TX123&vnp_PayDate=20260830153000"

	result, err := ParseReturn(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("response code 00 must parse as success")
	}
	if result.Amount != 500000 {
		t.Errorf("expected amount 500000 (vnp_Amount/100), got %d", result.Amount)
	}
	if result.TxnRef != "TX123" || result.BankCode != "NCB" {
		t.Errorf("unexpected fields: %+v", result)
	}
}

func TestParseReturn_UserCancelled(t *testing.T) {
	result, err := ParseReturn("https://evmarket.vn/payment/callback?vnp_ResponseCode=24&vnp_Amount=10000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Error("non-00 response code must not be success")
	}
	if result.ResponseCode != "24" {
		t.Errorf("expected code preserved, got %q", result.ResponseCode)
	}
	if result.Amount != 100 {
		t.Errorf("amount still parsed on failure, got %d", result.Amount)
	}
}

func TestParseReturn_BareQueryString(t *testing.T) {
	result, err := ParseReturn("vnp_ResponseCode=00&vnp_Amount=200000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.Amount != 2000 {
		t.Errorf("bare query string must parse, got %+v", result)
	}
}

func TestParseReturn_MissingResponseCode(t *testing.T) {
	if _, err := ParseReturn("https://evmarket.vn/payment/callback?vnp_Amount=100"); err == nil {
		t.Error("expected error without vnp_ResponseCode")
	}
}

func TestParseReturn_GarbledAmount(t *testing.T) {
	if _, err := ParseReturn("vnp_ResponseCode=00&vnp_Amount=abc"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}
