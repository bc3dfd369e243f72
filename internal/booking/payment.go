package booking

import "strings"

const (
	MethodCard   = "Card"
	MethodUPI    = "UPI"
	MethodWallet = "Wallet"
)

// PaymentInfo carries the simulated payment form. Fields are checked for
// presence only; nothing is charged.
type PaymentInfo struct {
	Method         string `json:"method"`
	CardNumber     string `json:"cardNumber,omitempty"`
	CardName       string `json:"cardName,omitempty"`
	CardExpiry     string `json:"cardExpiry,omitempty"`
	CardCVV        string `json:"cardCvv,omitempty"`
	UPIID          string `json:"upiId,omitempty"`
	UPIOTP         string `json:"upiOtp,omitempty"`
	WalletProvider string `json:"walletProvider,omitempty"`
}

func (p PaymentInfo) Validate() error {
	missing := func(field string) error {
		return &ValidationError{Step: StepPayment, Field: field, Reason: "is required"}
	}
	switch p.Method {
	case MethodCard:
		switch {
		case blank(p.CardNumber):
			return missing("cardNumber")
		case blank(p.CardName):
			return missing("cardName")
		case blank(p.CardExpiry):
			return missing("cardExpiry")
		case blank(p.CardCVV):
			return missing("cardCvv")
		}
	case MethodUPI:
		switch {
		case blank(p.UPIID):
			return missing("upiId")
		case blank(p.UPIOTP):
			return missing("upiOtp")
		}
	case MethodWallet:
		if blank(p.WalletProvider) {
			return missing("walletProvider")
		}
	case "":
		return missing("method")
	default:
		return &ValidationError{Step: StepPayment, Field: "method", Reason: "must be Card, UPI or Wallet"}
	}
	return nil
}

// Redacted masks secrets for display.
func (p PaymentInfo) Redacted() PaymentInfo {
	out := p
	if n := len(p.CardNumber); n > 4 {
		out.CardNumber = strings.Repeat("*", n-4) + p.CardNumber[n-4:]
	}
	if p.CardCVV != "" {
		out.CardCVV = "***"
	}
	if p.UPIOTP != "" {
		out.UPIOTP = "****"
	}
	return out
}

// Scrubbed keeps only what is needed after the booking is placed.
func (p PaymentInfo) Scrubbed() PaymentInfo {
	return PaymentInfo{Method: p.Method, UPIID: p.UPIID, WalletProvider: p.WalletProvider}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
