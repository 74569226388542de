package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uida/property-portal/internal/config"
)

func newTestClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{
		GatewayURL:      url,
		GatewayMerchant: "UIDA-TEST",
		GatewaySecret:   "test-secret",
	}, log)
}

func chargeRequest() ChargeRequest {
	return ChargeRequest{
		OrderID:       "ORD-123",
		PropertyID:    "UIDA-MART-0002",
		CustomerName:  "R Arabhaya",
		CustomerPhone: "9452624111",
		Amount:        decimal.RequireFromString("1304581.49"),
		Narration:     "EMI installment 4",
	}
}

func TestChargeSuccess(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`<?xml version="1.0"?>
			<PaymentResponse>
				<OrderId>ORD-123</OrderId>
				<TransactionId>TXN-9981</TransactionId>
				<Status>SUCCESS</Status>
				<Message>Payment settled</Message>
			</PaymentResponse>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	receipt, err := client.Charge(chargeRequest())
	require.NoError(t, err)
	assert.Equal(t, "ORD-123", receipt.OrderID)
	assert.Equal(t, "TXN-9981", receipt.TransactionID)

	// The request carries the two-decimal amount and a checksum.
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(gotBody))
	assert.Equal(t, "1304581.49", doc.FindElement("//PaymentRequest/Amount").Text())
	assert.Equal(t, "UIDA-TEST", doc.FindElement("//PaymentRequest/MerchantId").Text())
	assert.NotEmpty(t, doc.FindElement("//PaymentRequest/Checksum").Text())
}

func TestChargeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<PaymentResponse>
			<OrderId>ORD-123</OrderId>
			<Status>FAILURE</Status>
			<Message>Insufficient funds</Message>
		</PaymentResponse>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(chargeRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAILURE")
}

func TestChargeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(chargeRequest())
	assert.Error(t, err)
}

func TestChargeMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<PaymentResponse><OrderId>ORD-123</OrderId></PaymentResponse>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(chargeRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status element not found")
}
