package gateway

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uida/property-portal/internal/config"
)

// Client handles integration with the authority's bank payment gateway. The
// gateway speaks XML over HTTP; one charge call settles one submission batch.
type Client struct {
	url      string
	merchant string
	secret   string
	client   *http.Client
	log      *logrus.Logger
}

// NewClient initializes a new gateway client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:      cfg.GatewayURL,
		merchant: cfg.GatewayMerchant,
		secret:   cfg.GatewaySecret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// ChargeRequest describes one payment to settle.
type ChargeRequest struct {
	OrderID       string
	PropertyID    string
	CustomerName  string
	CustomerPhone string
	Amount        decimal.Decimal
	Narration     string
}

// Receipt is the gateway's acknowledgement of a settled charge.
type Receipt struct {
	OrderID       string
	TransactionID string
	Status        string
	Message       string
}

const statusSuccess = "SUCCESS"

// buildChargeRequest creates the XML payment request
func (c *Client) buildChargeRequest(req ChargeRequest) ([]byte, error) {
	amount := req.Amount.StringFixed(2)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	payment := doc.CreateElement("PaymentRequest")
	payment.CreateElement("MerchantId").SetText(c.merchant)
	payment.CreateElement("OrderId").SetText(req.OrderID)
	payment.CreateElement("PropertyId").SetText(req.PropertyID)
	payment.CreateElement("CustomerName").SetText(req.CustomerName)
	payment.CreateElement("CustomerMobile").SetText(req.CustomerPhone)
	payment.CreateElement("Amount").SetText(amount)
	payment.CreateElement("Narration").SetText(req.Narration)
	payment.CreateElement("Checksum").SetText(c.checksum(req.OrderID, amount))

	return doc.WriteToBytes()
}

// checksum signs the order so the gateway can verify the caller
func (c *Client) checksum(orderID, amount string) string {
	h := hmac.New(sha256.New, []byte(c.secret))
	h.Write([]byte(c.merchant + "|" + orderID + "|" + amount))
	return hex.EncodeToString(h.Sum(nil))
}

// sendRequest posts the XML request to the gateway
func (c *Client) sendRequest(body []byte) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("gateway XML response: %s", string(raw))

	return raw, nil
}

// parseResponse parses the XML acknowledgement
func (c *Client) parseResponse(raw []byte) (*Receipt, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	root := doc.FindElement("//PaymentResponse")
	if root == nil {
		return nil, fmt.Errorf("no payment response found in XML")
	}

	receipt := &Receipt{}
	for field, dst := range map[string]*string{
		"OrderId":       &receipt.OrderID,
		"TransactionId": &receipt.TransactionID,
		"Status":        &receipt.Status,
		"Message":       &receipt.Message,
	} {
		if el := root.FindElement("./" + field); el != nil {
			*dst = el.Text()
		}
	}
	if receipt.Status == "" {
		return nil, fmt.Errorf("status element not found in XML")
	}

	return receipt, nil
}

// Charge settles one payment with the gateway. Success is defined solely by
// the gateway reporting SUCCESS; there is no retry and no partial success.
func (c *Client) Charge(req ChargeRequest) (*Receipt, error) {
	body, err := c.buildChargeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %v", err)
	}

	raw, err := c.sendRequest(body)
	if err != nil {
		return nil, err
	}

	receipt, err := c.parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if receipt.Status != statusSuccess {
		return nil, fmt.Errorf("gateway declined order %s: %s %s", req.OrderID, receipt.Status, receipt.Message)
	}

	c.log.Infof("Gateway settled order %s: txn %s", receipt.OrderID, receipt.TransactionID)
	return receipt, nil
}
