// Package converter maps between domain aggregates and their storage shapes.
package converter

import (
	"encoding/json"
	"time"

	"stayhub/internal/domain/booking"
)

// guestRecord keeps the manifest JSON camelCased, matching what clients send.
type guestRecord struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
}

type refundRecord struct {
	RefundID    string    `json:"refundId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processedAt"`
}

func GuestsToJSON(guests []booking.Guest) ([]byte, error) {
	records := make([]guestRecord, 0, len(guests))
	for _, g := range guests {
		records = append(records, guestRecord{FullName: g.FullName, Age: g.Age})
	}
	return json.Marshal(records)
}

func GuestsFromJSON(raw []byte) ([]booking.Guest, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []guestRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	guests := make([]booking.Guest, 0, len(records))
	for _, r := range records {
		guests = append(guests, booking.Guest{FullName: r.FullName, Age: r.Age})
	}
	return guests, nil
}

func RefundsToJSON(refunds []booking.Refund) ([]byte, error) {
	records := make([]refundRecord, 0, len(refunds))
	for _, r := range refunds {
		records = append(records, refundRecord(r))
	}
	return json.Marshal(records)
}

func RefundsFromJSON(raw []byte) ([]booking.Refund, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []refundRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	refunds := make([]booking.Refund, 0, len(records))
	for _, r := range records {
		refunds = append(refunds, booking.Refund(r))
	}
	return refunds, nil
}
