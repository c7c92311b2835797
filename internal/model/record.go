package model

// CallDirection classifies a call record row
type CallDirection string

const (
	DirectionIncoming CallDirection = "incoming"
	DirectionOutgoing CallDirection = "outgoing"
	DirectionUnknown  CallDirection = "unknown"
)

// CallRecord is one parsed row of call data, created by the extractor
// from text strictly inside the search space. Only the optional carrier
// annotation touches a record after creation; every other field is fixed
// at parse time.
type CallRecord struct {
	Date         string        `json:"date"`              // As printed on the bill, e.g. "11/04"
	Time         string        `json:"time"`              // e.g. "8:14PM"
	TargetNumber string        `json:"target_number"`     // Subscriber the record belongs to
	Number       string        `json:"number"`            // Counterparty number
	Minutes      int           `json:"minutes"`           // Billed duration
	Direction    CallDirection `json:"direction"`
	Page         int           `json:"page"`              // Source page, kept for diagnostics
	Carrier      string        `json:"carrier,omitempty"` // Filled by optional carrier lookup
}
