package request

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errScanPayloadShape = errors.New("provide either barcode_data or all of lottery_number, ticket_serial and ticket_number")

// ScanRequest accepts the two payload shapes of POST /scan: a raw barcode
// string, or the three pre-split fields. TicketNumber is a json.Number so
// clients may send it as a number or a string.
type ScanRequest struct {
	StoreID       uint        `json:"store_id"`
	BarcodeData   string      `json:"barcode_data"`
	LotteryNumber string      `json:"lottery_number"`
	TicketSerial  string      `json:"ticket_serial"`
	TicketNumber  json.Number `json:"ticket_number"`
	Direction     string      `json:"direction"`
}

func (req *ScanRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.StoreID, validation.Required),
		validation.Field(&req.Direction, validation.In("asc", "desc")),
	)
	if err != nil {
		return err
	}

	hasRaw := req.BarcodeData != ""
	hasFields := req.LotteryNumber != "" && req.TicketSerial != "" && req.TicketNumber.String() != ""
	if hasRaw == hasFields {
		return errScanPayloadShape
	}

	return nil
}
