// Package barcode decodes scanned ticket payloads. A payload is either a
// raw scanner string (dash-delimited or fixed-width numeric) or the three
// fields already split out by the client. Decoding is pure.
package barcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrInvalidFormat = errors.New("barcode has an invalid format")
	ErrInvalidNumber = errors.New("ticket number is not numeric")
	ErrMissingFields = errors.New("either barcode_data or all of lottery_number, ticket_serial and ticket_number must be provided")
)

const (
	lotteryNumberWidth = 3
	ticketSerialWidth  = 6
	ticketNumberWidth  = 3
	minFixedWidthLen   = lotteryNumberWidth + ticketSerialWidth + ticketNumberWidth
)

// Ticket is the decoded form of a scan payload.
type Ticket struct {
	LotteryNumber string
	TicketSerial  string
	TicketNumber  int
	Raw           string
}

// Payload carries the two accepted input shapes. Exactly one must be set:
// Raw alone, or all three structured fields.
type Payload struct {
	Raw           string
	LotteryNumber string
	TicketSerial  string
	TicketNumber  string
}

// Decode resolves a payload into a Ticket.
func Decode(p Payload) (Ticket, error) {
	hasRaw := p.Raw != ""
	hasFields := p.LotteryNumber != "" && p.TicketSerial != "" && p.TicketNumber != ""

	switch {
	case hasRaw && !hasFields:
		return ParseRaw(p.Raw)
	case hasFields && !hasRaw:
		num, err := strconv.Atoi(strings.TrimSpace(p.TicketNumber))
		if err != nil {
			return Ticket{}, fmt.Errorf("%w: %q", ErrInvalidNumber, p.TicketNumber)
		}

		return Ticket{
			LotteryNumber: p.LotteryNumber,
			TicketSerial:  p.TicketSerial,
			TicketNumber:  num,
			Raw:           fmt.Sprintf("%s-%s-%s", p.LotteryNumber, p.TicketSerial, p.TicketNumber),
		}, nil
	default:
		return Ticket{}, ErrMissingFields
	}
}

// ParseRaw decodes a raw scanner string. Dash-delimited strings must split
// into exactly three non-empty segments; anything else is treated as a
// fixed-width numeric code of at least 12 digits.
func ParseRaw(raw string) (Ticket, error) {
	if strings.Contains(raw, "-") {
		return parseDashed(raw)
	}

	return parseFixedWidth(raw)
}

func parseDashed(raw string) (Ticket, error) {
	segments := strings.Split(raw, "-")
	if len(segments) != 3 {
		return Ticket{}, fmt.Errorf("%w: expected 3 dash-separated segments, got %d", ErrInvalidFormat, len(segments))
	}

	for _, seg := range segments {
		if seg == "" {
			return Ticket{}, fmt.Errorf("%w: empty segment", ErrInvalidFormat)
		}
	}

	num, err := strconv.Atoi(segments[2])
	if err != nil {
		return Ticket{}, fmt.Errorf("%w: %q", ErrInvalidFormat, segments[2])
	}

	return Ticket{
		LotteryNumber: segments[0],
		TicketSerial:  segments[1],
		TicketNumber:  num,
		Raw:           raw,
	}, nil
}

func parseFixedWidth(raw string) (Ticket, error) {
	code := stripWhitespace(raw)

	if len(code) < minFixedWidthLen {
		return Ticket{}, fmt.Errorf("%w: need at least %d digits, got %d", ErrInvalidFormat, minFixedWidthLen, len(code))
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return Ticket{}, fmt.Errorf("%w: non-digit character %q", ErrInvalidFormat, r)
		}
	}

	num, err := strconv.Atoi(code[lotteryNumberWidth+ticketSerialWidth : minFixedWidthLen])
	if err != nil {
		return Ticket{}, fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}

	return Ticket{
		LotteryNumber: code[:lotteryNumberWidth],
		TicketSerial:  code[lotteryNumberWidth : lotteryNumberWidth+ticketSerialWidth],
		TicketNumber:  num,
		Raw:           raw,
	}, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
