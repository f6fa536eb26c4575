package barcode_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottotrack/backoffice/internal/pkg/barcode"
)

func TestParseRaw_Dashed(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    barcode.Ticket
		wantErr error
	}{
		{
			name: "plain dashed code",
			raw:  "045-000123-015",
			want: barcode.Ticket{
				LotteryNumber: "045",
				TicketSerial:  "000123",
				TicketNumber:  15,
				Raw:           "045-000123-015",
			},
		},
		{
			name: "serial keeps leading zeros",
			raw:  "001-000001-000",
			want: barcode.Ticket{
				LotteryNumber: "001",
				TicketSerial:  "000001",
				TicketNumber:  0,
				Raw:           "001-000001-000",
			},
		},
		{
			name:    "too many segments",
			raw:     "045-000123-015-9",
			wantErr: barcode.ErrInvalidFormat,
		},
		{
			name:    "empty segment",
			raw:     "045--015",
			wantErr: barcode.ErrInvalidFormat,
		},
		{
			name:    "non numeric ticket number",
			raw:     "045-000123-abc",
			wantErr: barcode.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := barcode.ParseRaw(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRaw_FixedWidth(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    barcode.Ticket
		wantErr error
	}{
		{
			name: "exactly twelve digits",
			raw:  "045000123015",
			want: barcode.Ticket{
				LotteryNumber: "045",
				TicketSerial:  "000123",
				TicketNumber:  15,
				Raw:           "045000123015",
			},
		},
		{
			name: "extra digits beyond twelve are ignored",
			raw:  "04500012301599",
			want: barcode.Ticket{
				LotteryNumber: "045",
				TicketSerial:  "000123",
				TicketNumber:  15,
				Raw:           "04500012301599",
			},
		},
		{
			name: "embedded whitespace is stripped",
			raw:  "045 000123 015",
			want: barcode.Ticket{
				LotteryNumber: "045",
				TicketSerial:  "000123",
				TicketNumber:  15,
				Raw:           "045 000123 015",
			},
		},
		{
			name:    "too short",
			raw:     "04500012",
			wantErr: barcode.ErrInvalidFormat,
		},
		{
			name:    "letters in code",
			raw:     "04500012301a",
			wantErr: barcode.ErrInvalidFormat,
		},
		{
			name:    "empty string",
			raw:     " ",
			wantErr: barcode.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := barcode.ParseRaw(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("raw payload", func(t *testing.T) {
		got, err := barcode.Decode(barcode.Payload{Raw: "045-000123-015"})

		require.NoError(t, err)
		assert.Equal(t, "045", got.LotteryNumber)
		assert.Equal(t, 15, got.TicketNumber)
	})

	t.Run("structured payload", func(t *testing.T) {
		got, err := barcode.Decode(barcode.Payload{
			LotteryNumber: "045",
			TicketSerial:  "000123",
			TicketNumber:  "015",
		})

		require.NoError(t, err)
		assert.Equal(t, barcode.Ticket{
			LotteryNumber: "045",
			TicketSerial:  "000123",
			TicketNumber:  15,
			Raw:           "045-000123-015",
		}, got)
	})

	t.Run("structured payload with non numeric ticket number", func(t *testing.T) {
		_, err := barcode.Decode(barcode.Payload{
			LotteryNumber: "045",
			TicketSerial:  "000123",
			TicketNumber:  "abc",
		})

		assert.ErrorIs(t, err, barcode.ErrInvalidNumber)
	})

	t.Run("neither shape", func(t *testing.T) {
		_, err := barcode.Decode(barcode.Payload{})

		assert.ErrorIs(t, err, barcode.ErrMissingFields)
	})

	t.Run("both shapes at once", func(t *testing.T) {
		_, err := barcode.Decode(barcode.Payload{
			Raw:           "045-000123-015",
			LotteryNumber: "045",
			TicketSerial:  "000123",
			TicketNumber:  "015",
		})

		assert.ErrorIs(t, err, barcode.ErrMissingFields)
	})

	t.Run("partial structured fields", func(t *testing.T) {
		_, err := barcode.Decode(barcode.Payload{
			LotteryNumber: "045",
			TicketNumber:  "015",
		})

		assert.ErrorIs(t, err, barcode.ErrMissingFields)
	})
}

func TestParseRaw_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200

	properties := gopter.NewProperties(params)

	properties.Property("fixed-width codes decompose into their printed fields", prop.ForAll(
		func(lottery, serial, number int) bool {
			raw := fmt.Sprintf("%03d%06d%03d", lottery, serial, number)

			ticket, err := barcode.ParseRaw(raw)
			if err != nil {
				return false
			}

			return ticket.LotteryNumber == fmt.Sprintf("%03d", lottery) &&
				ticket.TicketSerial == fmt.Sprintf("%06d", serial) &&
				ticket.TicketNumber == number
		},
		gen.IntRange(0, 999),
		gen.IntRange(0, 999999),
		gen.IntRange(0, 999),
	))

	properties.Property("dashed and fixed-width renderings of the same ticket agree", prop.ForAll(
		func(lottery, serial, number int) bool {
			dashed, err := barcode.ParseRaw(fmt.Sprintf("%03d-%06d-%03d", lottery, serial, number))
			if err != nil {
				return false
			}

			fixed, err := barcode.ParseRaw(fmt.Sprintf("%03d%06d%03d", lottery, serial, number))
			if err != nil {
				return false
			}

			return dashed.LotteryNumber == fixed.LotteryNumber &&
				dashed.TicketSerial == fixed.TicketSerial &&
				dashed.TicketNumber == fixed.TicketNumber
		},
		gen.IntRange(0, 999),
		gen.IntRange(0, 999999),
		gen.IntRange(0, 999),
	))

	properties.TestingRun(t)
}
