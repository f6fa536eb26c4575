package request

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var (
	errNonPositivePrice = errors.New("price must be greater than zero")
	digitsOnly          = regexp.MustCompile(`^\d+$`)
)

type LotteryRequest struct {
	LotteryNumber string          `json:"lottery_number"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StartNumber   int             `json:"start_number"`
	EndNumber     int             `json:"end_number"`
	Status        string          `json:"status"`
}

func (req *LotteryRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.LotteryNumber, validation.Required, validation.Length(3, 3), validation.Match(digitsOnly)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StartNumber, validation.Min(0)),
		validation.Field(&req.EndNumber, validation.Min(0)),
		validation.Field(&req.Status, validation.Required, validation.In("active", "inactive")),
	)
	if err != nil {
		return err
	}

	if !req.Price.IsPositive() {
		return errNonPositivePrice
	}

	return nil
}
