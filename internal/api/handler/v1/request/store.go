package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type StoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (req *StoreRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
}

type NotificationSettingRequest struct {
	LowStockThreshold int    `json:"low_stock_threshold"`
	NotifyOnFinished  bool   `json:"notify_on_finished"`
	Email             string `json:"email"`
}

func (req *NotificationSettingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LowStockThreshold, validation.Min(0), validation.Max(1000)),
		validation.Field(&req.Email, is.Email),
	)
}
