package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RealtyService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	PropertyID string          `json:"propertyId"`
	Date       string          `json:"date"`
	Bookable   bool            `json:"bookable"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	TimeSlot  string `json:"timeSlot"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			TimeSlot:  string(slot.TimeSlot),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		PropertyID: resp.PropertyID,
		Date:       resp.Date.Format(domain.DateFormat),
		Bookable:   resp.Bookable,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(propertyID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		PropertyID: propertyID,
		Date:       date,
	}, nil
}
