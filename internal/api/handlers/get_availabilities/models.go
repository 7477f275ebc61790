package get_availabilities

import (
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	getAvailabilities "github.com/beautylounge/salon-booking-service/internal/usecase/get_availabilities"
)

// AvailabilitiesResponse is the HTTP response model.
type AvailabilitiesResponse struct {
	Date           string   `json:"date"`
	ServiceID      int64    `json:"serviceId"`
	AllTimes       []string `json:"allTimes"`
	AvailableTimes []string `json:"availableTimes"`
}

// FromUseCaseResponse converts the usecase response into the HTTP response.
func FromUseCaseResponse(resp *getAvailabilities.Response) *AvailabilitiesResponse {
	all := make([]string, len(resp.AllTimes))
	for i, t := range resp.AllTimes {
		all[i] = t.String()
	}
	available := make([]string, len(resp.AvailableTimes))
	for i, t := range resp.AvailableTimes {
		available[i] = t.String()
	}

	return &AvailabilitiesResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		ServiceID:      resp.ServiceID,
		AllTimes:       all,
		AvailableTimes: available,
	}
}

// ToUseCaseRequest builds the usecase request from query parameters.
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailabilities.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailabilities.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
