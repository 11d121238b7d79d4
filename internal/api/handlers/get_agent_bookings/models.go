package get_agent_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-RealtyService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(agentID, statusStr, includeCancelledStr string) (*models.GetAgentBookingsRequest, error) {
	req := &models.GetAgentBookingsRequest{
		AgentID:          agentID,
		IncludeCancelled: false, // По умолчанию без отмененных
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
