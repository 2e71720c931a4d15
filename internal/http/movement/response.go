package movement

import (
	"time"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/movement"
)

type movementResponse struct {
	ID         uuid.UUID     `json:"id"`
	ProductID  uuid.UUID     `json:"product_id"`
	Kind       movement.Kind `json:"kind"`
	Quantity   int           `json:"quantity"`
	Party      string        `json:"party,omitempty"`
	Reference  string        `json:"reference,omitempty"`
	OccurredOn time.Time     `json:"occurred_on"`
	CreatedAt  time.Time     `json:"created_at"`
}

func toResponse(m *movement.Movement) movementResponse {
	return movementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		Party:      m.Party,
		Reference:  m.Reference,
		OccurredOn: m.OccurredOn,
		CreatedAt:  m.CreatedAt,
	}
}

func toResponseList(movements []*movement.Movement) []movementResponse {
	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = toResponse(m)
	}

	return resp
}
