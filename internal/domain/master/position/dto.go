package position

import (
	"strings"

	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

type PositionRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Level       string `json:"level" validate:"required,oneof=junior pleno senior coordenador gerente"`
	Active      *bool  `json:"active"`
}

func (r *PositionRequest) Validate() error {
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
	return validator.Struct(r)
}

func (r *PositionRequest) Position() Position {
	p := Position{
		ID:          r.ID,
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Level:       Level(r.Level),
		Active:      true,
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	return p
}

type PositionFilter struct {
	Level  *string
	Active *bool
	Search *string
}

type PositionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       Level  `json:"level"`
	Active      bool   `json:"active"`
}

func ToResponse(p Position) PositionResponse {
	return PositionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Level:       p.Level,
		Active:      p.Active,
	}
}
