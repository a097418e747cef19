package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required,max=80"`
	CreatedAt time.Time `json:"created_at"`
}

type MenuItem struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name" validate:"required,max=120"`
	Description        string    `json:"description" validate:"max=1000"`
	Price              Money     `json:"price"`
	CategoryID         uuid.UUID `json:"category_id"`
	ImageURL           string    `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	IsAvailable        bool      `json:"is_available"`
	PreparationMinutes *int      `json:"preparation_minutes,omitempty" validate:"omitempty,min=1,max=120"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type MenuItemPatch struct {
	Name               *string    `json:"name" validate:"omitempty,min=1,max=120"`
	Description        *string    `json:"description" validate:"omitempty,max=1000"`
	Price              *Money     `json:"price"`
	CategoryID         *uuid.UUID `json:"category_id"`
	IsAvailable        *bool      `json:"is_available"`
	PreparationMinutes *int       `json:"preparation_minutes" validate:"omitempty,min=1,max=120"`
}

func (p MenuItemPatch) Apply(m *MenuItem) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.CategoryID != nil {
		m.CategoryID = *p.CategoryID
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
	if p.PreparationMinutes != nil {
		v := *p.PreparationMinutes
		m.PreparationMinutes = &v
	}
}

type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
