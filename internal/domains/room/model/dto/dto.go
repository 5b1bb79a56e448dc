package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	HotelID               string `json:"hotel_id"                 validate:"required,max=64"`
	Name                  string `json:"name"                     validate:"required,max=100"`
	Type                  string `json:"type"                     validate:"required,max=50"`
	Price                 int64  `json:"price"                    validate:"required,gt=0"`
	DiscountPercent       int    `json:"discount_percent"         validate:"min=0,max=100"`
	MaxPeople             int    `json:"max_people"               validate:"required,min=1"`
	FreeCancelBeforeHours int    `json:"free_cancel_before_hours" validate:"min=0"`
	RefundPercent         int    `json:"refund_percent"           validate:"min=0,max=100"`
	AvailableCount        int    `json:"available_count"          validate:"min=0"`
	Active                *bool  `json:"active"                   validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Room{
		ID:                    uuid.NewString(),
		HotelID:               c.HotelID,
		Name:                  c.Name,
		Type:                  c.Type,
		Price:                 c.Price,
		DiscountPercent:       c.DiscountPercent,
		MaxPeople:             c.MaxPeople,
		FreeCancelBeforeHours: c.FreeCancelBeforeHours,
		RefundPercent:         c.RefundPercent,
		AvailableCount:        c.AvailableCount,
		Active:                active,
		Metadata:              gModel.NewMetadata(user, now),
	}
}

// UpdateRoomRequest changes the room for future bookings only; existing bookings keep their snapshot.
type UpdateRoomRequest struct {
	Name                  string `db:"name"                     json:"name"                     validate:"omitempty,max=100"`
	Type                  string `db:"type"                     json:"type"                     validate:"omitempty,max=50"`
	Price                 *int64 `db:"price"                    json:"price"                    validate:"omitempty,gt=0"`
	DiscountPercent       *int   `db:"discount_percent"         json:"discount_percent"         validate:"omitempty,min=0,max=100"`
	MaxPeople             *int   `db:"max_people"               json:"max_people"               validate:"omitempty,min=1"`
	FreeCancelBeforeHours *int   `db:"free_cancel_before_hours" json:"free_cancel_before_hours" validate:"omitempty,min=0"`
	RefundPercent         *int   `db:"refund_percent"           json:"refund_percent"           validate:"omitempty,min=0,max=100"`
	Active                *bool  `db:"active"                   json:"active"                   validate:"omitempty"`
}

// ToChanges returns only the fields that were sent.
func (u *UpdateRoomRequest) ToChanges() map[string]any {
	changes := map[string]any{}

	if u.Name != "" {
		changes["name"] = u.Name
	}

	if u.Type != "" {
		changes["type"] = u.Type
	}

	if u.Price != nil {
		changes["price"] = *u.Price
	}

	if u.DiscountPercent != nil {
		changes["discount_percent"] = *u.DiscountPercent
	}

	if u.MaxPeople != nil {
		changes["max_people"] = *u.MaxPeople
	}

	if u.FreeCancelBeforeHours != nil {
		changes["free_cancel_before_hours"] = *u.FreeCancelBeforeHours
	}

	if u.RefundPercent != nil {
		changes["refund_percent"] = *u.RefundPercent
	}

	if u.Active != nil {
		changes["active"] = *u.Active
	}

	return changes
}

type RoomResponse struct {
	ID                    string `json:"id"`
	HotelID               string `json:"hotel_id"`
	Name                  string `json:"name"`
	Type                  string `json:"type"`
	Price                 int64  `json:"price"`
	DiscountPercent       int    `json:"discount_percent"`
	MaxPeople             int    `json:"max_people"`
	FreeCancelBeforeHours int    `json:"free_cancel_before_hours"`
	RefundPercent         int    `json:"refund_percent"`
	AvailableCount        int    `json:"available_count"`
	Active                bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Type = model.Type
	r.Price = model.Price
	r.DiscountPercent = model.DiscountPercent
	r.MaxPeople = model.MaxPeople
	r.FreeCancelBeforeHours = model.FreeCancelBeforeHours
	r.RefundPercent = model.RefundPercent
	r.AvailableCount = model.AvailableCount
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
