package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldHotelID        = "hotel_id"
	FieldName           = "name"
	FieldType           = "type"
	FieldPrice          = "price"
	FieldActive         = "active"
	FieldAvailableCount = "available_count"
	FieldModifiedAt     = "modified_at"
	FieldModifiedBy     = "modified_by"
)

type Room struct {
	ID                    string `db:"id"`
	HotelID               string `db:"hotel_id"`
	Name                  string `db:"name"`
	Type                  string `db:"type"`
	Price                 int64  `db:"price"`
	DiscountPercent       int    `db:"discount_percent"`
	MaxPeople             int    `db:"max_people"`
	FreeCancelBeforeHours int    `db:"free_cancel_before_hours"`
	RefundPercent         int    `db:"refund_percent"`
	AvailableCount        int    `db:"available_count"`
	Active                bool   `db:"active"`
	model.Metadata
}
