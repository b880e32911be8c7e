package domain

import (
	"context"
	"errors"
)

// Load is one posted lane on the board. Optional fields stay nil so the
// wire shape keeps explicit nulls for lanes missing details.
type Load struct {
	LoadID           string   `json:"load_id" mapstructure:"load_id"`
	Origin           string   `json:"origin" mapstructure:"origin"`
	Destination      string   `json:"destination" mapstructure:"destination"`
	PickupDatetime   string   `json:"pickup_datetime" mapstructure:"pickup_datetime"`
	DeliveryDatetime string   `json:"delivery_datetime" mapstructure:"delivery_datetime"`
	EquipmentType    string   `json:"equipment_type" mapstructure:"equipment_type"`
	LoadboardRate    float64  `json:"loadboard_rate" mapstructure:"loadboard_rate"`
	Notes            *string  `json:"notes" mapstructure:"notes"`
	Weight           *float64 `json:"weight" mapstructure:"weight"`
	CommodityType    *string  `json:"commodity_type" mapstructure:"commodity_type"`
	NumOfPieces      *int     `json:"num_of_pieces" mapstructure:"num_of_pieces"`
	Miles            *float64 `json:"miles" mapstructure:"miles"`
	Dimensions       *string  `json:"dimensions" mapstructure:"dimensions"`
}

type ListLoadsRequest struct {
	Origin      string
	Destination string
	MaxMiles    *float64
}

type Service interface {
	List(context.Context, ListLoadsRequest) ([]Load, error)
	GetByID(ctx context.Context, loadID string) (Load, error)
}

var ErrNotFound = errors.New("load_not_found")
