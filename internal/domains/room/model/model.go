package model

import (
	"hotel/shared/model"
	"strings"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldType        = "type"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldCapacity    = "capacity"
	FieldAmenities   = "amenities"
	FieldDescription = "description"
	FieldImage       = "image"
)

// Cache key prefixes, shared with the booking engine which changes room status.
const (
	CacheKeyGet    = "room:get"
	CacheKeyGetAll = "room:gets"
)

const (
	TypeSingle = "Single"
	TypeDouble = "Double"
	TypeSuite  = "Suite"
	TypeDeluxe = "Deluxe"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

const (
	MinCapacity = 1
	MaxCapacity = 4
)

type Room struct {
	ID          string         `db:"id"`
	Number      string         `db:"number"`
	Type        string         `db:"type"`
	Price       float64        `db:"price"`
	Status      string         `db:"status"`
	Capacity    int            `db:"capacity"`
	Amenities   pq.StringArray `db:"amenities"`
	Description string         `db:"description"`
	Image       string         `db:"image"`
	model.Metadata
}

// IsAvailable reports whether the room can take a new booking.
func (r Room) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// UniqueAmenities trims entries and drops blanks and repeats, keeping first-seen order.
func UniqueAmenities(amenities []string) pq.StringArray {
	seen := make(map[string]struct{}, len(amenities))
	unique := pq.StringArray{}

	for _, amenity := range amenities {
		amenity = strings.TrimSpace(amenity)
		if amenity == "" {
			continue
		}

		if _, ok := seen[amenity]; ok {
			continue
		}

		seen[amenity] = struct{}{}
		unique = append(unique, amenity)
	}

	return unique
}
