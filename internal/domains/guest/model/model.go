package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"hotel/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID             = "id"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldAddress        = "address"
	FieldDocumentType   = "document_type"
	FieldDocumentNumber = "document_number"
	FieldIDProof        = "id_proof"
	FieldPreferences    = "preferences"
)

const (
	CacheKeyGet    = "guest:get"
	CacheKeyGetAll = "guest:gets"
)

const (
	DocumentPassport      = "passport"
	DocumentIDCard        = "id_card"
	DocumentDriverLicense = "driver_license"
)

var errUnsupportedJSONB = errors.New("unsupported jsonb source")

type Guest struct {
	ID             string       `db:"id"`
	Name           string       `db:"name"`
	Email          string       `db:"email"`
	Phone          string       `db:"phone"`
	Address        *Address     `db:"address"`
	DocumentType   string       `db:"document_type"`
	DocumentNumber string       `db:"document_number"`
	IDProof        *IDProof     `db:"id_proof"`
	Preferences    *Preferences `db:"preferences"`
	model.Metadata
}

type Address struct {
	Street  string `json:"street,omitempty"  validate:"omitempty,max=200"`
	City    string `json:"city,omitempty"    validate:"omitempty,max=100"`
	State   string `json:"state,omitempty"   validate:"omitempty,max=100"`
	Country string `json:"country,omitempty" validate:"omitempty,max=100"`
	ZipCode string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
}

func (a Address) Value() (driver.Value, error) {
	return marshalJSONB(a)
}

func (a *Address) Scan(src any) error {
	return unmarshalJSONB(src, a)
}

type IDProof struct {
	Type   string `json:"type"   validate:"required,oneof=passport id_card driver_license"`
	Number string `json:"number" validate:"required,max=50"`
}

func (p IDProof) Value() (driver.Value, error) {
	return marshalJSONB(p)
}

func (p *IDProof) Scan(src any) error {
	return unmarshalJSONB(src, p)
}

type Preferences struct {
	Smoking  bool   `json:"smoking"`
	Floor    int    `json:"floor,omitempty"    validate:"omitempty,gte=0,lte=200"`
	RoomType string `json:"roomType,omitempty" validate:"omitempty,oneof=Single Double Suite Deluxe"`
}

func (p Preferences) Value() (driver.Value, error) {
	return marshalJSONB(p)
}

func (p *Preferences) Scan(src any) error {
	return unmarshalJSONB(src, p)
}

func marshalJSONB(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}

	return data, nil
}

func unmarshalJSONB(src any, dst any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedJSONB, src)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal jsonb: %w", err)
	}

	return nil
}
