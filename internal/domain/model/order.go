package model

import "time"

// Order is a sale order owning a list of order lines.
type Order struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	PartnerName string    `bson:"partner_name,omitempty" json:"partner_name,omitempty"`
	PricelistID string    `bson:"pricelist_id,omitempty" json:"pricelist_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ViewAction describes a client-side navigation to a list of records.
type ViewAction struct {
	Name     string   `json:"name"`
	Model    string   `json:"model"`
	ViewMode string   `json:"view_mode"`
	IDs      []string `json:"ids"`
}
