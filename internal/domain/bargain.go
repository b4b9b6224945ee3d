package domain

import "time"

const (
	BargainStatusPending   = "pending"
	BargainStatusAccepted  = "accepted"
	BargainStatusRejected  = "rejected"
	BargainStatusCountered = "countered"
)

// BargainOffer is a customer's price proposal for a product. Rows are
// write-once at submission; only Status and the admin response fields change
// afterwards, through the admin workflow.
type BargainOffer struct {
	ID                int64     `gorm:"primaryKey" json:"id,string"`
	ProductID         int64     `gorm:"index" json:"product_id,string"`
	CustomerName      string    `json:"customer_name"`
	CustomerPhone     string    `json:"customer_phone"`
	OfferedPriceCents int64     `json:"offered_price_cents"`
	Qty               int       `json:"qty"`
	Message           string    `gorm:"size:2048" json:"message"`
	Status            string    `gorm:"index;size:32" json:"status"`
	AdminResponse     string    `gorm:"size:2048" json:"admin_response"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName Specify table name
func (BargainOffer) TableName() string {
	return "bargain_offers"
}

// ValidBargainStatus reports whether s is one of the admin workflow states.
func ValidBargainStatus(s string) bool {
	switch s {
	case BargainStatusPending, BargainStatusAccepted, BargainStatusRejected, BargainStatusCountered:
		return true
	}
	return false
}
