package domain

import "time"

// Vendor is a seller on the marketplace.
type Vendor struct {
	ID           int64     `json:"id,string" form:"id"`
	Name         string    `gorm:"size:200;index" json:"name" form:"name"`
	Email        string    `gorm:"size:200;uniqueIndex" json:"email" form:"email"`
	ContactNo    string    `gorm:"size:32" json:"contact_no" form:"contact_no"`
	BusinessType string    `gorm:"size:32" json:"business_type" form:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns table name
func (Vendor) TableName() string {
	return "vendor"
}

// Customer is a buyer on the marketplace.
type Customer struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"size:200;index" json:"name" form:"name"`
	Email     string    `gorm:"size:200;uniqueIndex" json:"email" form:"email"`
	Phone     string    `gorm:"size:32" json:"phone" form:"phone"`
	Address   string    `json:"address" form:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customer"
}

// VendorReputation is derived from the vendor's reviews and never written by a user action.
// AvgReviewRating and LastFeedbackAt are nil while the vendor has no reviews.
type VendorReputation struct {
	VendorID        int64      `gorm:"primaryKey;autoIncrement:false" json:"vendor_id,string"`
	AvgReviewRating *float64   `json:"avg_review_rating"`
	LastFeedbackAt  *time.Time `json:"last_feedback_at"`
	ReviewCount     int        `json:"review_count"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (VendorReputation) TableName() string {
	return "vendor_performance"
}
