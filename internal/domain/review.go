package domain

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

func ParseSentiment(s string) (Sentiment, bool) {
	s = strings.TrimSpace(s)
	for _, v := range []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative} {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

const (
	MinRating = 1
	MaxRating = 5
)

// Review is customer feedback on a product. At most one per (customer, product),
// enforced by idx_review_customer_product.
type Review struct {
	ID         int64     `json:"id,string"`
	CustomerID int64     `gorm:"uniqueIndex:idx_review_customer_product;not null" json:"customer_id,string"`
	ProductID  int64     `gorm:"uniqueIndex:idx_review_customer_product;not null" json:"product_id,string"`
	VendorID   int64     `gorm:"index;not null" json:"vendor_id,string"`
	Rating     int       `gorm:"not null" json:"rating"`
	Sentiment  Sentiment `gorm:"size:16" json:"sentiment"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Review) TableName() string {
	return "review"
}
