package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5

	MaxCommentLength = 1000
)

// Review is a product review; hidden from the storefront until approved
type Review struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"` // 1-5
	Comment      string    `json:"comment"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined for the admin list
	ProductName string `json:"product_name,omitempty"`
}

// Summary backs the stars block on the product page
type Summary struct {
	AverageRating   decimal.Decimal `json:"average_rating"`
	TotalReviews    int             `json:"total_reviews"`
	RatingBreakdown map[int]int     `json:"rating_breakdown"`
}

// =====================================================
// REQUESTS
// =====================================================

type CreateReviewRequest struct {
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerName,
			validation.Required.Error("الاسم مطلوب"),
			validation.RuneLength(2, 100).Error("الاسم يجب أن يكون بين 2 و 100 حرف"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("التقييم مطلوب"),
			validation.Min(MinRating).Error("التقييم من 1 إلى 5"),
			validation.Max(MaxRating).Error("التقييم من 1 إلى 5"),
		),
		validation.Field(&r.Comment,
			validation.Required.Error("التعليق مطلوب"),
			validation.RuneLength(3, MaxCommentLength).Error("التعليق طويل جداً"),
		),
	)
}

// ToEntity builds a pending review for productID
func (r CreateReviewRequest) ToEntity(productID uuid.UUID) *Review {
	return &Review{
		ID:           uuid.New(),
		ProductID:    productID,
		CustomerName: strings.TrimSpace(r.CustomerName),
		Rating:       r.Rating,
		Comment:      strings.TrimSpace(r.Comment),
		IsApproved:   false,
	}
}

type ListFilter struct {
	Approved  *bool
	ProductID *uuid.UUID
	Page      int
	Limit     int
}
