package transport

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/shopspring/decimal"
)

type EnquiryRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

type EnquiryStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
}

type EnquiryList struct {
	Enquiries  []models.Enquiry `json:"enquiries"`
	Stats      EnquiryStats     `json:"stats"`
	Pagination Pagination       `json:"pagination"`
}

// TestimonialRequest carries the image as an already hosted URL.
type TestimonialRequest struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	Image   string `json:"image"`
}

type TestimonialStats struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
}

type TestimonialList struct {
	Testimonials []models.Testimonial `json:"testimonials"`
	Stats        TestimonialStats     `json:"stats"`
	Pagination   Pagination           `json:"pagination"`
}

// SettingsRequest replaces the editable settings fields. Currency and
// TaxRate keep their stored values when omitted.
type SettingsRequest struct {
	ContactEmail string              `json:"contact_email"`
	ContactPhone string              `json:"contact_phone"`
	Address      models.StoreAddress `json:"address"`
	SocialLinks  models.SocialLinks  `json:"socialLinks"`
	Currency     string              `json:"currency"`
	TaxRate      *decimal.Decimal    `json:"tax_rate"`
}
