package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxTestimonialLength    = 500
	defaultTestimonialLimit = 10
	defaultTestimonialRole  = "Customer"
)

// BackOfficeService covers the contact form, customer testimonials and the
// store-wide settings.
type BackOfficeService struct {
	Repo   *repo.GormRepo
	Events notify.Publisher
	Now    func() time.Time
}

func (s *BackOfficeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// SubmitEnquiry stores the message and tells the operator about it.
func (s *BackOfficeService) SubmitEnquiry(ctx context.Context, req transport.EnquiryRequest) (*models.Enquiry, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	for _, f := range []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"phone", req.Phone},
	} {
		if hasControl(f.value) {
			return nil, fmt.Errorf("%w: %s contains control characters", ErrValidation, f.name)
		}
	}

	q := &models.Enquiry{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
	}
	if err := s.Repo.CreateEnquiry(ctx, q); err != nil {
		return nil, err
	}
	if s.Events != nil {
		s.Events.Publish(ctx, notify.NewEnquiryReceived(*q, s.now()))
	}
	return q, nil
}

func (s *BackOfficeService) ListEnquiries(ctx context.Context, page, limit int) (transport.EnquiryList, error) {
	page, offset, limit := util.Calculate(page, limit)
	total, unread, items, err := s.Repo.ListEnquiries(ctx, offset, limit)
	if err != nil {
		return transport.EnquiryList{}, err
	}
	return transport.EnquiryList{
		Enquiries:  items,
		Stats:      transport.EnquiryStats{Total: total, Unread: unread},
		Pagination: newPage(items, page, limit, offset, total).Pagination,
	}, nil
}

func (s *BackOfficeService) MarkEnquiryRead(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	q, err := s.Repo.MarkEnquiryRead(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "enquiry")
	}
	return q, nil
}

// SubmitTestimonial stores the testimonial unapproved; it only becomes public
// once an admin approves it.
func (s *BackOfficeService) SubmitTestimonial(ctx context.Context, req transport.TestimonialRequest, userID *uuid.UUID) (*models.Testimonial, error) {
	name := strings.TrimSpace(req.Name)
	content := strings.TrimSpace(req.Content)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case content == "":
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	case len([]rune(content)) > maxTestimonialLength:
		return nil, fmt.Errorf("%w: content must be at most %d characters", ErrValidation, maxTestimonialLength)
	case req.Rating < 1 || req.Rating > 5:
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = defaultTestimonialRole
	}

	t := &models.Testimonial{
		Name:    name,
		Role:    role,
		Content: content,
		Rating:  req.Rating,
		Image:   strings.TrimSpace(req.Image),
		UserID:  userID,
	}
	if err := s.Repo.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *BackOfficeService) ApprovedTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	if limit <= 0 {
		limit = defaultTestimonialLimit
	}
	if limit > util.MaxPageSize {
		limit = util.MaxPageSize
	}
	return s.Repo.ApprovedTestimonials(ctx, limit)
}

// ListTestimonials accepts status "pending", "approved" or "all" (the
// default).
func (s *BackOfficeService) ListTestimonials(ctx context.Context, page, limit int, status string) (transport.TestimonialList, error) {
	var approved *bool
	switch status {
	case "", "all":
	case "pending":
		v := false
		approved = &v
	case "approved":
		v := true
		approved = &v
	default:
		return transport.TestimonialList{}, fmt.Errorf("%w: status must be pending, approved or all", ErrValidation)
	}

	page, offset, limit := util.Calculate(page, limit)
	total, pending, items, err := s.Repo.ListTestimonials(ctx, approved, offset, limit)
	if err != nil {
		return transport.TestimonialList{}, err
	}

	matching := total
	switch {
	case approved == nil:
	case *approved:
		matching = total - pending
	default:
		matching = pending
	}
	return transport.TestimonialList{
		Testimonials: items,
		Stats:        transport.TestimonialStats{Total: total, Pending: pending},
		Pagination:   newPage(items, page, limit, offset, matching).Pagination,
	}, nil
}

func (s *BackOfficeService) ApproveTestimonial(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	t, err := s.Repo.ApproveTestimonial(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "testimonial")
	}
	return t, nil
}

func (s *BackOfficeService) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return mapRepoErr(s.Repo.DeleteTestimonial(ctx, id), "testimonial")
}

// Settings returns the stored settings, or the defaults when none were saved.
func (s *BackOfficeService) Settings(ctx context.Context) (*models.StoreSettings, error) {
	st, err := s.Repo.GetSettings(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSettings()
		return &def, nil
	}
	return st, err
}

func (s *BackOfficeService) UpdateSettings(ctx context.Context, req transport.SettingsRequest, adminID uuid.UUID) (*models.StoreSettings, error) {
	email := strings.ToLower(strings.TrimSpace(req.ContactEmail))
	if email == "" {
		return nil, fmt.Errorf("%w: contact_email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: contact_email is invalid", ErrValidation)
	}
	if strings.TrimSpace(req.ContactPhone) == "" {
		return nil, fmt.Errorf("%w: contact_phone is required", ErrValidation)
	}
	if req.TaxRate != nil && (req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		return nil, fmt.Errorf("%w: tax_rate must be between 0 and 100", ErrValidation)
	}

	current, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	next := *current
	next.ContactEmail = email
	next.ContactPhone = strings.TrimSpace(req.ContactPhone)
	next.Address = req.Address
	if next.Address.Country == "" {
		next.Address.Country = models.DefaultSettings().Address.Country
	}
	next.SocialLinks = req.SocialLinks
	if c := strings.ToUpper(strings.TrimSpace(req.Currency)); c != "" {
		next.Currency = c
	}
	if req.TaxRate != nil {
		next.TaxRate = *req.TaxRate
	}
	next.UpdatedBy = &adminID
	return s.Repo.SaveSettings(ctx, &next)
}
