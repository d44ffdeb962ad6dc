package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/transport"
)

func TestEnquiryEndpoints(t *testing.T) {
	s := newServer(t)
	admin := token(t, uuid.New(), "admin")
	user := token(t, uuid.New(), "user")

	rec := s.do(http.MethodPost, "/api/enquiries", "", map[string]string{
		"firstName": "Ann",
		"email":     "Ann@Example.com",
		"message":   "Is the oud candle back in stock?",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Enquiry](t, rec)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.Equal(t, 1, s.events.count(notify.EventEnquiryReceived))

	rec = s.do(http.MethodPost, "/api/enquiries", "", map[string]string{"email": "a@x.io"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message is required", msg(t, rec))

	rec = s.do(http.MethodGet, "/api/admin/enquiries", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/enquiries?page=1&limit=5", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[transport.EnquiryList](t, rec)
	require.Len(t, list.Enquiries, 1)
	assert.EqualValues(t, 1, list.Stats.Unread)

	rec = s.do(http.MethodPatch, "/api/admin/enquiries/"+created.ID.String()+"/read", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Enquiry](t, rec).IsRead)

	rec = s.do(http.MethodPatch, "/api/admin/enquiries/"+uuid.NewString()+"/read", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodPatch, "/api/admin/enquiries/nope/read", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTestimonialEndpoints(t *testing.T) {
	s := newServer(t)
	admin := token(t, uuid.New(), "admin")
	author := uuid.New()

	rec := s.do(http.MethodPost, "/api/testimonials", token(t, author, "user"), map[string]any{
		"name":    "Ann",
		"content": "Smells like a forest after rain.",
		"rating":  5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Testimonial submitted successfully!", body["message"])
	id := body["id"]

	rec = s.do(http.MethodPost, "/api/testimonials", "", map[string]any{"name": "Bob", "content": "ok", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "rating must be between 1 and 5", msg(t, rec))

	rec = s.do(http.MethodGet, "/api/testimonials/approved", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Testimonial](t, rec))

	rec = s.do(http.MethodGet, "/api/admin/testimonials?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decode[transport.TestimonialList](t, rec)
	require.Len(t, pending.Testimonials, 1)
	require.NotNil(t, pending.Testimonials[0].UserID)
	assert.Equal(t, author, *pending.Testimonials[0].UserID)
	assert.EqualValues(t, 1, pending.Stats.Pending)

	rec = s.do(http.MethodPatch, "/api/admin/testimonials/"+id+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/testimonials/approved?limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Testimonial](t, rec), 1)

	rec = s.do(http.MethodDelete, "/api/admin/testimonials/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, "/api/admin/testimonials/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodPatch, "/api/admin/testimonials/"+id+"/approve", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	s := newServer(t)
	admin := token(t, uuid.New(), "admin")

	rec := s.do(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	def := decode[models.StoreSettings](t, rec)
	assert.Equal(t, "INR", def.Currency)
	assert.Equal(t, "India", def.Address.Country)

	rec = s.do(http.MethodPut, "/api/admin/settings", token(t, uuid.New(), "user"), map[string]any{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, "/api/admin/settings", admin, map[string]any{"contact_phone": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "contact_email is required", msg(t, rec))

	rec = s.do(http.MethodPut, "/api/admin/settings", admin, map[string]any{
		"contact_email": "hello@shop.io",
		"contact_phone": "+91 555",
		"address":       map[string]string{"city": "Pune"},
		"socialLinks":   map[string]string{"instagram": "@shop"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.StoreSettings](t, rec)
	assert.Equal(t, "hello@shop.io", got.ContactEmail)
	assert.Equal(t, "Pune", got.Address.City)
	assert.Equal(t, "India", got.Address.Country)
	assert.Equal(t, "@shop", got.SocialLinks.Instagram)
}
