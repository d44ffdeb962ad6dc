package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	middleware "github.com/Skotchmaster/scent_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/scent_shop/pkg/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BackOfficeHTTP struct {
	Svc *service.BackOfficeService
}

func (h *BackOfficeHTTP) SubmitEnquiry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enquiry.submit")

	var req transport.EnquiryRequest
	if err := bind(c, l, "submit_enquiry_error", &req); err != nil {
		return err
	}
	q, err := h.Svc.SubmitEnquiry(ctx, req)
	if err != nil {
		return fail(l, "submit_enquiry_error", err)
	}
	l.Info("submit_enquiry_success", "enquiry_id", q.ID)
	return c.JSON(http.StatusCreated, q)
}

func (h *BackOfficeHTTP) ListEnquiries(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_enquiries")

	list, err := h.Svc.ListEnquiries(ctx,
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))
	if err != nil {
		return fail(l, "list_enquiries_error", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *BackOfficeHTTP) MarkEnquiryRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.mark_enquiry_read")

	id, err := pathID(c, l, "mark_enquiry_read_error", "id")
	if err != nil {
		return err
	}
	q, err := h.Svc.MarkEnquiryRead(ctx, id)
	if err != nil {
		return fail(l, "mark_enquiry_read_error", err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *BackOfficeHTTP) ApprovedTestimonials(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "testimonial.approved")

	items, err := h.Svc.ApprovedTestimonials(ctx, util.ParseIntDefault(c.QueryParam("limit"), 0))
	if err != nil {
		return fail(l, "approved_testimonials_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

// SubmitTestimonial links the testimonial to the caller when one is signed in.
func (h *BackOfficeHTTP) SubmitTestimonial(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "testimonial.submit")

	var req transport.TestimonialRequest
	if err := bind(c, l, "submit_testimonial_error", &req); err != nil {
		return err
	}
	var author *uuid.UUID
	if id, err := middleware.UserID(c); err == nil {
		author = &id
	}
	t, err := h.Svc.SubmitTestimonial(ctx, req, author)
	if err != nil {
		return fail(l, "submit_testimonial_error", err)
	}
	l.Info("submit_testimonial_success", "testimonial_id", t.ID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Testimonial submitted successfully!", "id": t.ID})
}

func (h *BackOfficeHTTP) ListTestimonials(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_testimonials")

	list, err := h.Svc.ListTestimonials(ctx,
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		c.QueryParam("status"))
	if err != nil {
		return fail(l, "list_testimonials_error", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *BackOfficeHTTP) ApproveTestimonial(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.approve_testimonial")

	id, err := pathID(c, l, "approve_testimonial_error", "id")
	if err != nil {
		return err
	}
	t, err := h.Svc.ApproveTestimonial(ctx, id)
	if err != nil {
		return fail(l, "approve_testimonial_error", err)
	}
	l.Info("approve_testimonial_success", "testimonial_id", t.ID)
	return c.JSON(http.StatusOK, t)
}

func (h *BackOfficeHTTP) DeleteTestimonial(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_testimonial")

	id, err := pathID(c, l, "delete_testimonial_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteTestimonial(ctx, id); err != nil {
		return fail(l, "delete_testimonial_error", err)
	}
	l.Info("delete_testimonial_success", "testimonial_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *BackOfficeHTTP) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get")

	st, err := h.Svc.Settings(ctx)
	if err != nil {
		return fail(l, "get_settings_error", err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *BackOfficeHTTP) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_settings")

	adminID, err := caller(c, l, "update_settings_error")
	if err != nil {
		return err
	}
	var req transport.SettingsRequest
	if err := bind(c, l, "update_settings_error", &req); err != nil {
		return err
	}
	st, err := h.Svc.UpdateSettings(ctx, req, adminID)
	if err != nil {
		return fail(l, "update_settings_error", err)
	}
	l.Info("update_settings_success", "admin_id", adminID)
	return c.JSON(http.StatusOK, st)
}
