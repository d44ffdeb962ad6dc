package httpserver

import (
	"net/http"
	"strconv"

	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	middleware "github.com/Skotchmaster/scent_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/scent_shop/pkg/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parseFilter(c echo.Context) (transport.ProductFilter, error) {
	f := transport.ProductFilter{
		Search: c.QueryParam("search"),
		Tag:    c.QueryParam("tag"),
		Sort:   c.QueryParam("sort"),
		Page:   util.ParseIntDefault(c.QueryParam("page"), 1),
		Limit:  util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	}
	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{{"minPrice", &f.MinPrice}, {"maxPrice", &f.MaxPrice}} {
		if v := c.QueryParam(p.name); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return f, echo.NewHTTPError(http.StatusBadRequest, "invalid "+p.name)
			}
			*p.dst = &d
		}
	}
	if v := c.QueryParam("minRating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid minRating")
		}
		f.MinRating = &r
	}
	return f, nil
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	f, err := parseFilter(c)
	if err != nil {
		l.Warn("list_products_error", "status", 400, "reason", "invalid filter", "error", err)
		return err
	}

	page, err := h.Svc.ListProducts(ctx, f)
	if err != nil {
		return fail(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) PreferredProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.preferred")

	items, err := h.Svc.PreferredProducts(ctx)
	if err != nil {
		return fail(l, "preferred_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) ProductIDs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.all_ids")

	ids, err := h.Svc.ProductIDs(ctx)
	if err != nil {
		return fail(l, "product_ids_error", err)
	}
	return c.JSON(http.StatusOK, ids)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), page, limit)
	if err != nil {
		return fail(l, "search_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := pathID(c, l, "get_product_error", "id")
	if err != nil {
		return err
	}
	product, err := h.Svc.GetProduct(ctx, id, false)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) RateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.rate")

	userID, err := caller(c, l, "rate_product_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "rate_product_error", "id")
	if err != nil {
		return err
	}
	var req transport.RateProductRequest
	if err := bind(c, l, "rate_product_error", &req); err != nil {
		return err
	}

	res, err := h.Svc.RateProduct(ctx, id, userID, req)
	if err != nil {
		return fail(l, "rate_product_error", err)
	}
	l.Info("rate_product_success", "product_id", id)
	return c.JSON(http.StatusCreated, res)
}

func (h *CatalogHTTP) UserRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.user_rating")

	userID, err := caller(c, l, "user_rating_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "user_rating_error", "id")
	if err != nil {
		return err
	}
	res, err := h.Svc.GetUserRating(ctx, id, userID)
	if err != nil {
		return fail(l, "user_rating_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) ListTags(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.list")

	tags, err := h.Svc.ListTags(ctx)
	if err != nil {
		return fail(l, "list_tags_error", err)
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *CatalogHTTP) ListFragrances(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "fragrance.list")

	frags, err := h.Svc.ListFragrances(ctx)
	if err != nil {
		return fail(l, "list_fragrances_error", err)
	}
	return c.JSON(http.StatusOK, frags)
}

func (h *CatalogHTTP) GetFragrance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "fragrance.get")

	id, err := pathID(c, l, "get_fragrance_error", "id")
	if err != nil {
		return err
	}
	f, err := h.Svc.GetFragrance(ctx, id)
	if err != nil {
		return fail(l, "get_fragrance_error", err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *CatalogHTTP) AdminListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_products")

	f, err := parseFilter(c)
	if err != nil {
		l.Warn("admin_list_products_error", "status", 400, "reason", "invalid filter", "error", err)
		return err
	}
	page, err := h.Svc.AdminListProducts(ctx, f)
	if err != nil {
		return fail(l, "admin_list_products_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.CreateProductRequest
	if err := bind(c, l, "product_create_error", &req); err != nil {
		return err
	}
	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "product_create_error", err)
	}
	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_product")

	id, err := pathID(c, l, "product_update_error", "id")
	if err != nil {
		return err
	}
	var req transport.PatchProductRequest
	if err := bind(c, l, "product_update_error", &req); err != nil {
		return err
	}
	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return fail(l, "product_update_error", err)
	}
	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := pathID(c, l, "product_delete_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "product_delete_error", err)
	}
	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) CreateTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_tag")

	adminID, err := caller(c, l, "tag_create_error")
	if err != nil {
		return err
	}
	var req transport.CreateTagRequest
	if err := bind(c, l, "tag_create_error", &req); err != nil {
		return err
	}
	tag, err := h.Svc.CreateTag(ctx, req, adminID)
	if err != nil {
		return fail(l, "tag_create_error", err)
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *CatalogHTTP) DeleteTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_tag")

	id, err := pathID(c, l, "tag_delete_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteTag(ctx, id); err != nil {
		return fail(l, "tag_delete_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) CreateFragrance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_fragrance")

	adminID, err := caller(c, l, "fragrance_create_error")
	if err != nil {
		return err
	}
	var req transport.CreateFragranceRequest
	if err := bind(c, l, "fragrance_create_error", &req); err != nil {
		return err
	}
	f, err := h.Svc.CreateFragrance(ctx, req, adminID)
	if err != nil {
		return fail(l, "fragrance_create_error", err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *CatalogHTTP) UpdateFragrance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_fragrance")

	id, err := pathID(c, l, "fragrance_update_error", "id")
	if err != nil {
		return err
	}
	var req transport.PatchFragranceRequest
	if err := bind(c, l, "fragrance_update_error", &req); err != nil {
		return err
	}
	f, err := h.Svc.UpdateFragrance(ctx, id, req)
	if err != nil {
		return fail(l, "fragrance_update_error", err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *CatalogHTTP) DeleteFragrance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_fragrance")

	id, err := pathID(c, l, "fragrance_delete_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteFragrance(ctx, id); err != nil {
		return fail(l, "fragrance_delete_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdminGetProduct shows inactive products too.
func (h *CatalogHTTP) AdminGetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_product")

	id, err := pathID(c, l, "admin_get_product_error", "id")
	if err != nil {
		return err
	}
	product, err := h.Svc.GetProduct(ctx, id, middleware.IsAdmin(c))
	if err != nil {
		return fail(l, "admin_get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}
