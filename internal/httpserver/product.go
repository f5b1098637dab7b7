package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/events"
	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/models"
	"github.com/skirsanov/gadgetshop/internal/repo"
	"github.com/skirsanov/gadgetshop/internal/search"
)

type ProductHTTP struct {
	Repo     *repo.GormRepo
	Index    *search.Index
	Producer *events.Producer
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, "", event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req struct {
		ProductName  string `json:"productName"`
		ProductDesc  string `json:"productDesc"`
		ImageURL     string `json:"imageURL"`
		ProductPrice string `json:"productPrice"`
		ScreenOption string `json:"screenOption"`
		Color        string `json:"color"`
		Badges       string `json:"badges"`
		Category     string `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	product := models.Product{
		ID:           uuid.New(),
		ProductName:  req.ProductName,
		ProductDesc:  req.ProductDesc,
		ImageURL:     req.ImageURL,
		ProductPrice: req.ProductPrice,
		ScreenOption: req.ScreenOption,
		Color:        req.Color,
		Badges:       req.Badges,
		Category:     req.Category,
	}
	if err := h.Repo.CreateProduct(ctx, &product); err != nil {
		l.Error("product_create_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An error occurred while adding the product", "error": err.Error()})
	}

	if err := h.Index.IndexProduct(ctx, &product); err != nil {
		l.Error("product_index_error", "error", err)
	}

	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.ProductName,
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "Product add successfully!", "product": product})
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid product id"})
	}

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		l.Error("product_delete_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if err := h.Index.DeleteProduct(ctx, id.String()); err != nil {
		l.Error("product_deindex_error", "error", err)
	}

	h.publish(c, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func (h *ProductHTTP) GetData(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.Repo.ListProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("product_list_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_search")

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "query required"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := paginate(page, size)

	total, products, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		l.Error("product_search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func paginate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return (page - 1) * size, size
}
