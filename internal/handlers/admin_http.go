package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/service"
)

// AdminHTTP bundles the admin panel endpoints: catalog CRUD, order
// management and the user listing. Routes are mounted behind the admin
// middleware in app.NewServer.
type AdminHTTP struct {
	Catalog service.CatalogService
	Orders  service.OrderService
	Auth    service.AuthService
}

func NewAdminHTTP(catalog service.CatalogService, orders service.OrderService, auth service.AuthService) *AdminHTTP {
	return &AdminHTTP{Catalog: catalog, Orders: orders, Auth: auth}
}

type bookReq struct {
	Barcode     string  `json:"barcode"`
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author"`
	PriceCents  int64   `json:"price_cents" binding:"required,min=1"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

func (r bookReq) toModel() model.Book {
	return model.Book{
		Barcode:     r.Barcode,
		Title:       r.Title,
		Author:      r.Author,
		PriceCents:  r.PriceCents,
		Quantity:    r.Quantity,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
	}
}

func (h *AdminHTTP) CreateBook(c *gin.Context) {
	var req bookReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
		return
	}
	book := req.toModel()
	if err := h.Catalog.Add(c.Request.Context(), &book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *AdminHTTP) UpdateBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	var req bookReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
		return
	}
	book := req.toModel()
	book.ID = id
	if err := h.Catalog.Update(c.Request.Context(), &book); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrBookNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *AdminHTTP) DeleteBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrBookNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHTTP) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *AdminHTTP) UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
		return
	}
	order, err := h.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrInvalidTransition):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *AdminHTTP) ListUsers(c *gin.Context) {
	users, err := h.Auth.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}
