package app

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/handlers"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/service"
)

func NewServer(cfg Config) (*gin.Engine, func(), error) {
	// --- repositories ---
	var (
		users     repository.UserRepository
		books     repository.BookRepository
		carts     repository.CartRepository
		wishlists repository.WishlistRepository
		orders    repository.OrderRepository
	)
	cleanup := func() {}

	if cfg.DBDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(
			&model.User{},
			&model.Book{},
			&model.CartItem{},
			&model.WishlistItem{},
			&model.Order{},
			&model.OrderItem{},
		); err != nil {
			return nil, nil, err
		}
		users = repository.NewGormUsers(db)
		books = repository.NewGormBooks(db)
		carts = repository.NewGormCarts(db)
		wishlists = repository.NewGormWishlists(db)
		orders = repository.NewGormOrders(db)
		cleanup = func() {
			if s, err := db.DB(); err == nil {
				_ = s.Close()
			}
		}
	} else {
		slog.Info("no DB_DSN set, using in-memory store with demo data")
		mem := repository.NewMemory()
		users = mem.Users()
		books = mem.Books()
		carts = mem.Carts()
		wishlists = mem.Wishlists()
		orders = mem.Orders()
		if err := repository.SeedDemo(context.Background(), users, books); err != nil {
			return nil, nil, err
		}
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		books = repository.NewCachedBooks(books, rdb)
		prev := cleanup
		cleanup = func() {
			_ = rdb.Close()
			prev()
		}
	}

	// --- gin ---
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// --- services ---
	emailSvc := service.NewEmailService()
	auth := service.NewAuthService(users)
	catalog := service.NewCatalogService(books)
	cart := service.NewCartService(carts, books)
	wishlist := service.NewWishlistService(wishlists, books)
	payment := service.NewPaymentService(cfg.PaymentMinDelay, cfg.PaymentMaxDelay)
	order := service.NewOrderService(orders, carts, books, users, payment, emailSvc)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// --- catalog (public) ---
	r.GET("/api/books", func(c *gin.Context) {
		list, err := catalog.List(c.Request.Context(), service.CatalogQuery{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			SortBy:   c.Query("sort"),
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, list)
	})

	r.GET("/api/books/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "bad id"})
			return
		}
		b, err := catalog.Get(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, b)
	})

	// --- auth ---
	r.POST("/api/auth/register", func(c *gin.Context) {
		var req struct {
			Username  string `json:"username" binding:"required"`
			Password  string `json:"password" binding:"required"`
			Email     string `json:"email" binding:"required,email"`
			Firstname string `json:"firstname"`
			Lastname  string `json:"lastname"`
			Phone     string `json:"phone"`
			Address   string `json:"address"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		tok, u, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Username:  req.Username,
			Password:  req.Password,
			Email:     req.Email,
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Phone:     req.Phone,
			Address:   req.Address,
		})
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.SetCookie("session", tok, 7*24*3600, "/", "", true, true)
		c.JSON(200, gin.H{"ok": true, "token": tok, "token_type": "Bearer", "user": u})
	})

	r.POST("/api/auth/login", func(c *gin.Context) {
		var req struct{ Username, Password string }
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		tok, u, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(401, gin.H{"error": err.Error()})
			return
		}
		c.SetCookie("session", tok, 7*24*3600, "/", "", true, true)
		c.JSON(200, gin.H{"ok": true, "token": tok, "token_type": "Bearer", "user": u})
	})

	r.POST("/api/auth/logout", func(c *gin.Context) {
		c.SetCookie("session", "", -1, "/", "", true, true)
		c.JSON(200, gin.H{"ok": true})
	})

	// --- auth middleware (puts userID in context) ---
	authMW := func(c *gin.Context) {
		var tok string
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			tok = strings.TrimPrefix(ah, "Bearer ")
		}
		if tok == "" {
			if v, err := c.Cookie("session"); err == nil {
				tok = v
			}
		}
		if tok == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "login required"})
			return
		}
		uid, err := auth.ParseToken(tok)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid session"})
			return
		}
		c.Set("userID", uid)
		c.Next()
	}

	r.GET("/api/auth/me", authMW, func(c *gin.Context) {
		u, err := auth.GetUser(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(401, gin.H{"error": "login required"})
			return
		}
		c.JSON(200, u)
	})

	r.PUT("/api/auth/profile", authMW, func(c *gin.Context) {
		var req struct {
			Firstname string `json:"firstname"`
			Lastname  string `json:"lastname"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			Address   string `json:"address"`
			Theme     string `json:"theme"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		u, err := auth.UpdateProfile(c.Request.Context(), c.GetUint("userID"), service.ProfileUpdate{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			Theme:     req.Theme,
		})
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, u)
	})

	// --- cart ---
	r.POST("/api/cart/add", authMW, func(c *gin.Context) {
		var req struct {
			BookID uint `json:"book_id" binding:"required"`
			Qty    int  `json:"qty"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		if err := cart.Add(c.Request.Context(), c.GetUint("userID"), req.BookID, req.Qty); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	r.POST("/api/cart/update", authMW, func(c *gin.Context) {
		var req struct {
			BookID uint `json:"book_id" binding:"required"`
			Qty    int  `json:"qty"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		if err := cart.Update(c.Request.Context(), c.GetUint("userID"), req.BookID, req.Qty); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	r.POST("/api/cart/remove", authMW, func(c *gin.Context) {
		var req struct {
			BookID uint `json:"book_id" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		if err := cart.Remove(c.Request.Context(), c.GetUint("userID"), req.BookID); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	r.POST("/api/cart/clear", authMW, func(c *gin.Context) {
		if err := cart.Clear(c.Request.Context(), c.GetUint("userID")); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	r.GET("/api/cart", authMW, func(c *gin.Context) {
		view, err := cart.Get(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, view)
	})

	// --- wishlist ---
	r.GET("/api/wishlist", authMW, func(c *gin.Context) {
		list, err := wishlist.List(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, list)
	})

	r.POST("/api/wishlist/add", authMW, func(c *gin.Context) {
		var req struct {
			BookID uint `json:"book_id" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		if err := wishlist.Add(c.Request.Context(), c.GetUint("userID"), req.BookID); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	r.POST("/api/wishlist/remove", authMW, func(c *gin.Context) {
		var req struct {
			BookID uint `json:"book_id" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		if err := wishlist.Remove(c.Request.Context(), c.GetUint("userID"), req.BookID); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	// --- checkout + orders ---
	r.POST("/api/checkout", authMW, func(c *gin.Context) {
		var req struct {
			ShippingAddress string               `json:"shipping_address" binding:"required"`
			Method          string               `json:"method" binding:"required"`
			Card            *service.CardDetails `json:"card"`
			VPA             string               `json:"vpa"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		o, err := order.Checkout(c.Request.Context(), c.GetUint("userID"), service.CheckoutInput{
			ShippingAddress: req.ShippingAddress,
			Method:          req.Method,
			Card:            req.Card,
			VPA:             req.VPA,
		})
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, o)
	})

	r.GET("/api/orders", authMW, func(c *gin.Context) {
		list, err := order.ListByUser(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, list)
	})

	// --- admin ---
	adminMW := func(c *gin.Context) {
		u, err := auth.GetUser(c.Request.Context(), c.GetUint("userID"))
		if err != nil || u.Usertype != model.UsertypeAdmin {
			c.AbortWithStatusJSON(403, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}

	adminHTTP := handlers.NewAdminHTTP(catalog, order, auth)
	admin := r.Group("/api/admin", authMW, adminMW)
	admin.POST("/books", adminHTTP.CreateBook)
	admin.PUT("/books/:id", adminHTTP.UpdateBook)
	admin.DELETE("/books/:id", adminHTTP.DeleteBook)
	admin.GET("/orders", adminHTTP.ListOrders)
	admin.PUT("/orders/:id/status", adminHTTP.UpdateOrderStatus)
	admin.GET("/users", adminHTTP.ListUsers)
	admin.POST("/seed", func(c *gin.Context) {
		if err := repository.SeedDemo(c.Request.Context(), users, books); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "not found"})
	})

	return r, cleanup, nil
}
