package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"courier_market/internal/middleware"
	"courier_market/internal/model"
	"courier_market/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingHandler handles the home page listing query, request posting and
// the dashboard/profile pages
type ListingHandler struct {
	listings service.ListingService
	auth     service.AuthService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listings service.ListingService, auth service.AuthService) *ListingHandler {
	return &ListingHandler{listings: listings, auth: auth}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

func (h *ListingHandler) Index(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error loading index page: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
}

// Browse is the role-based listing query behind POST /: travelers see their
// own requests, everyone else sees requests posted by others
func (h *ListingHandler) Browse(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	options, err := h.listings.BrowseForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error browsing listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

func (h *ListingHandler) CreateRequest(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	weight, err := strconv.ParseInt(c.PostForm("weight"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight"})
		return
	}
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	departDate, err := time.Parse("2006-01-02", c.PostForm("depart_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format for 'depart_date', use YYYY-MM-DD"})
		return
	}
	arrivalDate, err := time.Parse("2006-01-02", c.PostForm("arrival_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format for 'arrival_date', use YYYY-MM-DD"})
		return
	}

	input := model.CreateRequestInput{
		PickUpLocation:  c.PostForm("pick_up_city"),
		DropOffLocation: c.PostForm("drop_off_city"),
		ItemType:        c.PostForm("item_type"),
		Weight:          weight,
		Price:           price,
		DepartDate:      departDate,
		ArrivalDate:     arrivalDate,
	}
	if desc := c.PostForm("description"); desc != "" {
		input.Description = &desc
	}
	if input.PickUpLocation == "" || input.DropOffLocation == "" || input.ItemType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Must provide pick up city, drop off city and item type"})
		return
	}

	request, err := h.listings.CreateRequest(c.Request.Context(), userID, input)
	if err != nil {
		log.Printf("Error creating request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *ListingHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "dashboard"})
}

func (h *ListingHandler) Profile(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error loading profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterListingRoutes registers the listing routes; all require a session
func (h *ListingHandler) RegisterListingRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/", authMW, h.Index)
	rg.POST("/", authMW, h.Browse)
	rg.POST("/requests", authMW, h.CreateRequest)
	rg.GET("/dashboard", authMW, h.Dashboard)
	rg.GET("/profile", authMW, h.Profile)
}
