package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"courier_market/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles the thread view and the offer negotiation routes
type MessageHandler struct {
	conversations service.ConversationService
	offers        service.OfferService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(conversations service.ConversationService, offers service.OfferService) *MessageHandler {
	return &MessageHandler{conversations: conversations, offers: offers}
}

func threadURL(recipientID int) string {
	return "/messages?recipient_id=" + strconv.Itoa(recipientID)
}

// Messages renders the thread with the requested recipient. An absent or
// non-numeric recipient_id falls back to the most recent contact, or to an
// empty state when the user has no conversations yet.
func (h *MessageHandler) Messages(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	recipientID, err := strconv.Atoi(c.Query("recipient_id"))
	if err != nil {
		contactID, ok, err := h.conversations.ResolveDefaultRecipient(c.Request.Context(), userID)
		if err != nil {
			log.Printf("Error resolving default recipient: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
			return
		}
		if !ok {
			// No conversations yet: an empty page, not an error
			c.JSON(http.StatusOK, gin.H{"contacts": []any{}, "recipient": nil, "messages": []any{}})
			return
		}
		c.Redirect(http.StatusFound, threadURL(contactID))
		return
	}

	view, err := h.conversations.ThreadView(c.Request.Context(), userID, recipientID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Unknown recipient soft-fails back to the messaging view
			c.Redirect(http.StatusFound, "/messages")
			return
		}
		log.Printf("Error assembling thread view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// MessagesWithRecipient is the path-parameter alias for the query form
func (h *MessageHandler) MessagesWithRecipient(c *gin.Context) {
	recipientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/messages")
		return
	}
	c.Redirect(http.StatusFound, threadURL(recipientID))
}

// SendMessage stores a message and redirects back to the thread. Empty or
// whitespace-only content is a silent no-op; the redirect still happens.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	recipientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/messages")
		return
	}

	if err := h.conversations.SendMessage(c.Request.Context(), userID, recipientID, c.PostForm("message")); err != nil {
		log.Printf("Error sending message: %v", err)
	}
	c.Redirect(http.StatusFound, threadURL(recipientID))
}

// MakeOffer creates a pending offer against one of the recipient's requests.
// A missing or non-numeric request_id is a silent no-op, as is a request id
// that doesn't resolve.
func (h *MessageHandler) MakeOffer(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	recipientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/messages")
		return
	}

	requestID, err := strconv.ParseInt(c.PostForm("request_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, threadURL(recipientID))
		return
	}
	// The offer price is numeric in storage; a malformed value no-ops the
	// same way a malformed request_id does
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, threadURL(recipientID))
		return
	}

	_, err = h.offers.CreateOffer(c.Request.Context(), userID, recipientID, requestID,
		c.PostForm("pickup"), c.PostForm("dropoff"), price)
	if err != nil {
		if !errors.Is(err, service.ErrRequestNotFound) {
			log.Printf("Error creating offer: %v", err)
		}
		c.Redirect(http.StatusFound, threadURL(recipientID))
		return
	}
	c.Redirect(http.StatusFound, threadURL(recipientID))
}

// AcceptOffer transitions an offer to accepted. Bad input, unknown offers
// and wrong recipients all soft-fail back to the messaging view.
func (h *MessageHandler) AcceptOffer(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	offerID, err := strconv.ParseInt(c.PostForm("offer_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/messages")
		return
	}

	senderID, err := h.offers.AcceptOffer(c.Request.Context(), userID, offerID)
	if err != nil {
		if !errors.Is(err, service.ErrOfferNotFound) && !errors.Is(err, service.ErrNotOfferRecipient) {
			log.Printf("Error accepting offer: %v", err)
		}
		c.Redirect(http.StatusFound, "/messages")
		return
	}
	c.Redirect(http.StatusFound, threadURL(senderID))
}

// DeclineOffer is the JSON API: {offer_id} in, {success, error?} out. The
// caller must be authenticated and a participant of the offer; declining an
// already-terminal offer reports success without changing anything.
func (h *MessageHandler) DeclineOffer(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}

	var input struct {
		OfferID int64 `json:"offer_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.OfferID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing offer ID"})
		return
	}

	if err := h.offers.DeclineOffer(c.Request.Context(), userID, input.OfferID); err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrNotOfferParticipant) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Printf("Error declining offer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to decline offer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterMessageRoutes registers the messaging routes. Page routes redirect
// to login when unauthenticated; the decline API answers 401 JSON instead.
func (h *MessageHandler) RegisterMessageRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, authJSONMW gin.HandlerFunc) {
	rg.GET("/messages", authMW, h.Messages)
	rg.GET("/messages/:id", authMW, h.MessagesWithRecipient)
	rg.POST("/send_message/:id", authMW, h.SendMessage)
	rg.POST("/make_offer/:id", authMW, h.MakeOffer)
	rg.POST("/accept_offer", authMW, h.AcceptOffer)
	rg.POST("/decline_offer", authJSONMW, h.DeclineOffer)
}
