package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"courier_market/internal/model"
	"courier_market/internal/repository"
)

// ThreadView is everything the messages page needs: the recipient, the
// viewer's contact list, the merged thread entries formatted for display, and
// the viewer's own active requests for the offer form.
type ThreadView struct {
	Recipient      *model.User             `json:"recipient"`
	Contacts       []model.Contact         `json:"contacts"`
	Entries        []model.ThreadEntryView `json:"messages"`
	ActiveRequests []model.DeliveryRequest `json:"active_requests"`
}

// ConversationService assembles two-party threads out of messages and offers
type ConversationService interface {
	// GetThread merges all messages and offers between the two users into
	// one sequence ordered non-decreasingly by timestamp. The merge is
	// stable: entries with equal timestamps keep their per-table insertion
	// order. An empty thread is valid, not an error.
	GetThread(ctx context.Context, currentUserID, counterpartID int) ([]model.ThreadEntry, error)

	// GetContacts returns the distinct counterparts of a user, derived from
	// message and offer participation, most recent interaction first.
	GetContacts(ctx context.Context, userID int) ([]model.Contact, error)

	// ResolveDefaultRecipient returns the most recent contact, or ok=false
	// when the user has no conversations yet.
	ResolveDefaultRecipient(ctx context.Context, userID int) (int, bool, error)

	// SendMessage stores a message. Whitespace-only content is a silent
	// no-op: nothing is stored and no error is returned.
	SendMessage(ctx context.Context, senderID, receiverID int, content string) error

	// ThreadView assembles the full messages page for a recipient.
	ThreadView(ctx context.Context, currentUserID, counterpartID int) (*ThreadView, error)
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	requestRepo      repository.RequestRepository
	userRepo         repository.UserRepository
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		requestRepo:      requestRepo,
		userRepo:         userRepo,
	}
}

func (s *conversationService) GetThread(ctx context.Context, currentUserID, counterpartID int) ([]model.ThreadEntry, error) {
	messages, offers, err := s.conversationRepo.ThreadSnapshot(ctx, currentUserID, counterpartID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread snapshot: %w", err)
	}
	return mergeThread(messages, offers), nil
}

// mergeThread tags both record kinds and stable-sorts them on the shared
// timestamp key. Each input slice arrives ordered by (created_at, id), so
// ties keep insertion order within a kind.
func mergeThread(messages []model.Message, offers []model.Offer) []model.ThreadEntry {
	entries := make([]model.ThreadEntry, 0, len(messages)+len(offers))
	for i := range messages {
		entries = append(entries, model.ThreadEntry{Kind: model.ThreadEntryMessage, Message: &messages[i]})
	}
	for i := range offers {
		entries = append(entries, model.ThreadEntry{Kind: model.ThreadEntryOffer, Offer: &offers[i]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp().Before(entries[j].Timestamp())
	})
	return entries
}

func (s *conversationService) GetContacts(ctx context.Context, userID int) ([]model.Contact, error) {
	contacts, err := s.conversationRepo.Contacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return contacts, nil
}

func (s *conversationService) ResolveDefaultRecipient(ctx context.Context, userID int) (int, bool, error) {
	contacts, err := s.conversationRepo.Contacts(ctx, userID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve default recipient: %w", err)
	}
	if len(contacts) == 0 {
		return 0, false, nil
	}
	return contacts[0].UserID, true, nil
}

func (s *conversationService) SendMessage(ctx context.Context, senderID, receiverID int, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil // Silent no-op, nothing is stored
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (s *conversationService) ThreadView(ctx context.Context, currentUserID, counterpartID int) (*ThreadView, error) {
	recipient, err := s.userRepo.FindByID(ctx, counterpartID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}

	entries, err := s.GetThread(ctx, currentUserID, counterpartID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.GetContacts(ctx, currentUserID)
	if err != nil {
		return nil, err
	}

	activeRequests, err := s.requestRepo.FindActiveByOwner(ctx, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active requests: %w", err)
	}

	views := make([]model.ThreadEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, model.ViewOf(e))
	}

	return &ThreadView{
		Recipient:      recipient,
		Contacts:       contacts,
		Entries:        views,
		ActiveRequests: activeRequests,
	}, nil
}
