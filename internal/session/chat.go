package session

import (
	"fmt"

	"github.com/teris-io/shortid"

	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/types"
)

// SendMessage appends a message to the chat for the given property/renter
// pair, creating the chat on first contact. The touched chat moves to the
// front of the list (most-recently-active ordering) and its lastUpdate never
// decreases.
func (c *Controller) SendMessage(propertyId, renterId, ownerId, text string) (types.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == "" {
		return types.Chat{}, ErrEmptyMessage
	}

	chatId := types.ChatID(propertyId, renterId)

	// Sender falls back to the supplied renter id when nobody is logged in.
	// This keeps the guest enquiry path working; the fallback is logged so
	// it stays observable.
	senderId := renterId
	if c.user != nil {
		senderId = c.user.Id
	} else {
		c.log.Printf("no session user, message sender falls back to renter %s", renterId)
	}

	sid, err := shortid.Generate()
	if err != nil {
		return types.Chat{}, fmt.Errorf("generate message id: %w", err)
	}

	now := c.now()
	msg := types.ChatMessage{
		Id:        "msg-" + sid,
		SenderId:  senderId,
		Text:      text,
		Timestamp: now,
	}

	var chat types.Chat
	idx := -1
	for i := range c.chats {
		if c.chats[i].Id == chatId {
			idx = i
			break
		}
	}

	if idx >= 0 {
		chat = c.chats[idx]
		chat.Messages = append(chat.Messages, msg)
		if now.Before(chat.LastUpdate) {
			// lastUpdate is monotonically non-decreasing
			chat.Messages[len(chat.Messages)-1].Timestamp = chat.LastUpdate
		} else {
			chat.LastUpdate = now
		}
		c.chats = append(c.chats[:idx], c.chats[idx+1:]...)
	} else {
		chat = types.Chat{
			Id:         chatId,
			PropertyId: propertyId,
			RenterId:   renterId,
			OwnerId:    ownerId,
			Messages:   []types.ChatMessage{msg},
			LastUpdate: now,
			Status:     types.ChatOpen,
		}
	}

	c.chats = append([]types.Chat{chat}, c.chats...)
	c.stats.Incr(stats.MessagesSent)
	c.emitLocked(types.Event{Type: types.EventMessage, ChatId: chatId, Message: &msg})

	return chat, wrapPersist(c.persistLocked())
}

// Chats returns the conversations the session user participates in, most
// recently active first. Admins see all chats.
func (c *Controller) Chats() ([]types.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return nil, err
	}

	var out []types.Chat
	for _, chat := range c.chats {
		if u.Role == types.RoleAdmin || chat.RenterId == u.Id || chat.OwnerId == u.Id {
			out = append(out, chat)
		}
	}
	return out, nil
}
