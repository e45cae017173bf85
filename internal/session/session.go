// Package session owns the in-memory state tree for the one active session
// and is the only component permitted to mutate domain state. Every mutation
// runs inside a single lock, mirrors the whole state to the persisted store,
// and reports persist failures to the caller.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/store"
	"github.com/rentcore/rentcore/internal/types"
)

const defaultToastTTL = 5 * time.Second

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrNotFound           = errors.New("not found")
	ErrBlocked            = errors.New("user is blocked")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoImages           = errors.New("property requires at least one image")
	ErrDefaultCity        = errors.New("default city cannot be removed")
	ErrCityExists         = errors.New("city already exists")
	ErrEmptyMessage       = errors.New("message text cannot be empty")
)

type Controller struct {
	log      *log.Logger
	store    *store.Store
	stats    stats.Provider
	toastTTL time.Duration
	now      func() time.Time

	mu            sync.Mutex
	users         []types.User
	properties    []types.Property
	chats         []types.Chat
	contracts     []types.Contract
	cities        []types.CityConfig
	neighborhoods []string
	favorites     map[string][]string
	user          *types.User
	toasts        []types.Toast
	lastToastId   int64

	listeners    map[int]chan types.Event
	nextListener int
}

// NewController loads the persisted snapshot and returns the controller
// owning it.
func NewController(logger *log.Logger, st *store.Store, sp stats.Provider) *Controller {
	snap := st.Load()

	return &Controller{
		log:           logger,
		store:         st,
		stats:         sp,
		toastTTL:      defaultToastTTL,
		now:           time.Now,
		users:         snap.Users,
		properties:    snap.Properties,
		chats:         snap.Chats,
		contracts:     snap.Contracts,
		cities:        snap.Cities,
		neighborhoods: snap.Neighborhoods,
		favorites:     snap.Favorites,
		user:          snap.SessionUser,
		listeners:     make(map[int]chan types.Event),
	}
}

// persistLocked mirrors the in-memory state to the store. Callers must hold
// the lock. The in-memory mutation stays applied even when the write fails;
// the error is surfaced so callers can retry.
func (c *Controller) persistLocked() error {
	snap := &store.Snapshot{
		Cities:        c.cities,
		Neighborhoods: c.neighborhoods,
		Properties:    c.properties,
		Users:         c.users,
		SessionUser:   c.user,
		Chats:         c.chats,
		Contracts:     c.contracts,
		Favorites:     c.favorites,
	}

	if err := c.store.Persist(snap); err != nil {
		c.log.Printf("persist state: %v", err)
		return err
	}

	return nil
}

func (c *Controller) requireSessionLocked() (*types.User, error) {
	if c.user == nil {
		return nil, ErrAuthRequired
	}
	return c.user, nil
}

func (c *Controller) requireAdminLocked() (*types.User, error) {
	u, err := c.requireSessionLocked()
	if err != nil {
		return nil, err
	}
	if u.Role != types.RoleAdmin {
		return nil, ErrForbidden
	}
	return u, nil
}

// CurrentUser returns a copy of the session user, or nil when logged out.
func (c *Controller) CurrentUser() *types.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Controller) Ping() error {
	return c.store.Ping()
}

// Subscribe registers a listener on the event feed. The returned cancel
// function removes it. Slow listeners drop events rather than block
// mutations.
func (c *Controller) Subscribe() (<-chan types.Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextListener
	c.nextListener++
	ch := make(chan types.Event, 64)
	c.listeners[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if l, ok := c.listeners[id]; ok {
			delete(c.listeners, id)
			close(l)
		}
	}

	return ch, cancel
}

func (c *Controller) emitLocked(ev types.Event) {
	for _, ch := range c.listeners {
		select {
		case ch <- ev:
		default:
			c.log.Println("event listener full, dropping event")
		}
	}
}

// Notify enqueues an ephemeral toast. The toast removes itself after the
// controller's TTL regardless of user interaction.
func (c *Controller) Notify(text string, kind types.ToastKind, image string) types.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.notifyLocked(text, kind, image)
}

func (c *Controller) notifyLocked(text string, kind types.ToastKind, image string) types.Toast {
	now := c.now()

	// toast ids are timestamp-derived; bump on collision so two toasts in
	// the same millisecond stay distinct
	id := now.UnixMilli()
	if id <= c.lastToastId {
		id = c.lastToastId + 1
	}
	c.lastToastId = id

	toast := types.Toast{
		Id:        id,
		Text:      text,
		Kind:      kind,
		Image:     image,
		CreatedAt: now,
	}
	c.toasts = append(c.toasts, toast)
	c.stats.Incr(stats.ToastsEmitted)
	c.emitLocked(types.Event{Type: types.EventToast, Toast: &toast})

	time.AfterFunc(c.toastTTL, func() {
		c.removeToast(id)
	})

	return toast
}

// removeToast drops the toast with the given id. Removing an id that is
// already gone is a no-op, so a late expiry timer is harmless.
func (c *Controller) removeToast(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, t := range c.toasts {
		if t.Id == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns the currently visible toasts in insertion order.
func (c *Controller) Toasts() []types.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]types.Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Cities returns the full city catalog.
func (c *Controller) Cities() []types.CityConfig {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]types.CityConfig, len(c.cities))
	copy(out, c.cities)
	return out
}

// ActiveCities returns only cities open for listings.
func (c *Controller) ActiveCities() []types.CityConfig {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []types.CityConfig
	for _, city := range c.cities {
		if city.IsActive {
			out = append(out, city)
		}
	}
	return out
}

func (c *Controller) Neighborhoods() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.neighborhoods))
	copy(out, c.neighborhoods)
	return out
}

func (c *Controller) findUserLocked(id string) (int, bool) {
	for i := range c.users {
		if c.users[i].Id == id {
			return i, true
		}
	}
	return 0, false
}

func (c *Controller) findPropertyLocked(id string) (int, bool) {
	for i := range c.properties {
		if c.properties[i].Id == id {
			return i, true
		}
	}
	return 0, false
}

func wrapPersist(err error) error {
	if err != nil {
		return fmt.Errorf("state updated but not persisted: %w", err)
	}
	return nil
}
