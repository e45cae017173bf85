package session

import (
	"fmt"

	"github.com/teris-io/shortid"

	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/types"
)

// PublicProperties returns the listings visible without authentication.
// Inactive listings are never included.
func (c *Controller) PublicProperties() []types.Property {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []types.Property
	for _, p := range c.properties {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// Properties returns the full catalog, newest first.
func (c *Controller) Properties() []types.Property {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]types.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// PropertiesByOwner returns the listings owned by the given user.
func (c *Controller) PropertiesByOwner(ownerId string) []types.Property {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []types.Property
	for _, p := range c.properties {
		if p.OwnerId == ownerId {
			out = append(out, p)
		}
	}
	return out
}

// AddProperty publishes a listing at the front of the catalog and fans out a
// radar notification to every renter who opted in.
func (c *Controller) AddProperty(p types.Property) (types.Property, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return types.Property{}, err
	}
	if u.Role != types.RoleOwner && u.Role != types.RoleAdmin {
		return types.Property{}, ErrForbidden
	}

	if p.OwnerId == "" {
		p.OwnerId = u.Id
	}
	if u.Role == types.RoleOwner && p.OwnerId != u.Id {
		return types.Property{}, ErrForbidden
	}

	if len(p.Images) == 0 {
		return types.Property{}, ErrNoImages
	}

	if p.Id == "" {
		sid, err := shortid.Generate()
		if err != nil {
			return types.Property{}, fmt.Errorf("generate property id: %w", err)
		}
		p.Id = "p-" + sid
	}
	if p.Status == "" {
		p.Status = types.ListingAvailable
	}
	p.CreatedAt = c.now()
	p.Views = 0

	// most-recent-first ordering
	c.properties = append([]types.Property{p}, c.properties...)
	c.stats.Incr(stats.PropertiesPublished)

	for i := range c.users {
		renter := &c.users[i]
		if renter.Role == types.RoleRenter && renter.RadarEnabled && !renter.IsBlocked {
			// real push delivery is out of scope; the event is logged and
			// forwarded to the live feed
			c.log.Printf("radar push sent to %s", renter.Name)
			c.stats.Incr(stats.RadarNotifications)
			c.emitLocked(types.Event{Type: types.EventRadar, UserId: renter.Id, Property: &p})
		}
	}

	c.notifyLocked(fmt.Sprintf("Novo imóvel publicado em %s!", p.Location), types.ToastSuccess, p.Images[0])

	return p, wrapPersist(c.persistLocked())
}

// UpdateProperty replaces an existing listing. Owners may only update their
// own listings.
func (c *Controller) UpdateProperty(p types.Property) (types.Property, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return types.Property{}, err
	}

	i, ok := c.findPropertyLocked(p.Id)
	if !ok {
		return types.Property{}, ErrNotFound
	}
	if u.Role != types.RoleAdmin && c.properties[i].OwnerId != u.Id {
		return types.Property{}, ErrForbidden
	}

	if len(p.Images) == 0 {
		return types.Property{}, ErrNoImages
	}

	p.OwnerId = c.properties[i].OwnerId
	p.CreatedAt = c.properties[i].CreatedAt
	c.properties[i] = p

	return p, wrapPersist(c.persistLocked())
}

// DeleteProperty removes a listing. Owners may only delete their own.
func (c *Controller) DeleteProperty(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return err
	}

	i, ok := c.findPropertyLocked(id)
	if !ok {
		return ErrNotFound
	}
	if u.Role != types.RoleAdmin && c.properties[i].OwnerId != u.Id {
		return ErrForbidden
	}

	c.properties = append(c.properties[:i], c.properties[i+1:]...)

	return wrapPersist(c.persistLocked())
}

// IncrementViews bumps a listing's view counter.
func (c *Controller) IncrementViews(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.findPropertyLocked(id)
	if !ok {
		return ErrNotFound
	}

	c.properties[i].Views++

	return wrapPersist(c.persistLocked())
}

// ToggleFavorite flips membership of the property in the session user's
// favorite set. Without a session user it mutates nothing and reports
// ErrAuthRequired, which the caller surfaces as an auth prompt.
func (c *Controller) ToggleFavorite(propertyId string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return false, err
	}

	favs := c.favorites[u.Id]
	for i, f := range favs {
		if f == propertyId {
			c.favorites[u.Id] = append(favs[:i], favs[i+1:]...)
			c.notifyLocked("Removido dos favoritos", types.ToastSuccess, "")
			return false, wrapPersist(c.persistLocked())
		}
	}

	c.favorites[u.Id] = append(favs, propertyId)
	c.notifyLocked("Adicionado aos favoritos", types.ToastSuccess, "")
	return true, wrapPersist(c.persistLocked())
}

// Favorites returns the session user's favorite property ids.
func (c *Controller) Favorites() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return nil, err
	}

	favs := c.favorites[u.Id]
	out := make([]string, len(favs))
	copy(out, favs)
	return out, nil
}
