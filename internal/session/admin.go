package session

import (
	"fmt"
	"sort"

	"github.com/rentcore/rentcore/internal/seed"
	"github.com/rentcore/rentcore/internal/types"
)

// Admin-only mutations. Capability checks live here, inside the entry
// points, rather than relying on callers to gate access.

// ToggleProperty flips a listing's public visibility.
func (c *Controller) ToggleProperty(id string) (types.Property, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return types.Property{}, err
	}

	i, ok := c.findPropertyLocked(id)
	if !ok {
		return types.Property{}, ErrNotFound
	}

	c.properties[i].IsActive = !c.properties[i].IsActive

	return c.properties[i], wrapPersist(c.persistLocked())
}

// ToggleUserBlock flips an account's blocked flag.
func (c *Controller) ToggleUserBlock(id string) (types.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return types.User{}, err
	}

	i, ok := c.findUserLocked(id)
	if !ok {
		return types.User{}, ErrNotFound
	}

	c.users[i].IsBlocked = !c.users[i].IsBlocked

	return c.users[i], wrapPersist(c.persistLocked())
}

// VerifyUser marks an account as verified. Verification is one-way.
func (c *Controller) VerifyUser(id string) (types.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return types.User{}, err
	}

	i, ok := c.findUserLocked(id)
	if !ok {
		return types.User{}, ErrNotFound
	}

	c.users[i].IsVerified = true

	return c.users[i], wrapPersist(c.persistLocked())
}

// ToggleCity flips whether a city is open for listings.
func (c *Controller) ToggleCity(id string) (types.CityConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return types.CityConfig{}, err
	}

	for i := range c.cities {
		if c.cities[i].Id == id {
			c.cities[i].IsActive = !c.cities[i].IsActive
			return c.cities[i], wrapPersist(c.persistLocked())
		}
	}

	return types.CityConfig{}, ErrNotFound
}

// AddCity appends a city to the catalog.
func (c *Controller) AddCity(city types.CityConfig) (types.CityConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return types.CityConfig{}, err
	}

	if city.Id == "" || city.Name == "" {
		return types.CityConfig{}, fmt.Errorf("city id and name are required")
	}
	for _, existing := range c.cities {
		if existing.Id == city.Id {
			return types.CityConfig{}, ErrCityExists
		}
	}

	c.cities = append(c.cities, city)

	return city, wrapPersist(c.persistLocked())
}

// RemoveCity deletes a city from the catalog. The default city is protected.
func (c *Controller) RemoveCity(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return err
	}

	if id == seed.DefaultCityID {
		return ErrDefaultCity
	}

	for i := range c.cities {
		if c.cities[i].Id == id {
			c.cities = append(c.cities[:i], c.cities[i+1:]...)
			return wrapPersist(c.persistLocked())
		}
	}

	return ErrNotFound
}

// UpdateNeighborhoods replaces the neighborhood catalog, kept sorted.
func (c *Controller) UpdateNeighborhoods(neighborhoods []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return err
	}

	out := make([]string, len(neighborhoods))
	copy(out, neighborhoods)
	sort.Strings(out)
	c.neighborhoods = out

	return wrapPersist(c.persistLocked())
}
