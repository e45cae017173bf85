package session

import (
	"fmt"
	"strings"

	"github.com/teris-io/shortid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentcore/rentcore/internal/types"
)

type RegisterParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     types.Role
}

// Login verifies credentials and replaces the session user.
func (c *Controller) Login(email, password string) (types.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))

	var found *types.User
	for i := range c.users {
		if strings.EqualFold(c.users[i].Email, email) {
			found = &c.users[i]
			break
		}
	}
	if found == nil {
		return types.User{}, ErrInvalidCredentials
	}

	if found.IsBlocked {
		return types.User{}, ErrBlocked
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return types.User{}, ErrInvalidCredentials
	}

	u := *found
	c.user = &u

	return u, wrapPersist(c.persistLocked())
}

// Register creates an owner or renter account and logs it in.
func (c *Controller) Register(params RegisterParams) (types.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if params.Name == "" || params.Email == "" || params.Password == "" {
		return types.User{}, fmt.Errorf("name, email and password are required")
	}
	if params.Role != types.RoleOwner && params.Role != types.RoleRenter {
		return types.User{}, ErrForbidden
	}

	for i := range c.users {
		if strings.EqualFold(c.users[i].Email, params.Email) {
			return types.User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	sid, err := shortid.Generate()
	if err != nil {
		return types.User{}, fmt.Errorf("generate user id: %w", err)
	}

	u := types.User{
		Id:               "u-" + sid,
		Name:             params.Name,
		Email:            strings.ToLower(strings.TrimSpace(params.Email)),
		Phone:            params.Phone,
		Role:             params.Role,
		PasswordHash:     string(hash),
		RegistrationDate: c.now(),
	}

	c.users = append(c.users, u)
	sessionUser := u
	c.user = &sessionUser

	return u, wrapPersist(c.persistLocked())
}

// Logout clears the session user, removes it from the store and emits an
// informational toast.
func (c *Controller) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = nil
	if err := c.store.ClearSession(); err != nil {
		return err
	}

	c.notifyLocked("Sessão encerrada.", types.ToastInfo, "")
	return nil
}

// SetRadar flips the session renter's opt-in for new-listing notifications.
func (c *Controller) SetRadar(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return err
	}
	if u.Role != types.RoleRenter {
		return ErrForbidden
	}

	u.RadarEnabled = enabled
	if i, ok := c.findUserLocked(u.Id); ok {
		c.users[i].RadarEnabled = enabled
	}

	return wrapPersist(c.persistLocked())
}

// Users lists all accounts. Admin only.
func (c *Controller) Users() ([]types.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireAdminLocked(); err != nil {
		return nil, err
	}

	out := make([]types.User, len(c.users))
	copy(out, c.users)
	return out, nil
}
