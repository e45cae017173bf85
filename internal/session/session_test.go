package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcore/rentcore/internal/seed"
	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/store"
	"github.com/rentcore/rentcore/internal/testutil"
	"github.com/rentcore/rentcore/internal/types"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()

	st := store.NewStore(testutil.TestLogger(t), store.NewMemBackend())
	return NewController(testutil.TestLogger(t), st, stats.NopProvider{})
}

func loginAs(t *testing.T, c *Controller, email, password string) types.User {
	t.Helper()

	u, err := c.Login(email, password)
	require.NoError(t, err)
	return u
}

func TestLogin(t *testing.T) {
	tt := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantId   string
	}{
		{
			name:     "owner",
			email:    "ricardo@vilhena.com.br",
			password: seed.DemoOwnerPassword,
			wantId:   "u1",
		},
		{
			name:     "email is case insensitive",
			email:    "RICARDO@vilhena.com.BR",
			password: seed.DemoOwnerPassword,
			wantId:   "u1",
		},
		{
			name:     "wrong password",
			email:    "ricardo@vilhena.com.br",
			password: "nope",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@vilhena.com.br",
			password: seed.DemoOwnerPassword,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(t)

			u, err := c.Login(tc.email, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, c.CurrentUser())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantId, u.Id)
			require.NotNil(t, c.CurrentUser())
			assert.Equal(t, tc.wantId, c.CurrentUser().Id)
		})
	}
}

func TestLogin_blockedUser(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "admin@alugaai.com.br", seed.DemoAdminPassword)
	_, err := c.ToggleUserBlock("u_test")
	require.NoError(t, err)

	_, err = c.Login("inquilino@teste.com", seed.DemoRenterPassword)
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestRegister(t *testing.T) {
	c := newTestController(t)

	u, err := c.Register(RegisterParams{
		Name:     "Maria Souza",
		Email:    "Maria@Example.com",
		Password: "secret",
		Role:     types.RoleOwner,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.Id)
	assert.Equal(t, "maria@example.com", u.Email)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "secret", u.PasswordHash)

	// registration logs the new account in
	require.NotNil(t, c.CurrentUser())
	assert.Equal(t, u.Id, c.CurrentUser().Id)

	_, err = c.Register(RegisterParams{
		Name:     "Maria Again",
		Email:    "maria@example.com",
		Password: "secret",
		Role:     types.RoleRenter,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_adminRoleRejected(t *testing.T) {
	c := newTestController(t)

	_, err := c.Register(RegisterParams{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "secret",
		Role:     types.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLogout(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)
	require.NotNil(t, c.CurrentUser())

	require.NoError(t, c.Logout())
	assert.Nil(t, c.CurrentUser())

	toasts := c.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Sessão encerrada.", toasts[0].Text)
	assert.Equal(t, types.ToastInfo, toasts[0].Kind)
}

func TestPublicProperties_excludesInactive(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "admin@alugaai.com.br", seed.DemoAdminPassword)
	prop, err := c.ToggleProperty("p1")
	require.NoError(t, err)
	require.False(t, prop.IsActive)

	for _, p := range c.PublicProperties() {
		assert.NotEqual(t, "p1", p.Id)
	}
	// the full catalog still carries it
	var found bool
	for _, p := range c.Properties() {
		if p.Id == "p1" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAddProperty(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)

	events, cancel := c.Subscribe()
	defer cancel()

	created, err := c.AddProperty(types.Property{
		Title:    "Casa Nova",
		Location: "Centro",
		Images:   []string{"https://example.com/1.jpg"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "u1", created.OwnerId)
	assert.Equal(t, types.ListingAvailable, created.Status)
	assert.Zero(t, created.Views)

	// newest listing goes to the front
	props := c.Properties()
	require.NotEmpty(t, props)
	assert.Equal(t, created.Id, props[0].Id)

	// the seeded renter opted into the radar and gets notified
	var radar *types.Event
	for ev := range events {
		if ev.Type == types.EventRadar {
			e := ev
			radar = &e
			break
		}
	}
	require.NotNil(t, radar)
	assert.Equal(t, "u_test", radar.UserId)
	require.NotNil(t, radar.Property)
	assert.Equal(t, created.Id, radar.Property.Id)
}

func TestAddProperty_requiresImage(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)

	_, err := c.AddProperty(types.Property{Title: "Sem Foto"})
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestAddProperty_capabilities(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		c := newTestController(t)
		_, err := c.AddProperty(types.Property{Images: []string{"x"}})
		assert.ErrorIs(t, err, ErrAuthRequired)
	})

	t.Run("renter", func(t *testing.T) {
		c := newTestController(t)
		loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)
		_, err := c.AddProperty(types.Property{Images: []string{"x"}})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner publishing for someone else", func(t *testing.T) {
		c := newTestController(t)
		loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)
		_, err := c.AddProperty(types.Property{OwnerId: "u2", Images: []string{"x"}})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUpdateProperty(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)

	updated, err := c.UpdateProperty(types.Property{
		Id:      "p1",
		Title:   "Loft Renovado",
		OwnerId: "u_test", // must not take effect
		Images:  []string{"https://example.com/1.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Loft Renovado", updated.Title)
	assert.Equal(t, "u1", updated.OwnerId)
	assert.False(t, updated.CreatedAt.IsZero())

	// p2 belongs to another owner
	_, err = c.UpdateProperty(types.Property{Id: "p2", Images: []string{"x"}})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteProperty(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)

	require.NoError(t, c.DeleteProperty("p1"))
	_, ok := func() (int, bool) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.findPropertyLocked("p1")
	}()
	assert.False(t, ok)

	assert.ErrorIs(t, c.DeleteProperty("p2"), ErrForbidden)
	assert.ErrorIs(t, c.DeleteProperty("missing"), ErrNotFound)
}

func TestIncrementViews(t *testing.T) {
	c := newTestController(t)

	before := c.Properties()[0].Views
	id := c.Properties()[0].Id

	require.NoError(t, c.IncrementViews(id))
	assert.Equal(t, before+1, c.Properties()[0].Views)

	assert.ErrorIs(t, c.IncrementViews("missing"), ErrNotFound)
}

func TestToggleFavorite(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)

	on, err := c.ToggleFavorite("p1")
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := c.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, favs)

	// toggling again removes it
	on, err = c.ToggleFavorite("p1")
	require.NoError(t, err)
	assert.False(t, on)

	favs, err = c.Favorites()
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestToggleFavorite_noSession(t *testing.T) {
	c := newTestController(t)

	_, err := c.ToggleFavorite("p1")
	assert.ErrorIs(t, err, ErrAuthRequired)

	// nothing was recorded for any user
	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, c.favorites)
}

func TestSendMessage(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)

	chat, err := c.SendMessage("p1", "u_test", "u1", "Olá, ainda está disponível?")
	require.NoError(t, err)

	assert.Equal(t, types.ChatID("p1", "u_test"), chat.Id)
	assert.Equal(t, types.ChatOpen, chat.Status)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, "u_test", chat.Messages[0].SenderId)

	// a second message appends to the same chat
	chat, err = c.SendMessage("p1", "u_test", "u1", "Posso visitar amanhã?")
	require.NoError(t, err)
	assert.Len(t, chat.Messages, 2)

	chats, err := c.Chats()
	require.NoError(t, err)
	require.Len(t, chats, 1)
}

func TestSendMessage_frontOrdering(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)

	_, err := c.SendMessage("p1", "u_test", "u1", "primeira conversa")
	require.NoError(t, err)
	_, err = c.SendMessage("p4", "u_test", "u1", "segunda conversa")
	require.NoError(t, err)

	chats, err := c.Chats()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, types.ChatID("p4", "u_test"), chats[0].Id)

	// touching the older chat moves it back to the front
	_, err = c.SendMessage("p1", "u_test", "u1", "ainda estou interessado")
	require.NoError(t, err)

	chats, err = c.Chats()
	require.NoError(t, err)
	assert.Equal(t, types.ChatID("p1", "u_test"), chats[0].Id)
}

func TestSendMessage_lastUpdateNeverDecreases(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	chat, err := c.SendMessage("p1", "u_test", "u1", "oi")
	require.NoError(t, err)
	assert.Equal(t, base, chat.LastUpdate)

	// clock goes backwards
	c.now = func() time.Time { return base.Add(-time.Hour) }

	chat, err = c.SendMessage("p1", "u_test", "u1", "oi de novo")
	require.NoError(t, err)
	assert.Equal(t, base, chat.LastUpdate)
	assert.Equal(t, base, chat.Messages[1].Timestamp)
}

func TestSendMessage_validation(t *testing.T) {
	c := newTestController(t)

	_, err := c.SendMessage("p1", "u_test", "u1", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessage_guestFallsBackToRenter(t *testing.T) {
	c := newTestController(t)

	chat, err := c.SendMessage("p1", "guest-42", "u1", "tenho interesse")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, "guest-42", chat.Messages[0].SenderId)
}

func TestChats_visibility(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)
	_, err := c.SendMessage("p1", "u_test", "u1", "oi")
	require.NoError(t, err)

	// another renter's chat
	_, err = c.SendMessage("p1", "other-renter", "u1", "oi também")
	require.NoError(t, err)

	chats, err := c.Chats()
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "u_test", chats[0].RenterId)

	// admins see everything
	loginAs(t, c, "admin@alugaai.com.br", seed.DemoAdminPassword)
	chats, err = c.Chats()
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestCreateContract(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)

	contract, err := c.CreateContract(CreateContractParams{
		PropertyId: "p1",
		RenterId:   "u_test",
		TenantData: types.TenantData{FullName: "João Inquilino"},
		Settings:   types.ContractSettings{DurationMonths: 12, RentValue: 1850},
	})
	require.NoError(t, err)

	assert.Contains(t, contract.Id, "cont-")
	assert.Equal(t, "u1", contract.OwnerId)
	assert.Equal(t, types.ContractDraft, contract.Status)

	// p2 belongs to another owner
	_, err = c.CreateContract(CreateContractParams{PropertyId: "p2", RenterId: "u_test"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestContracts_visibility(t *testing.T) {
	c := newTestController(t)

	// seeded contract cont-001 is between u1 and u_test
	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)
	contracts, err := c.Contracts()
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "cont-001", contracts[0].Id)
}

func TestSetRadar(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)
	require.NoError(t, c.SetRadar(false))
	assert.False(t, c.CurrentUser().RadarEnabled)

	loginAs(t, c, "ricardo@vilhena.com.br", seed.DemoOwnerPassword)
	assert.ErrorIs(t, c.SetRadar(true), ErrForbidden)
}

func TestAdminCapabilities(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "inquilino@teste.com", seed.DemoRenterPassword)

	_, err := c.ToggleProperty("p1")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = c.ToggleUserBlock("u1")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = c.Users()
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, c.RemoveCity("cuiaba-mt"), ErrForbidden)
	assert.ErrorIs(t, c.UpdateNeighborhoods(nil), ErrForbidden)
}

func TestVerifyUser(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "admin@alugaai.com.br", seed.DemoAdminPassword)

	u, err := c.ToggleUserBlock("u_test")
	require.NoError(t, err)
	assert.True(t, u.IsBlocked)

	u, err = c.VerifyUser("u_test")
	require.NoError(t, err)
	assert.True(t, u.IsVerified)

	// verification stays set
	u, err = c.VerifyUser("u_test")
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
}

func TestCities(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "admin@alugaai.com.br", seed.DemoAdminPassword)

	t.Run("default city is protected", func(t *testing.T) {
		assert.ErrorIs(t, c.RemoveCity(seed.DefaultCityID), ErrDefaultCity)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, c.RemoveCity("cuiaba-mt"))
		assert.ErrorIs(t, c.RemoveCity("cuiaba-mt"), ErrNotFound)
	})

	t.Run("add duplicate", func(t *testing.T) {
		_, err := c.AddCity(types.CityConfig{Id: seed.DefaultCityID, Name: "Vilhena"})
		assert.ErrorIs(t, err, ErrCityExists)
	})

	t.Run("toggle", func(t *testing.T) {
		city, err := c.ToggleCity("porto-velho-ro")
		require.NoError(t, err)
		assert.True(t, city.IsActive)

		var active []string
		for _, city := range c.ActiveCities() {
			active = append(active, city.Id)
		}
		assert.Contains(t, active, "porto-velho-ro")
	})
}

func TestUpdateNeighborhoods_sorted(t *testing.T) {
	c := newTestController(t)

	loginAs(t, c, "admin@alugaai.com.br", seed.DemoAdminPassword)

	require.NoError(t, c.UpdateNeighborhoods([]string{"Centro", "Alto Alegre", "Bela Vista"}))
	assert.Equal(t, []string{"Alto Alegre", "Bela Vista", "Centro"}, c.Neighborhoods())
}

func TestNotify_expiry(t *testing.T) {
	c := newTestController(t)
	c.toastTTL = 20 * time.Millisecond

	toast := c.Notify("olá", types.ToastInfo, "")
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, toast.Id, c.Toasts()[0].Id)

	assert.Eventually(t, func() bool {
		return len(c.Toasts()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotify_distinctIds(t *testing.T) {
	c := newTestController(t)

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	a := c.Notify("um", types.ToastInfo, "")
	b := c.Notify("dois", types.ToastInfo, "")
	assert.NotEqual(t, a.Id, b.Id)
}

func TestSubscribe_cancel(t *testing.T) {
	c := newTestController(t)

	events, cancel := c.Subscribe()
	cancel()

	_, open := <-events
	assert.False(t, open)

	// canceling twice is safe
	cancel()
}
