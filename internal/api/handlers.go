package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rentcore/rentcore/internal/session"
	"github.com/rentcore/rentcore/internal/types"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ToggleFavoriteRequest struct {
	PropertyId string `json:"property_id"`
}

type ToggleFavoriteResponse struct {
	PropertyId string `json:"property_id"`
	Favorite   bool   `json:"favorite"`
}

type SendMessageRequest struct {
	PropertyId string `json:"property_id"`
	RenterId   string `json:"renter_id"`
	OwnerId    string `json:"owner_id"`
	Text       string `json:"text"`
}

type CreateContractRequest struct {
	PropertyId string                 `json:"property_id"`
	RenterId   string                 `json:"renter_id"`
	TenantData types.TenantData       `json:"tenant_data"`
	Settings   types.ContractSettings `json:"contract_settings"`
}

type IdRequest struct {
	Id string `json:"id"`
}

type SetRadarRequest struct {
	Enabled bool `json:"enabled"`
}

type UpdateNeighborhoodsRequest struct {
	Neighborhoods []string `json:"neighborhoods"`
}

// sanitizeUser strips credentials before a user record leaves the API.
func sanitizeUser(u types.User) types.User {
	u.PasswordHash = ""
	return u
}

func (s *RentcoreApp) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.session.Register(session.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     types.Role(req.Role),
	})
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.createJwtForSession(user.Id, defaultJwtExpiration)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))

	s.writeJson(w, http.StatusCreated, sanitizeUser(user))
}

func (s *RentcoreApp) login(w http.ResponseWriter, r *http.Request) {
	var lr LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&lr); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if lr.Email == "" || lr.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.session.Login(lr.Email, lr.Password)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.createJwtForSession(user.Id, defaultJwtExpiration)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))

	s.writeJson(w, http.StatusOK, sanitizeUser(user))
}

func (s *RentcoreApp) sessionUser(w http.ResponseWriter, _ *http.Request) {
	user := s.session.CurrentUser()
	if user == nil {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, sanitizeUser(*user))
}

func (s *RentcoreApp) logout(w http.ResponseWriter, _ *http.Request) {
	if err := s.session.Logout(); err != nil {
		s.log.Println("logout:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// instruct browser to delete cookie by overwriting it with an expired one
	http.SetCookie(w, createJwtCookie("", -time.Hour))
	w.WriteHeader(http.StatusNoContent)
}

func (s *RentcoreApp) listProperties(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, http.StatusOK, s.session.PublicProperties())
}

func (s *RentcoreApp) ownProperties(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.session.PropertiesByOwner(userId))
}

func (s *RentcoreApp) createProperty(w http.ResponseWriter, r *http.Request) {
	var prop types.Property
	if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	created, err := s.session.AddProperty(prop)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, created)
}

func (s *RentcoreApp) updateProperty(w http.ResponseWriter, r *http.Request) {
	var prop types.Property
	if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	updated, err := s.session.UpdateProperty(prop)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, updated)
}

func (s *RentcoreApp) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.session.DeleteProperty(id); err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}

func (s *RentcoreApp) incrementViews(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.session.IncrementViews(id); err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}

func (s *RentcoreApp) listCities(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, http.StatusOK, s.session.ActiveCities())
}

func (s *RentcoreApp) listNeighborhoods(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, http.StatusOK, s.session.Neighborhoods())
}

func (s *RentcoreApp) listFavorites(w http.ResponseWriter, _ *http.Request) {
	favorites, err := s.session.Favorites()
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, favorites)
}

func (s *RentcoreApp) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.PropertyId == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	favorite, err := s.session.ToggleFavorite(req.PropertyId)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, ToggleFavoriteResponse{
		PropertyId: req.PropertyId,
		Favorite:   favorite,
	})
}

func (s *RentcoreApp) listChats(w http.ResponseWriter, _ *http.Request) {
	chats, err := s.session.Chats()
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, chats)
}

func (s *RentcoreApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.PropertyId == "" || req.RenterId == "" || req.OwnerId == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	chat, err := s.session.SendMessage(req.PropertyId, req.RenterId, req.OwnerId, req.Text)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, chat)
}

func (s *RentcoreApp) listContracts(w http.ResponseWriter, _ *http.Request) {
	contracts, err := s.session.Contracts()
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, contracts)
}

func (s *RentcoreApp) createContract(w http.ResponseWriter, r *http.Request) {
	var req CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.PropertyId == "" || req.RenterId == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	contract, err := s.session.CreateContract(session.CreateContractParams{
		PropertyId: req.PropertyId,
		RenterId:   req.RenterId,
		TenantData: req.TenantData,
		Settings:   req.Settings,
	})
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, contract)
}

func (s *RentcoreApp) setRadar(w http.ResponseWriter, r *http.Request) {
	var req SetRadarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.session.SetRadar(req.Enabled); err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}

func (s *RentcoreApp) adminToggleProperty(w http.ResponseWriter, r *http.Request) {
	var req IdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	prop, err := s.session.ToggleProperty(req.Id)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, prop)
}

func (s *RentcoreApp) adminToggleUserBlock(w http.ResponseWriter, r *http.Request) {
	var req IdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.session.ToggleUserBlock(req.Id)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, sanitizeUser(user))
}

func (s *RentcoreApp) adminVerifyUser(w http.ResponseWriter, r *http.Request) {
	var req IdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.session.VerifyUser(req.Id)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, sanitizeUser(user))
}

func (s *RentcoreApp) adminListUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := s.session.Users()
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	out := make([]types.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}

	s.writeJson(w, http.StatusOK, out)
}

func (s *RentcoreApp) adminAddCity(w http.ResponseWriter, r *http.Request) {
	var city types.CityConfig
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	created, err := s.session.AddCity(city)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, created)
}

func (s *RentcoreApp) adminRemoveCity(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.session.RemoveCity(id); err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}

func (s *RentcoreApp) adminToggleCity(w http.ResponseWriter, r *http.Request) {
	var req IdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Id == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	city, err := s.session.ToggleCity(req.Id)
	if err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, city)
}

func (s *RentcoreApp) adminUpdateNeighborhoods(w http.ResponseWriter, r *http.Request) {
	var req UpdateNeighborhoodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.session.UpdateNeighborhoods(req.Neighborhoods); err != nil {
		errResp := fromSessionError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.session.Neighborhoods())
}

func (s *RentcoreApp) askAssistant(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	answer, err := s.assistant.Ask(r.Context(), query)
	if err != nil {
		s.log.Println("assistant:", err)
		errResp := NewServiceUnavailableError()
		errResp.Message = err.Error()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, answer)
}
