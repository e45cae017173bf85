package types

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleRenter Role = "renter"
)

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingRented    ListingStatus = "rented"
	ListingPending   ListingStatus = "pending"
)

type ChatStatus string

const (
	ChatOpen ChatStatus = "open"
	// ChatConcluded is a defined terminal state. No operation currently
	// produces it; it exists so persisted snapshots containing it still
	// round-trip.
	ChatConcluded ChatStatus = "concluded"
)

type ContractStatus string

const (
	ContractDraft  ContractStatus = "draft"
	ContractSigned ContractStatus = "signed"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
)

type User struct {
	Id               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Role             Role      `json:"role"`
	Avatar           string    `json:"avatar,omitempty"`
	IsVerified       bool      `json:"is_verified"`
	IsBlocked        bool      `json:"is_blocked"`
	PasswordHash     string    `json:"password_hash,omitempty"`
	Cpf              string    `json:"cpf,omitempty"`
	BirthDate        string    `json:"birth_date,omitempty"`
	FullAddress      string    `json:"full_address,omitempty"`
	MonthlyIncome    string    `json:"monthly_income,omitempty"`
	PixKey           string    `json:"pix_key,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	PushEnabled      bool      `json:"push_enabled"`
	RadarEnabled     bool      `json:"radar_enabled"`
}

type Property struct {
	Id          string        `json:"id"`
	OwnerId     string        `json:"owner_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Currency    string        `json:"currency"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	CityId      string        `json:"city_id"`
	Location    string        `json:"location"`
	Address     string        `json:"address,omitempty"`
	Type        string        `json:"type"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	Area        int           `json:"area"`
	Images      []string      `json:"images"`
	Status      ListingStatus `json:"status"`
	IsActive    bool          `json:"is_active"`
	IsFeatured  bool          `json:"is_featured"`
	Views       int           `json:"views"`
	CreatedAt   time.Time     `json:"created_at"`
	Features    []string      `json:"features,omitempty"`
	Reports     int           `json:"reports,omitempty"`
}

type ChatMessage struct {
	Id        string    `json:"id"`
	SenderId  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Chat struct {
	Id         string        `json:"id"`
	PropertyId string        `json:"property_id"`
	RenterId   string        `json:"renter_id"`
	OwnerId    string        `json:"owner_id"`
	Messages   []ChatMessage `json:"messages"`
	LastUpdate time.Time     `json:"last_update"`
	Status     ChatStatus    `json:"status"`
}

type TenantData struct {
	FullName   string `json:"full_name"`
	Cpf        string `json:"cpf"`
	Rg         string `json:"rg"`
	Profession string `json:"profession"`
	Email      string `json:"email"`
}

type ContractSettings struct {
	DurationMonths  int     `json:"duration_months"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	RentValue       float64 `json:"rent_value"`
	AdditionalNotes string  `json:"additional_notes,omitempty"`
}

// Contract captures tenant data and settings at creation time. Later edits
// to the underlying User records do not affect an existing contract.
type Contract struct {
	Id         string           `json:"id"`
	PropertyId string           `json:"property_id"`
	RenterId   string           `json:"renter_id"`
	OwnerId    string           `json:"owner_id"`
	TenantData TenantData       `json:"tenant_data"`
	Settings   ContractSettings `json:"contract_settings"`
	Status     ContractStatus   `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

type CityConfig struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Region   string `json:"region"`
	IsActive bool   `json:"is_active"`
}

// Toast is an ephemeral notification. It carries no persisted state and
// removes itself after a fixed delay.
type Toast struct {
	Id        int64     `json:"id"`
	Text      string    `json:"text"`
	Kind      ToastKind `json:"kind"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	EventToast   = "toast"
	EventMessage = "message"
	EventRadar   = "radar"
)

// Event is a single entry on the live notification feed.
type Event struct {
	Type     string       `json:"type"`
	Toast    *Toast       `json:"toast,omitempty"`
	ChatId   string       `json:"chat_id,omitempty"`
	Message  *ChatMessage `json:"message,omitempty"`
	Property *Property    `json:"property,omitempty"`
	UserId   string       `json:"user_id,omitempty"`
}

// ChatID derives the composite chat key for a property/renter pair. It is a
// pure function of the two ids, so at most one chat can exist per pair and
// storage backends can use the result directly as a lookup key.
func ChatID(propertyID, renterID string) string {
	return propertyID + "-" + renterID
}
