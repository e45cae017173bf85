// Package seed holds the built-in demo records used whenever a persisted
// snapshot is missing or unreadable.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentcore/rentcore/internal/types"
)

// DefaultCityID is the launch city. It is protected from removal.
const DefaultCityID = "vilhena-ro"

// Demo credentials accepted by the seeded accounts.
const (
	DemoOwnerPassword  = "dono123"
	DemoAdminPassword  = "admin123"
	DemoRenterPassword = "123456"
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("seed: hash password: " + err.Error())
	}
	return string(hash)
}

func Users() []types.User {
	return []types.User{
		{
			Id:               "u1",
			Name:             "Ricardo Silva",
			Email:            "ricardo@vilhena.com.br",
			Phone:            "(69) 98400-0000",
			Role:             types.RoleOwner,
			Avatar:           "https://picsum.photos/id/64/100/100",
			IsVerified:       true,
			PasswordHash:     mustHash(DemoOwnerPassword),
			RegistrationDate: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Id:               "adm1",
			Name:             "Equipe Admin",
			Email:            "admin@alugaai.com.br",
			Phone:            "(69) 3321-0000",
			Role:             types.RoleAdmin,
			Avatar:           "https://picsum.photos/id/1/100/100",
			IsVerified:       true,
			PasswordHash:     mustHash(DemoAdminPassword),
			RegistrationDate: time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			Id:               "u_test",
			Name:             "João Inquilino",
			Email:            "inquilino@teste.com",
			Phone:            "(69) 99999-8888",
			Role:             types.RoleRenter,
			Avatar:           "https://picsum.photos/id/102/100/100",
			IsVerified:       true,
			PasswordHash:     mustHash(DemoRenterPassword),
			RegistrationDate: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC),
			RadarEnabled:     true,
		},
	}
}

func Properties() []types.Property {
	return []types.Property{
		{
			Id:          "p1",
			OwnerId:     "u1",
			Title:       "Loft Moderno no Centro de Vilhena",
			Description: "Um belo loft de conceito aberto no coração de Vilhena. Pé direito alto, janelas amplas e acabamento de primeira linha.",
			Price:       1850,
			Currency:    "BRL",
			City:        "Vilhena",
			State:       "RO",
			CityId:      DefaultCityID,
			Location:    "Centro",
			Address:     "Rua 737, numero 1371, Cristo Rei, Vilhena - RO",
			Type:        "loft",
			Bedrooms:    1,
			Bathrooms:   1,
			Area:        65,
			Images:      []string{"https://images.unsplash.com/photo-1536376074432-bf121770b440?auto=format&fit=crop&q=80&w=800"},
			Status:      types.ListingAvailable,
			IsActive:    true,
			IsFeatured:  true,
			Views:       1240,
			CreatedAt:   time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
			Features:    []string{"Lavanderia", "Ar-condicionado", "Aceita Pets", "Mobiliado"},
		},
		{
			Id:          "p3",
			OwnerId:     "u1",
			Title:       "Sala Empresarial no Edifício Master",
			Description: "Sala comercial pronta para uso. Ideal para consultórios, escritórios de advocacia ou tecnologia. Localização premium com recepção.",
			Price:       2400,
			Currency:    "BRL",
			City:        "Vilhena",
			State:       "RO",
			CityId:      DefaultCityID,
			Location:    "Centro",
			Address:     "Av. Major Amarante, 1200 - Centro, Vilhena",
			Type:        "commercial_room",
			Bedrooms:    0,
			Bathrooms:   1,
			Area:        45,
			Images:      []string{"https://images.unsplash.com/photo-1497366754035-f200968a6e72?auto=format&fit=crop&q=80&w=800"},
			Status:      types.ListingAvailable,
			IsActive:    true,
			IsFeatured:  true,
			Views:       520,
			CreatedAt:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Features:    []string{"Ar Central", "Segurança 24h", "Internet Fibra", "Vaga Privativa"},
		},
		{
			Id:          "p4",
			OwnerId:     "u1",
			Title:       "Quitinete Prática no Jardim Eldorado",
			Description: "Quitinete individual com excelente custo-benefício. Ambiente seguro, perto de mercados e faculdade.",
			Price:       850,
			Currency:    "BRL",
			City:        "Vilhena",
			State:       "RO",
			CityId:      DefaultCityID,
			Location:    "Jardim Eldorado",
			Address:     "Rua J-22, Jardim Eldorado, Vilhena",
			Type:        "kitchenette",
			Bedrooms:    1,
			Bathrooms:   1,
			Area:        32,
			Images:      []string{"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?auto=format&fit=crop&q=80&w=800"},
			Status:      types.ListingAvailable,
			IsActive:    true,
			Views:       2100,
			CreatedAt:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			Features:    []string{"Água Inclusa", "WIFI Coletivo", "Câmeras de Segurança"},
		},
		{
			Id:          "p2",
			OwnerId:     "u2",
			Title:       "Casa Ampla no Jardim América",
			Description: "Excelente casa residencial em bairro tranquilo de Vilhena. Quintal grande e área gourmet.",
			Price:       2800,
			Currency:    "BRL",
			City:        "Vilhena",
			State:       "RO",
			CityId:      DefaultCityID,
			Location:    "Jardim América",
			Address:     "Av. Brigadeiro Eduardo Gomes, Vilhena - RO",
			Type:        "house",
			Bedrooms:    3,
			Bathrooms:   2,
			Area:        150,
			Images:      []string{"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&q=80&w=800"},
			Status:      types.ListingAvailable,
			IsActive:    true,
			Views:       850,
			CreatedAt:   time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC),
			Features:    []string{"Garagem Coberta", "Churrasqueira", "Portão Eletrônico"},
		},
	}
}

func Contracts() []types.Contract {
	return []types.Contract{
		{
			Id:         "cont-001",
			PropertyId: "p1",
			RenterId:   "u_test",
			OwnerId:    "u1",
			TenantData: types.TenantData{
				FullName:   "João Inquilino de Teste",
				Cpf:        "123.456.789-00",
				Rg:         "987654-SSP/RO",
				Profession: "Empresário",
				Email:      "inquilino@teste.com",
			},
			Settings: types.ContractSettings{
				DurationMonths: 12,
				StartDate:      "2024-01-01",
				EndDate:        "2025-01-01",
				RentValue:      1850,
			},
			Status:    types.ContractDraft,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func Cities() []types.CityConfig {
	return []types.CityConfig{
		{Id: DefaultCityID, Name: "Vilhena", State: "RO", Region: "Norte", IsActive: true},
		{Id: "porto-velho-ro", Name: "Porto Velho", State: "RO", Region: "Norte"},
		{Id: "cuiaba-mt", Name: "Cuiabá", State: "MT", Region: "Centro-Oeste"},
		{Id: "sao-paulo-sp", Name: "São Paulo", State: "SP", Region: "Sudeste"},
		{Id: "curitiba-pr", Name: "Curitiba", State: "PR", Region: "Sul"},
		{Id: "salvador-ba", Name: "Salvador", State: "BA", Region: "Nordeste"},
	}
}

func Neighborhoods() []string {
	return []string{
		"5º BEC", "Alto Alegre", "Assossete", "BNH", "Bela Vista",
		"Bodanese", "Centro", "Cohab", "Cristo Rei", "Greenville",
		"Industrial", "Jardim América", "Jardim Araucária", "Jardim Eldorado",
		"Jardim Social", "Maria Moura", "Nova Vilhena", "Parque Cidade Jardim",
		"Parque São Paulo", "Residencial Alvorada", "Residencial Moises de Freitas",
		"Rural", "Setor 19", "Solar de Vilhena", "São José", "Tancredo Neves",
	}
}
