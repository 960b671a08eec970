package dto

import "time"

// BrandRequest entrada para crear o reemplazar una marca.
// Version es obligatorio al actualizar (control optimista).
type BrandRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Code        string `json:"code" validate:"required,min=1,max=40"`
	Description string `json:"description" validate:"max=500"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Active      *bool  `json:"active"`
	Version     int    `json:"version"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	Active      bool      `json:"active"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarketRequest entrada para crear o reemplazar un mercado.
type MarketRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Code     string `json:"code" validate:"required,min=1,max=40"`
	Region   string `json:"region" validate:"max=120"`
	Currency string `json:"currency" validate:"required,len=3"`
	Active   *bool  `json:"active"`
	Version  int    `json:"version"`
}

// MarketResponse salida de un mercado.
type MarketResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Region    string    `json:"region"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalizationRequest entrada para crear o reemplazar una localización.
type LocalizationRequest struct {
	LanguageCode string `json:"language_code" validate:"required,min=2,max=3"`
	CountryCode  string `json:"country_code" validate:"omitempty,len=2"`
	Currency     string `json:"currency" validate:"required,len=3"`
	DateFormat   string `json:"date_format" validate:"max=40"`
	Timezone     string `json:"timezone" validate:"max=64"`
	IsDefault    bool   `json:"is_default"`
	Version      int    `json:"version"`
}

// LocalizationResponse salida de una localización.
type LocalizationResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	LanguageCode string    `json:"language_code"`
	CountryCode  string    `json:"country_code"`
	Currency     string    `json:"currency"`
	DateFormat   string    `json:"date_format"`
	Timezone     string    `json:"timezone"`
	IsDefault    bool      `json:"is_default"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SettingsListResponse lista de elementos de configuración de un tipo.
type SettingsListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
