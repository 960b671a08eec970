package entity

import "time"

// Brand marca de la organización.
type Brand struct {
	ID          string
	Name        string
	Code        string
	Description string
	LogoURL     string
	Active      bool
	Version     int // control de concurrencia optimista
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Market mercado donde opera la organización.
type Market struct {
	ID        string
	Name      string
	Code      string
	Region    string
	Currency  string
	Active    bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Localization configuración regional (idioma, moneda, formatos).
type Localization struct {
	ID           string
	LanguageCode string // ej. "es"
	CountryCode  string // ej. "CO"
	Currency     string
	DateFormat   string
	Timezone     string
	IsDefault    bool
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Code devuelve el identificador único de la localización (ej. "es-CO").
func (l Localization) Code() string {
	if l.CountryCode == "" {
		return l.LanguageCode
	}
	return l.LanguageCode + "-" + l.CountryCode
}
