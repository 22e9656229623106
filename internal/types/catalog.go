package types

import (
	"time"

	"github.com/google/uuid"
)

type Country struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Currency struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Symbol    *string   `json:"symbol,omitempty"`
	CountryID *uuid.UUID `json:"country_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrencyRow is a currency flattened with its related country.
type CurrencyRow struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Symbol      *string    `json:"symbol"`
	CountryID   *uuid.UUID `json:"countryId"`
	CountryName *string    `json:"countryName"`
	CountryCode *string    `json:"countryCode"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Brand struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CountryID *uuid.UUID `json:"country_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// BrandRow is a brand flattened with its origin country.
type BrandRow struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	OriginCountryID   *uuid.UUID `json:"originCountryId"`
	OriginCountry     *string    `json:"originCountry"`
	OriginCountryCode *string    `json:"originCountryCode"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	DeletedAt         *time.Time `json:"deletedAt"`
}

type Watch struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	BrandID         *uuid.UUID `json:"brand_id,omitempty"`
	ReferenceNumber string     `json:"reference_number"`
	RetailPrice     int64      `json:"retail_price"`
	CurrencyID      *uuid.UUID `json:"currency_id,omitempty"`
	ReleaseDate     time.Time  `json:"release_date"`
	CountryID       *uuid.UUID `json:"country_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// WatchRow is a watch flattened with its brand, currency and country.
type WatchRow struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	ReferenceNumber string     `json:"referenceNumber"`
	RetailPrice     int64      `json:"retailPrice"`
	ReleaseDate     time.Time  `json:"releaseDate"`
	BrandID         *uuid.UUID `json:"brandId"`
	BrandName       *string    `json:"brandName"`
	CurrencyID      *uuid.UUID `json:"currencyId"`
	CurrencyName    *string    `json:"currencyName"`
	CountryID       *uuid.UUID `json:"countryId"`
	CountryName     *string    `json:"countryName"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// WatchFilter carries the optional search predicates for listing watches.
// Zero values mean "not filtered".
type WatchFilter struct {
	Name            string
	Brand           string
	Country         string
	ReferenceNumber string
	PriceMin        *int64
	PriceMax        *int64
	Page            int
	Limit           int
}

// PageMeta describes a paginated result set.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Paginated wraps a page of rows with its meta block.
type Paginated[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type CreateCountryRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreateCurrencyRequest struct {
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Symbol    *string    `json:"symbol,omitempty"`
	CountryID *uuid.UUID `json:"countryId,omitempty"`
}

type UpdateCurrencyParams struct {
	Name   *string `json:"name,omitempty"`
	Code   *string `json:"code,omitempty"`
	Symbol *string `json:"symbol,omitempty"`
}

type CreateBrandRequest struct {
	Name      string     `json:"name"`
	CountryID *uuid.UUID `json:"countryId,omitempty"`
}

type UpdateBrandParams struct {
	Name      *string    `json:"name,omitempty"`
	CountryID *uuid.UUID `json:"countryId,omitempty"`
}

type CreateWatchRequest struct {
	Name            string     `json:"name"`
	ReferenceNumber string     `json:"referenceNumber"`
	RetailPrice     int64      `json:"retailPrice"`
	CurrencyID      *uuid.UUID `json:"currencyId,omitempty"`
	ReleaseDate     string     `json:"releaseDate"`
	CountryID       *uuid.UUID `json:"countryId,omitempty"`
	BrandID         *uuid.UUID `json:"brandId,omitempty"`
}

type UpdateWatchParams struct {
	Name            *string    `json:"name,omitempty"`
	ReferenceNumber *string    `json:"referenceNumber,omitempty"`
	RetailPrice     *int64     `json:"retailPrice,omitempty"`
	CurrencyID      *uuid.UUID `json:"currencyId,omitempty"`
	ReleaseDate     *string    `json:"releaseDate,omitempty"`
	CountryID       *uuid.UUID `json:"countryId,omitempty"`
	BrandID         *uuid.UUID `json:"brandId,omitempty"`
}
