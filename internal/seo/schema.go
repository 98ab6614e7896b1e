// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"unicode"
)

const schemaContext = "https://schema.org"

// Business is the studio's public profile used for structured data.
type Business struct {
	Name         string
	Description  string
	Image        string
	Telephone    string
	Locality     string
	Country      string
	PriceRange   string
	OpeningHours string
	AreaServed   []string
	SameAs       []string
	ServiceTypes []string
}

// Offer is one priced service on the landing page.
type Offer struct {
	Name        string
	Description string
	Price       string // free text, e.g. "1 500 ₽"
}

// BusinessSchema represents JSON-LD NailSalon structured data.
type BusinessSchema struct {
	Context      string         `json:"@context"`
	Type         string         `json:"@type"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	URL          string         `json:"url,omitempty"`
	Image        string         `json:"image,omitempty"`
	Telephone    string         `json:"telephone,omitempty"`
	PriceRange   string         `json:"priceRange,omitempty"`
	OpeningHours string         `json:"openingHours,omitempty"`
	AreaServed   []string       `json:"areaServed,omitempty"`
	Address      *AddressSchema `json:"address,omitempty"`
	SameAs       []string       `json:"sameAs,omitempty"`
	ServiceType  []string       `json:"serviceType,omitempty"`
}

// AddressSchema represents JSON-LD PostalAddress structured data.
type AddressSchema struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// ItemListSchema represents JSON-LD ItemList structured data.
type ItemListSchema struct {
	Context string          `json:"@context"`
	Type    string          `json:"@type"`
	Items   []ServiceSchema `json:"itemListElement"`
}

// ServiceSchema represents JSON-LD Service structured data.
type ServiceSchema struct {
	Type        string       `json:"@type"`
	ServiceType string       `json:"serviceType"`
	Description string       `json:"description,omitempty"`
	Offers      *OfferSchema `json:"offers,omitempty"`
}

// OfferSchema represents JSON-LD Offer structured data.
type OfferSchema struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

// BuildBusinessSchema creates the NailSalon structured data for the landing page.
func BuildBusinessSchema(b Business, site *SiteConfig) template.JS {
	schema := BusinessSchema{
		Context:      schemaContext,
		Type:         "NailSalon",
		Name:         b.Name,
		Description:  b.Description,
		URL:          strings.TrimSuffix(site.SiteURL, "/"),
		Image:        makeAbsoluteURL(b.Image, site.SiteURL),
		Telephone:    b.Telephone,
		PriceRange:   b.PriceRange,
		OpeningHours: b.OpeningHours,
		AreaServed:   b.AreaServed,
		SameAs:       b.SameAs,
		ServiceType:  b.ServiceTypes,
	}
	if b.Locality != "" || b.Country != "" {
		schema.Address = &AddressSchema{
			Type:            "PostalAddress",
			AddressLocality: b.Locality,
			AddressCountry:  b.Country,
		}
	}
	return marshalJSONLD(schema)
}

// BuildServicesSchema creates an ItemList of services. Offers are attached
// only when a numeric price can be read from the free-text price. Returns ""
// for an empty list.
func BuildServicesSchema(offers []Offer, currency string) template.JS {
	if len(offers) == 0 {
		return ""
	}

	list := ItemListSchema{Context: schemaContext, Type: "ItemList"}
	for _, o := range offers {
		item := ServiceSchema{
			Type:        "Service",
			ServiceType: o.Name,
			Description: o.Description,
		}
		if price := NumericPrice(o.Price); price != "" {
			item.Offers = &OfferSchema{Type: "Offer", Price: price, PriceCurrency: currency}
		}
		list.Items = append(list.Items, item)
	}
	return marshalJSONLD(list)
}

// NumericPrice extracts the first number from a free-text price such as
// "от 1 500 ₽" or "2000-2500". Spaces inside the number are dropped.
func NumericPrice(s string) string {
	var sb strings.Builder
	started := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			started = true
			sb.WriteRune(r)
		case started && (r == ' ' || r == '\u00a0' || r == '\u202f'):
			continue
		case started:
			return sb.String()
		}
	}
	return sb.String()
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(data)
}
