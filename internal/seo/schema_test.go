// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"testing"
)

func TestBuildBusinessSchema(t *testing.T) {
	js := BuildBusinessSchema(Business{
		Name:      "AVDEEVA",
		Image:     "/uploads/bg.jpg",
		Telephone: "+79276136513",
		Locality:  "Самара",
		Country:   "RU",
		SameAs:    []string{"https://t.me/avdeevanailssmr"},
	}, testSite())

	var got map[string]any
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got["@type"] != "NailSalon" {
		t.Errorf("@type = %v", got["@type"])
	}
	if got["url"] != "https://nails.example.com" {
		t.Errorf("url = %v", got["url"])
	}
	if got["image"] != "https://nails.example.com/uploads/bg.jpg" {
		t.Errorf("image = %v", got["image"])
	}
	addr, ok := got["address"].(map[string]any)
	if !ok || addr["addressLocality"] != "Самара" {
		t.Errorf("address = %v", got["address"])
	}
}

func TestBuildServicesSchema(t *testing.T) {
	if js := BuildServicesSchema(nil, "RUB"); js != "" {
		t.Errorf("empty list should produce no script, got %q", js)
	}

	js := BuildServicesSchema([]Offer{
		{Name: "Маникюр", Price: "1 500 ₽"},
		{Name: "Дизайн", Price: "по договорённости"},
	}, "RUB")

	var got struct {
		Type  string `json:"@type"`
		Items []struct {
			ServiceType string `json:"serviceType"`
			Offers      *struct {
				Price         string `json:"price"`
				PriceCurrency string `json:"priceCurrency"`
			} `json:"offers"`
		} `json:"itemListElement"`
	}
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got.Type != "ItemList" || len(got.Items) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Items[0].Offers == nil || got.Items[0].Offers.Price != "1500" || got.Items[0].Offers.PriceCurrency != "RUB" {
		t.Errorf("first offer = %+v", got.Items[0].Offers)
	}
	if got.Items[1].Offers != nil {
		t.Errorf("non-numeric price should omit offer, got %+v", got.Items[1].Offers)
	}
}

func TestNumericPrice(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1500", "1500"},
		{"1 500 ₽", "1500"},
		{"от 2000 руб.", "2000"},
		{"2000-2500", "2000"},
		{"1\u00a0200 ₽", "1200"},
		{"бесплатно", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NumericPrice(tt.in); got != tt.want {
			t.Errorf("NumericPrice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
