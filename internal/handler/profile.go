// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "github.com/olegiv/nailstudio/internal/seo"

// Profile holds the studio's public contacts. Templates and structured data
// both read from it.
type Profile struct {
	Owner           string
	Brand           string
	Description     string
	Phone           string
	TelegramHandle  string
	TelegramURL     string
	TelegramChannel string
	VKURL           string
	BookingURL      string
	MapEmbedURL     string
	Locality        string
	Country         string
	OpeningHours    string
	AreaServed      []string
	ServiceTypes    []string
	Image           string
}

// DefaultProfile returns the studio profile.
func DefaultProfile() Profile {
	return Profile{
		Owner:           "Анастасия Авдеева",
		Brand:           "AVDEEVA - Ногтевая студия",
		Description:     "Профессиональный маникюр, педикюр, наращивание и дизайн ногтей в Самаре",
		Phone:           "+79276136513",
		TelegramHandle:  "@prrriveeet",
		TelegramURL:     "https://t.me/prrriveeet",
		TelegramChannel: "https://t.me/avdeevanailssmr",
		VKURL:           "https://vk.com/avdeeevanails",
		BookingURL:      "https://dikidi.net/1772013?p=0.pi",
		MapEmbedURL:     "https://yandex.ru/map-widget/v1/?um=constructor%3A71a83378fa628a8a543bc675771dbcb075520157480b2e2531e5b0c5e5e4afda&source=constructor",
		Locality:        "Самара",
		Country:         "RU",
		OpeningHours:    "Mo-Su 09:00-21:00",
		AreaServed:      []string{"Самара", "Аврора"},
		ServiceTypes:    []string{"Маникюр", "Педикюр", "Наращивание ногтей", "Дизайн ногтей"},
		Image:           "/static/dist/img/icon.svg",
	}
}

// Business converts the profile into structured data input.
func (p Profile) Business() seo.Business {
	return seo.Business{
		Name:         p.Brand,
		Description:  p.Description,
		Image:        p.Image,
		Telephone:    p.Phone,
		Locality:     p.Locality,
		Country:      p.Country,
		PriceRange:   "₽₽",
		OpeningHours: p.OpeningHours,
		AreaServed:   p.AreaServed,
		SameAs:       []string{p.TelegramChannel, p.VKURL, "https://dikidi.net/1772013"},
		ServiceTypes: p.ServiceTypes,
	}
}
