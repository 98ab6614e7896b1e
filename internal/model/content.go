// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Image sections. The set is open: the database accepts any tag and the
// landing page simply filters by it.
const (
	SectionHero      = "hero"
	SectionServices  = "services"
	SectionGallery   = "gallery"
	SectionPortfolio = "portfolio"
	SectionGeneral   = "general"
)

// KnownSections lists the sections offered in the admin upload form.
var KnownSections = []string{
	SectionHero,
	SectionServices,
	SectionGallery,
	SectionPortfolio,
	SectionGeneral,
}

// Landing page fallbacks used when the settings row is missing or blank.
const (
	DefaultHeroTitle    = "AVDEEVA"
	DefaultHeroSubtitle = "Анастасия Авдеева | Создаю искусство на ваших ногтях"
)

// Service defaults applied by the admin create form.
const (
	DefaultDurationHours = 1.5
	DefaultServiceOrder  = 0
)

// Contact form values.
const (
	ContactSourceForm    = "Форма записи"
	ContactSourceDefault = "Сайт"
)

var sectionLabels = map[string]string{
	SectionHero:      "Эксклюзив",
	SectionServices:  "Услуги",
	SectionGallery:   "Галерея",
	SectionPortfolio: "Портфолио",
	SectionGeneral:   "Общее",
}

// SectionLabel returns the Russian caption for a section tag, or the tag
// itself when it is not one of KnownSections.
func SectionLabel(section string) string {
	if label, ok := sectionLabels[section]; ok {
		return label
	}
	return section
}
