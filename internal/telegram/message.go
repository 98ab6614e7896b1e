// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package telegram

import (
	"strings"
	"time"
)

// Fallback values for optional appointment fields.
const (
	NoService = "Не выбрана"
	NoDate    = "Не указана"
	NoComment = "Без комментария"
	NoSource  = "Сайт"
)

// Appointment is a booking request as submitted by a visitor.
type Appointment struct {
	Name    string
	Phone   string
	Service string
	Date    string // YYYY-MM-DD or empty
	Message string
	Source  string
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// FormatAppointment renders the chat message. now is printed in loc.
// Visitor input is escaped so it cannot break the Markdown markup.
func FormatAppointment(a Appointment, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	service := orDefault(a.Service, NoService)
	comment := orDefault(a.Message, NoComment)
	source := orDefault(a.Source, NoSource)

	date := NoDate
	if d := strings.TrimSpace(a.Date); d != "" {
		if parsed, err := time.Parse(time.DateOnly, d); err == nil {
			date = parsed.Format("02.01.2006")
		} else {
			date = d
		}
	}

	var b strings.Builder
	b.WriteString("🎯 *Новая заявка на запись*\n\n")
	b.WriteString("👤 *Имя:* " + escape(a.Name) + "\n")
	b.WriteString("📱 *Телефон:* " + escape(a.Phone) + "\n")
	b.WriteString("💅 *Услуга:* " + escape(service) + "\n")
	b.WriteString("📅 *Дата:* " + escape(date) + "\n")
	b.WriteString("💬 *Комментарий:*\n" + escape(comment) + "\n\n")
	b.WriteString("📍 *Источник:* " + escape(source) + "\n")
	b.WriteString("⏰ *Время:* " + now.In(loc).Format("02.01.2006, 15:04:05"))
	return b.String()
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

func escape(s string) string {
	return markdownEscaper.Replace(strings.TrimSpace(s))
}
