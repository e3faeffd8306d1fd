// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package library

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DateFormatter renders the display strings stored on file records. The
// strings are for display only and are never parsed back.
type DateFormatter struct {
	style dateStyle
}

type dateStyle int

const (
	styleISO dateStyle = iota
	styleArabic
	styleEnglish
)

var supported = []language.Tag{
	language.Und, // anything unmatched gets ISO dates
	language.Arabic,
	language.English,
}

var matcher = language.NewMatcher(supported)

// NewDateFormatter picks a date style for a BCP 47 locale such as "ar-EG".
// Unknown or malformed locales fall back to ISO 8601 dates.
func NewDateFormatter(locale string) DateFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		return DateFormatter{style: styleISO}
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DateFormatter{style: styleISO}
	}
	return DateFormatter{style: dateStyle(idx)}
}

// rlm is the right-to-left mark browsers place after each date field in
// Arabic locales.
const rlm = "\u200f"

// Date renders a calendar date, e.g. "١٧‏/١٠‏/٢٠٢٦" for ar-EG.
func (f DateFormatter) Date(t time.Time) string {
	switch f.style {
	case styleArabic:
		return arabicDigits(fmt.Sprintf("%d%s/%d%s/%d", t.Day(), rlm, int(t.Month()), rlm, t.Year()))
	case styleEnglish:
		return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
	default:
		return t.Format("2006-01-02")
	}
}

// DateTime renders a date and a 12-hour wall clock time, e.g.
// "١٧‏/١٠‏/٢٠٢٦، ٣:٠٥:٠٩ م" for ar-EG.
func (f DateFormatter) DateTime(t time.Time) string {
	switch f.style {
	case styleArabic:
		marker := "ص"
		if t.Hour() >= 12 {
			marker = "م"
		}
		clock := fmt.Sprintf("%d:%02d:%02d %s", hour12(t), t.Minute(), t.Second(), marker)
		return f.Date(t) + "، " + arabicDigits(clock)
	case styleEnglish:
		return f.Date(t) + ", " + t.Format("3:04:05 PM")
	default:
		return t.Format("2006-01-02 15:04:05")
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

var arabicDigitReplacer = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

// arabicDigits shapes ASCII digits as Arabic-Indic digits.
func arabicDigits(s string) string {
	return arabicDigitReplacer.Replace(s)
}
