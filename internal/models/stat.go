// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Trend is the direction of a dashboard stat's change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Stat is a single headline figure on the analytics dashboard.
type Stat struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
	Trend  Trend  `json:"trend,omitempty"`
	Icon   string `json:"icon"`
}

// ActivityPoint is one month of library activity.
type ActivityPoint struct {
	Month    string `json:"month"`
	Students int    `json:"students"`
	Docs     int    `json:"docs"`
}

// Share is one slice of a distribution chart.
type Share struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
