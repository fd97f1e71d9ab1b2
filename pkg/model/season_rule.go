package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"rentpilot/pkg/calendar"
	"time"
)

type SeasonType string

const (
	SeasonHigh SeasonType = "high"
	SeasonMid  SeasonType = "mid"
	SeasonLow  SeasonType = "low"
)

// MaxSeasonMultiplier caps how far a single season rule can move a price.
const MaxSeasonMultiplier = 10

// SeasonRule is a recurring yearly date range with a price multiplier.
// Position in the tenant's list is its matching priority.
type SeasonRule struct {
	ID         string            `json:"id" bson:"id"`
	Name       string            `json:"name" bson:"name"`
	Start      calendar.MonthDay `json:"start" bson:"start"`
	End        calendar.MonthDay `json:"end" bson:"end"`
	Multiplier float64           `json:"multiplier" bson:"multiplier"`
	Type       SeasonType        `json:"type" bson:"type"`
}

// SeasonRuleSet is the persisted, per-tenant rule list.
type SeasonRuleSet struct {
	TenantID  string       `bson:"_id"`
	Rules     []SeasonRule `bson:"rules"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

type SeasonRuleInput struct {
	Name       string          `json:"name" validate:"required,min=1,max=100"`
	Start      string          `json:"start" validate:"required,monthday"`
	End        string          `json:"end" validate:"required,monthday"`
	Multiplier MultiplierInput `json:"multiplier"`
	Type       SeasonType      `json:"type" validate:"required,oneof=high mid low"`
}

// MultiplierInput keeps the raw multiplier text so the store can decide how
// to treat values that do not parse. Strings decode to their contents,
// anything else keeps its raw JSON text.
type MultiplierInput string

func (m *MultiplierInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid multiplier: %w", err)
		}
		*m = MultiplierInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*m = MultiplierInput(data)
		return nil
	}
	*m = MultiplierInput(n.String())
	return nil
}
