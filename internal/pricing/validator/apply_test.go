package validator

import (
	"testing"

	"rentpilot/pkg/model"
)

func TestApplyValidator(t *testing.T) {
	v := NewApplyValidator()

	tests := []struct {
		name    string
		req     model.ApplyPriceRequest
		wantErr bool
	}{
		{"zero price", model.NewApplyPriceRequest(0, ""), false},
		{"with reason", model.NewApplyPriceRequest(127, model.ReasonHighSeason), false},
		{"absent price", model.ApplyPriceRequest{}, true},
		{"absent price with reason", model.ApplyPriceRequest{Reason: model.ReasonWeekend}, true},
		{"negative price", model.NewApplyPriceRequest(-1, ""), true},
		{"unknown reason", model.NewApplyPriceRequest(100, "surge"), true},
		{"too large", model.NewApplyPriceRequest(MaxNightlyPrice+1, ""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.req, err, tt.wantErr)
			}
		})
	}
}
