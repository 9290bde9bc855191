package gesture

import (
	"encoding/json"
	"testing"
)

func TestMessageSchema(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"direction", `{"direction":"jump"}`, true},
		{"screen", `{"screenType":"loading"}`, true},
		{"calorie value", `{"currentCalorieValue":500}`, true},
		{"final calories", `{"sessionFinalCalories":12.5}`, true},
		{"unknown key", `{"speed":3}`, false},
		{"two keys", `{"restart":true,"start":true}`, false},
		{"restart false", `{"restart":false}`, false},
		{"fractional goal", `{"currentCalorieValue":1.5}`, false},
		{"negative calories", `{"sessionFinalCalories":-1}`, false},
		{"bad screen", `{"screenType":"credits"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw any
			if err := json.Unmarshal([]byte(tt.input), &raw); err != nil {
				t.Fatalf("json.Unmarshal(%s) failed: %v", tt.input, err)
			}
			err := messageSchema.Validate(raw)
			if got := err == nil; got != tt.valid {
				t.Errorf("Validate(%s) valid = %v, expected %v (err: %v)", tt.input, got, tt.valid, err)
			}
		})
	}
}
