package icinga

import (
	"encoding/json"
	"fmt"
)

// Object is one entry of a /v1/objects response.
type Object struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Attrs Attrs  `json:"attrs"`
}

// Attrs holds the subset of object attributes the board requests. Icinga
// encodes both fields as JSON numbers, the timestamp with a fractional part.
type Attrs struct {
	State               *float64 `json:"state"`
	LastHardStateChange *float64 `json:"last_hard_state_change"`
}

type objectList struct {
	Results *[]Object `json:"results"`
}

// Decode parses a successful response body.
func Decode(body string) ([]Object, error) {
	var list objectList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if list.Results == nil {
		return nil, fmt.Errorf("decode results: response has no results array")
	}
	return *list.Results, nil
}
