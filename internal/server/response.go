package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rileyhilliard/statusboard/internal/board"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/tiles"
)

// SlotResponse is one visible slot.
type SlotResponse struct {
	Index     int    `json:"index"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	State     string `json:"state"`
	Color     string `json:"color"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Since     int64  `json:"last_hard_state_change"`
}

// BoardResponse is the JSON form of a frame.
type BoardResponse struct {
	Slots    []SlotResponse `json:"slots"`
	Capacity int            `json:"capacity"`
	Total    int            `json:"total"`
	Overflow int            `json:"overflow"`
	Status   string         `json:"status"`
	Error    string         `json:"error,omitempty"`
	BuiltAt  string         `json:"built_at"`
}

// ErrorResponse is returned for requests that cannot be served.
type ErrorResponse struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// NewBoardResponse decodes a frame into its JSON form.
func NewBoardResponse(frame board.Frame, atlas *tiles.Atlas) BoardResponse {
	resp := BoardResponse{
		Slots:    make([]SlotResponse, 0, len(frame.Slots)),
		Capacity: len(frame.Slots),
		Total:    frame.Total,
		Overflow: frame.Overflow,
		Status:   atlas.Text(frame.Status),
		BuiltAt:  frame.BuiltAt.UTC().Format(time.RFC3339),
	}
	if frame.Err != nil {
		resp.Error = errors.Summary(frame.Err)
	}
	for i, slot := range frame.Slots {
		if !slot.Visible {
			continue
		}
		resp.Slots = append(resp.Slots, SlotResponse{
			Index:     i,
			Kind:      slot.Item.Kind.String(),
			Name:      slot.Item.Name(),
			State:     slot.Item.StateLabel(),
			Color:     slot.Color.Hex(),
			Primary:   atlas.Text(slot.Primary),
			Secondary: atlas.Text(slot.Secondary),
			Since:     slot.Item.LastHardStateChange,
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Status: "error", Code: code, Error: message})
}
