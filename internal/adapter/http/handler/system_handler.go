package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/tips"
)

type TipSource interface {
	Current(deck string) (tips.Tip, bool)
}

type SystemHandler struct {
	tips TipSource
}

func NewSystemHandler(tipSource TipSource) *SystemHandler {
	return &SystemHandler{tips: tipSource}
}

// HandleCurrentTip serves the line currently showing for ?deck=, login by default.
func (h *SystemHandler) HandleCurrentTip(w http.ResponseWriter, r *http.Request) {
	deck := r.URL.Query().Get("deck")
	if deck == "" {
		deck = tips.DeckLogin
	}
	tip, ok := h.tips.Current(deck)
	if !ok {
		response.Error(w, http.StatusNotFound, "Unknown tip deck")
		return
	}
	response.JSON(w, http.StatusOK, tip)
}

func (h *SystemHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
