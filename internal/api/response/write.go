package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as the response body. Game state changes on every move so
// responses are never cached.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Created writes a 201 pointing at the new game
func Created(w http.ResponseWriter, g Game) {
	w.Header().Set("Location", "/api/v1/games/"+g.ID)
	JSON(w, http.StatusCreated, g)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
