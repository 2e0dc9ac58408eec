package model

// EventType identifies the type of event
type EventType string

const (
	EventTilePlaced       EventType = "tile_placed"
	EventPlacementDropped EventType = "placement_dropped"
	EventEffectGranted    EventType = "effect_granted"
	EventTileDrawn        EventType = "tile_drawn"
	EventBagEmpty         EventType = "bag_empty"
	EventWordScored       EventType = "word_scored"
	EventGameOver         EventType = "game_over"
)

// Event records one thing that happened while resolving a move
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"` // Type-specific data
}

// TilePlacedPayload contains data for tile placed and dropped events
type TilePlacedPayload struct {
	Position Position `json:"position"`
	Letter   string   `json:"letter"`
	Mirrored bool     `json:"mirrored"`
}

// EffectGrantedPayload contains data for effect granted events
type EffectGrantedPayload struct {
	Effect StatusEffect `json:"effect"`
	Turns  int          `json:"turns"`
}

// TileDrawnPayload contains data for tile drawn events
type TileDrawnPayload struct {
	Letter  string `json:"letter"`
	Ordered bool   `json:"ordered"`
}

// WordScoredPayload contains data for word scored events
type WordScoredPayload struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	FinalScore int `json:"final_score"`
	Level      int `json:"level"`
}
