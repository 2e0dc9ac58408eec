package request

// CreateGameRequest is the request body for starting a game
type CreateGameRequest struct {
	Seed     *uint64 `json:"seed,omitempty"`
	GridSize int     `json:"grid_size,omitempty"`
}

// Target is an absolute board coordinate
type Target struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MoveRequest is the request body for playing a tile. Exactly one of
// Direction or Target is expected.
type MoveRequest struct {
	HandIndex  *int    `json:"hand_index"`
	Direction  string  `json:"direction,omitempty"`
	Target     *Target `json:"target,omitempty"`
	Substitute string  `json:"substitute,omitempty"`
}

// BotMoveRequest is the request body for letting a bot play
type BotMoveRequest struct {
	Strategy string `json:"strategy,omitempty"`
	ToEnd    bool   `json:"to_end,omitempty"`
}
