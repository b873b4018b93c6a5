package dto

type (
	Envelope struct {
		Message string `json:"message"`
		Data    any    `json:"data"`
	}
	Error struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details,omitempty"`
	}
)
