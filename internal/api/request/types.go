package request

// Field names follow the original event clients, which send camelCase JSON.

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateScoreRequest is the request body for crediting score and optionally
// moving the user to a new stage in the same operation
type UpdateScoreRequest struct {
	ScoreToAdd int  `json:"scoreToAdd"`
	NextStage  *int `json:"nextStage,omitempty"`
}

// IssueRoundTokenRequest is the request body for minting a round token to
// hand off to a partner game
type IssueRoundTokenRequest struct {
	GameType string `json:"gameType"`
}

// SubmitExternalScoreRequest is the request body for redeeming a round token
// issued to a partner game
type SubmitExternalScoreRequest struct {
	Token    string `json:"token"`
	Score    int    `json:"score"`
	GameType string `json:"gameType"`
}

// SubmitAnswerRequest is the request body for answering a puzzle
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// OracleAskRequest is the request body for asking the oracle a question
type OracleAskRequest struct {
	Question string `json:"question"`
}

// HuntStartRequest is the request body for starting a hunt session
type HuntStartRequest struct {
	DeviceID string `json:"deviceId"`
	Room     int    `json:"room"`
}

// HuntPanRequest is the request body for rotating the session camera
type HuntPanRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// HuntClickRequest is the request body for a pointer gesture. Down and up
// coordinates are raw pixels; the server decides whether it was a click or
// a camera drag.
type HuntClickRequest struct {
	DownX          float64 `json:"downX"`
	DownY          float64 `json:"downY"`
	UpX            float64 `json:"upX"`
	UpY            float64 `json:"upY"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
}
