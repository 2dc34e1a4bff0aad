package websocket

// Message is the envelope for every frame pushed over the event feed.
// Action names the kind of payload so clients can dispatch on it.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
