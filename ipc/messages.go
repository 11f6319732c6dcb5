package ipc

// These constants must stay in sync with the bridge's message types.
const (
	TypeHello   = "hello"
	TypeAck     = "ack"
	TypeWorld   = "world"
	TypeIntents = "intents"
)

type HelloMessage struct {
	Team string `json:"team"`
	// Seed overrides the configured optimizer seed for this connection, so a
	// recorded match can be replayed with the same passes.
	Seed *int64 `json:"seed,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// IntentsMessage answers a world message with one command per assigned robot.
type IntentsMessage struct {
	Timestamp float64    `json:"timestamp"`
	Play      string     `json:"play"`
	State     string     `json:"state"`
	Commands  []Envelope `json:"commands"`
}
