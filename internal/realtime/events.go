package realtime

const (
	EventChatMessage     = "chat_message"
	EventCallParticipant = "call_participant"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type      string      `json:"type"`
	ProjectID uint        `json:"project_id"`
	Payload   interface{} `json:"payload,omitempty"`
}
