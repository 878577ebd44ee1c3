package realtime

import (
	"encoding/json"
	"testing"
)

func TestNewHubStartsEmpty(t *testing.T) {
	hub := NewHub()

	if got := hub.Count(); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
	if hub.IsOnline(1) {
		t.Error("IsOnline(1) = true for an empty hub")
	}
}

func TestUnregisterAbsentUserIsNoOp(t *testing.T) {
	hub := NewHub()

	hub.Unregister(42)
	hub.Unregister(42)

	if got := hub.Count(); got != 0 {
		t.Errorf("Count after unregistering absent user = %d, want 0", got)
	}
}

func TestBroadcastToUsersSkipsOfflineUsers(t *testing.T) {
	hub := NewHub()

	// Nobody is connected; the broadcast must simply do nothing.
	hub.BroadcastToUsers([]uint{1, 2, 3}, Event{
		Type:      EventChatMessage,
		ProjectID: 10,
	})

	if got := hub.Count(); got != 0 {
		t.Errorf("Count after broadcast = %d, want 0", got)
	}
}

func TestEventEnvelopeShape(t *testing.T) {
	payload := map[string]interface{}{"content": "hello"}
	data, err := json.Marshal(Event{
		Type:      EventCallParticipant,
		ProjectID: 7,
		Payload:   payload,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["type"] != EventCallParticipant {
		t.Errorf("type = %v, want %q", decoded["type"], EventCallParticipant)
	}
	if decoded["project_id"] != float64(7) {
		t.Errorf("project_id = %v, want 7", decoded["project_id"])
	}
	if _, ok := decoded["payload"]; !ok {
		t.Error("payload missing from envelope")
	}
}

func TestEventOmitsEmptyPayload(t *testing.T) {
	data, err := json.Marshal(Event{Type: EventChatMessage, ProjectID: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := decoded["payload"]; ok {
		t.Error("empty payload should be omitted from the envelope")
	}
}
