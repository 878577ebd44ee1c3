package call

import (
	"sort"
	"sync"
	"time"
)

// Participant is one user currently present in a project's video call.
type Participant struct {
	UserID   uint      `json:"user_id"`
	UserName string    `json:"user_name"`
	PeerID   string    `json:"peer_id,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// Registry is an in-memory directory of who is in which project's call,
// keyed by project then by user. State is volatile: it starts empty and is
// lost on restart, which is fine for presence data. Handlers run on multiple
// goroutines, so every operation takes the lock.
type Registry struct {
	mu    sync.RWMutex
	rooms map[uint]map[uint]*Participant
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[uint]map[uint]*Participant),
	}
}

// Add inserts or refreshes the participant entry. The join timestamp is set
// on first add and survives rejoins until the user is removed.
func (r *Registry) Add(projectID, userID uint, userName, peerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		room = make(map[uint]*Participant)
		r.rooms[projectID] = room
	}

	joinedAt := time.Now()
	if existing, ok := room[userID]; ok {
		joinedAt = existing.JoinedAt
	}

	room[userID] = &Participant{
		UserID:   userID,
		UserName: userName,
		PeerID:   peerID,
		JoinedAt: joinedAt,
	}
}

// Touch updates name and peer id for a participant that is already present.
// Unlike Add it never creates an entry: touching an absent user is a no-op.
// Empty arguments leave the corresponding field unchanged.
func (r *Registry) Touch(projectID, userID uint, userName, peerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		return
	}
	p, ok := room[userID]
	if !ok {
		return
	}
	if userName != "" {
		p.UserName = userName
	}
	if peerID != "" {
		p.PeerID = peerID
	}
}

// Remove deletes the participant entry if present.
func (r *Registry) Remove(projectID, userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		return
	}
	delete(room, userID)
	if len(room) == 0 {
		delete(r.rooms, projectID)
	}
}

// List returns the project's current participants ordered by join time,
// oldest first.
func (r *Registry) List(projectID uint) []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[projectID]
	participants := make([]Participant, 0, len(room))
	for _, p := range room {
		participants = append(participants, *p)
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})
	return participants
}

// Count returns how many users are in the project's call.
func (r *Registry) Count(projectID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[projectID])
}
