// Package devserver is an in-memory stand-in for the Unitip backend, used
// for local development and integration tests of the client SDK. It
// implements the same REST contract the repositories expect, including the
// pagination envelope and the nullable room id of the check-room endpoint.
package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const pageSize = 10

var (
	errInvalidCredentials = errors.New("invalid email or password")
	errNotFound           = errors.New("not found")
	errAlreadyApplied     = errors.New("you have already applied to this offer")
)

type user struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash []byte
}

type room struct {
	ID             string
	Members        []string
	LastMessage    string
	LastSentUserID string
	CreatedAt      string
	UpdatedAt      string
}

type message struct {
	ID        string
	RoomID    string
	UserID    string
	Message   string
	IsDeleted bool
	CreatedAt string
	UpdatedAt string
}

type checkpoint struct {
	ID                string
	RoomID            string
	UserID            string
	LastReadMessageID string
}

type job struct {
	ID             string
	Type           string
	Title          string
	Note           string
	Service        string
	PickupLocation string
	Destination    string
	Status         string
	CustomerName   string
	CreatedAt      string
	UpdatedAt      string
}

type offer struct {
	ID              string
	Title           string
	Description     string
	Price           float64
	Type            string
	PickupArea      string
	DestinationArea string
	AvailableUntil  string
	OfferStatus     string
	MaxParticipants int
	FreelancerName  string
	CreatedAt       string
	UpdatedAt       string
	ApplicantIDs    map[string]string // userID -> applicationID
}

// Store holds all dev server state behind one lock. Volume is tiny, so the
// coarse lock is fine.
type Store struct {
	mu sync.RWMutex

	users        map[string]*user
	usersByEmail map[string]string
	sessions     map[string]string // token -> userID

	rooms       map[string]*room
	messages    map[string][]*message             // roomID -> ordered messages
	checkpoints map[string]map[string]*checkpoint // roomID -> userID
	unread      map[string]map[string]int         // roomID -> userID -> count

	jobs   []*job
	offers []*offer
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*user),
		usersByEmail: make(map[string]string),
		sessions:     make(map[string]string),
		rooms:        make(map[string]*room),
		messages:     make(map[string][]*message),
		checkpoints:  make(map[string]map[string]*checkpoint),
		unread:       make(map[string]map[string]int),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateUser registers a user with a bcrypt-hashed password and returns its
// id.
func (s *Store) CreateUser(name, email, role, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.users[id] = &user{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	s.usersByEmail[email] = id
	return id, nil
}

// Authenticate verifies the credentials and mints a session token.
func (s *Store) Authenticate(email, password string) (*user, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, "", errInvalidCredentials
	}
	u := s.users[id]
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, "", errInvalidCredentials
	}

	token := uuid.NewString()
	s.sessions[token] = id
	return u, token, nil
}

// UserByToken resolves a session token to its user.
func (s *Store) UserByToken(token string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	return s.users[id], true
}

// RevokeToken removes a session token. Revoking an unknown token is a no-op.
func (s *Store) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// UpdateRole switches a user's role.
func (s *Store) UpdateRole(userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return errNotFound
	}
	u.Role = role
	return nil
}

// User looks up a user by id.
func (s *Store) User(id string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func membersKey(members []string) string {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// FindRoom returns the id of an existing room with exactly the given
// members, or "" when none exists.
func (s *Store) FindRoom(members []string) string {
	key := membersKey(members)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if membersKey(r.Members) == key {
			return r.ID
		}
	}
	return ""
}

// CreateRoom creates a room for the given members, reusing an existing room
// with the same member set.
func (s *Store) CreateRoom(members []string) string {
	if id := s.FindRoom(members); id != "" {
		return id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	ts := now()
	s.rooms[id] = &room{
		ID:        id,
		Members:   append([]string(nil), members...),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	return id
}

// RoomsFor lists the rooms a user belongs to, most recently updated first.
func (s *Store) RoomsFor(userID string) []*room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rooms []*room
	for _, r := range s.rooms {
		for _, m := range r.Members {
			if m == userID {
				rooms = append(rooms, r)
				break
			}
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].UpdatedAt > rooms[j].UpdatedAt
	})
	return rooms
}

// Room returns a room by id.
func (s *Store) Room(id string) (*room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// OtherMember returns the counterpart of userID in a two-party room.
func (r *room) OtherMember(userID string) string {
	for _, m := range r.Members {
		if m != userID {
			return m
		}
	}
	return ""
}

// AddMessage appends a message to a room and updates the room's last-message
// state and the counterpart's unread count.
func (s *Store) AddMessage(roomID, id, userID, text, otherID string, otherUnread int) (*message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, errNotFound
	}

	ts := now()
	msg := &message{
		ID:        id,
		RoomID:    roomID,
		UserID:    userID,
		Message:   text,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.messages[roomID] = append(s.messages[roomID], msg)

	r.LastMessage = text
	r.LastSentUserID = userID
	r.UpdatedAt = ts

	if s.unread[roomID] == nil {
		s.unread[roomID] = make(map[string]int)
	}
	s.unread[roomID][otherID] = otherUnread

	return msg, nil
}

// Messages returns the ordered messages of a room.
func (s *Store) Messages(roomID string) []*message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*message(nil), s.messages[roomID]...)
}

// UnreadCount returns a user's unread count in a room.
func (s *Store) UnreadCount(roomID, userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread[roomID][userID]
}

// SetCheckpoint records how far a user has read in a room and resets their
// unread count.
func (s *Store) SetCheckpoint(roomID, userID, lastReadMessageID string) (*checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return nil, errNotFound
	}

	if s.checkpoints[roomID] == nil {
		s.checkpoints[roomID] = make(map[string]*checkpoint)
	}
	cp, ok := s.checkpoints[roomID][userID]
	if !ok {
		cp = &checkpoint{ID: uuid.NewString(), RoomID: roomID, UserID: userID}
		s.checkpoints[roomID][userID] = cp
	}
	cp.LastReadMessageID = lastReadMessageID

	if s.unread[roomID] != nil {
		s.unread[roomID][userID] = 0
	}
	return cp, nil
}

// Checkpoint returns a user's read checkpoint in a room, if any.
func (s *Store) Checkpoint(roomID, userID string) (*checkpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cps, ok := s.checkpoints[roomID]
	if !ok {
		return nil, false
	}
	cp, ok := cps[userID]
	return cp, ok
}

// AddJob inserts a job posting.
func (s *Store) AddJob(j *job) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	ts := now()
	if j.CreatedAt == "" {
		j.CreatedAt = ts
	}
	if j.UpdatedAt == "" {
		j.UpdatedAt = ts
	}
	s.jobs = append(s.jobs, j)
	return j.ID
}

// ListJobs returns one page of jobs plus the pagination envelope values.
func (s *Store) ListJobs(page int) ([]*job, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, page, totalPages := paginate(s.jobs, page)
	return items, page, totalPages
}

// Job returns a job by id.
func (s *Store) Job(id string) (*job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, j := range s.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return nil, false
}

// AddOffer inserts an offer posting and returns its id.
func (s *Store) AddOffer(o *offer) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	ts := now()
	if o.CreatedAt == "" {
		o.CreatedAt = ts
	}
	if o.UpdatedAt == "" {
		o.UpdatedAt = ts
	}
	if o.OfferStatus == "" {
		o.OfferStatus = "available"
	}
	if o.ApplicantIDs == nil {
		o.ApplicantIDs = make(map[string]string)
	}
	s.offers = append(s.offers, o)
	return o.ID
}

// ListOffers returns one page of offers, optionally filtered by type.
func (s *Store) ListOffers(page int, offerType string) ([]*offer, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.offers
	if offerType != "" {
		filtered = nil
		for _, o := range s.offers {
			if o.Type == offerType {
				filtered = append(filtered, o)
			}
		}
	}
	items, page, totalPages := paginate(filtered, page)
	return items, page, totalPages
}

// Offer returns an offer by id.
func (s *Store) Offer(id string) (*offer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.offers {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Apply records a user's application to an offer and returns the application
// id. Applying twice is rejected.
func (s *Store) Apply(offerID, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.offers {
		if o.ID != offerID {
			continue
		}
		if _, applied := o.ApplicantIDs[userID]; applied {
			return "", errAlreadyApplied
		}
		id := uuid.NewString()
		o.ApplicantIDs[userID] = id
		return id, nil
	}
	return "", errNotFound
}

func paginate[T any](items []T, page int) ([]T, int, int) {
	if page < 1 {
		page = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil, page, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}
