package services

import (
	"context"
	"fmt"
	"sort"

	"adventure-backend/internal/models"
)

// In-memory stores standing in for the pgx repositories.

type memParticipants struct {
	byID map[string]*models.Participant
}

func newMemParticipants() *memParticipants {
	return &memParticipants{byID: make(map[string]*models.Participant)}
}

func (m *memParticipants) Create(_ context.Context, p *models.Participant) error {
	clone := *p
	m.byID[p.ID] = &clone
	return nil
}

func (m *memParticipants) GetByID(_ context.Context, id string) (*models.Participant, error) {
	if p, ok := m.byID[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, fmt.Errorf("participant: %w", models.ErrNotFound)
}

func (m *memParticipants) GetByEmail(_ context.Context, email string) (*models.Participant, error) {
	for _, p := range m.byID {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("participant: %w", models.ErrNotFound)
}

func (m *memParticipants) GetByRefreshToken(_ context.Context, token string) (*models.Participant, error) {
	for _, p := range m.byID {
		if p.RefreshToken != nil && *p.RefreshToken == token {
			clone := *p
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("participant: %w", models.ErrNotFound)
}

func (m *memParticipants) Update(_ context.Context, p *models.Participant) error {
	if _, ok := m.byID[p.ID]; !ok {
		return fmt.Errorf("participant: %w", models.ErrNotFound)
	}
	clone := *p
	m.byID[p.ID] = &clone
	return nil
}

func (m *memParticipants) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("participant: %w", models.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

type memAdventures struct {
	byID  map[string]*models.Adventure
	joins []*models.ParticipantAdventure
}

func newMemAdventures() *memAdventures {
	return &memAdventures{byID: make(map[string]*models.Adventure)}
}

func (m *memAdventures) Create(_ context.Context, a *models.Adventure, admin *models.ParticipantAdventure) error {
	clone := *a
	clone.EventRecorder = models.EventRecorder{}
	m.byID[a.ID] = &clone
	join := *admin
	m.joins = append(m.joins, &join)
	return nil
}

func (m *memAdventures) GetByID(_ context.Context, id string) (*models.Adventure, error) {
	if a, ok := m.byID[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, fmt.Errorf("adventure: %w", models.ErrNotFound)
}

func (m *memAdventures) Update(_ context.Context, a *models.Adventure) error {
	if _, ok := m.byID[a.ID]; !ok {
		return fmt.Errorf("adventure: %w", models.ErrNotFound)
	}
	clone := *a
	clone.EventRecorder = models.EventRecorder{}
	m.byID[a.ID] = &clone
	return nil
}

func (m *memAdventures) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("adventure: %w", models.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

func (m *memAdventures) ListByParticipant(_ context.Context, participantID string, limit, offset int) ([]*models.Adventure, int, error) {
	var all []*models.Adventure
	for _, join := range m.joins {
		if join.ParticipantID != participantID {
			continue
		}
		if a, ok := m.byID[join.AdventureID]; ok {
			clone := *a
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *memAdventures) HasInProgress(_ context.Context, createdBy, excludeID string) (bool, error) {
	for _, a := range m.byID {
		if a.CreatedBy == createdBy && a.StatusID == models.AdventureStatusInProgress && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAdventures) AddParticipant(_ context.Context, pa *models.ParticipantAdventure) error {
	join := *pa
	m.joins = append(m.joins, &join)
	return nil
}

func (m *memAdventures) GetParticipant(_ context.Context, adventureID, participantID string) (*models.ParticipantAdventure, error) {
	for _, join := range m.joins {
		if join.AdventureID == adventureID && join.ParticipantID == participantID {
			clone := *join
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("adventure participant: %w", models.ErrNotFound)
}

func (m *memAdventures) Participants(_ context.Context, adventureID string) ([]*models.ParticipantAdventure, error) {
	var joins []*models.ParticipantAdventure
	for _, join := range m.joins {
		if join.AdventureID == adventureID {
			clone := *join
			joins = append(joins, &clone)
		}
	}
	return joins, nil
}

func (m *memAdventures) AddDistance(_ context.Context, adventureID, participantID string, delta float64) error {
	for _, join := range m.joins {
		if join.AdventureID == adventureID && join.ParticipantID == participantID {
			join.Distance += delta
			return nil
		}
	}
	return fmt.Errorf("adventure participant: %w", models.ErrNotFound)
}

type memInvitations struct {
	byID map[string]*models.AdventureInvitation
}

func newMemInvitations() *memInvitations {
	return &memInvitations{byID: make(map[string]*models.AdventureInvitation)}
}

func (m *memInvitations) Create(_ context.Context, inv *models.AdventureInvitation) error {
	clone := *inv
	clone.EventRecorder = models.EventRecorder{}
	m.byID[inv.ID] = &clone
	return nil
}

func (m *memInvitations) Update(_ context.Context, inv *models.AdventureInvitation) error {
	if _, ok := m.byID[inv.ID]; !ok {
		return fmt.Errorf("invitation: %w", models.ErrNotFound)
	}
	clone := *inv
	clone.EventRecorder = models.EventRecorder{}
	m.byID[inv.ID] = &clone
	return nil
}

func (m *memInvitations) GetByID(_ context.Context, id string) (*models.AdventureInvitation, error) {
	if inv, ok := m.byID[id]; ok {
		clone := *inv
		return &clone, nil
	}
	return nil, fmt.Errorf("invitation: %w", models.ErrNotFound)
}

func (m *memInvitations) GetByAdventureAndEmail(_ context.Context, adventureID, email string) (*models.AdventureInvitation, error) {
	for _, inv := range m.byID {
		if inv.AdventureID == adventureID && inv.Email == email {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("invitation: %w", models.ErrNotFound)
}

func (m *memInvitations) ListByAdventure(_ context.Context, adventureID string) ([]*models.AdventureInvitation, error) {
	var invitations []*models.AdventureInvitation
	for _, inv := range m.byID {
		if inv.AdventureID == adventureID {
			clone := *inv
			invitations = append(invitations, &clone)
		}
	}
	return invitations, nil
}

type memFriends struct {
	byID         map[string]*models.FriendRequest
	participants *memParticipants
}

func newMemFriends(participants *memParticipants) *memFriends {
	return &memFriends{
		byID:         make(map[string]*models.FriendRequest),
		participants: participants,
	}
}

func (m *memFriends) Create(_ context.Context, fr *models.FriendRequest) error {
	clone := *fr
	clone.EventRecorder = models.EventRecorder{}
	m.byID[fr.ID] = &clone
	return nil
}

func (m *memFriends) Update(_ context.Context, fr *models.FriendRequest) error {
	if _, ok := m.byID[fr.ID]; !ok {
		return fmt.Errorf("friend request: %w", models.ErrNotFound)
	}
	clone := *fr
	clone.EventRecorder = models.EventRecorder{}
	m.byID[fr.ID] = &clone
	return nil
}

func (m *memFriends) GetByID(_ context.Context, id string) (*models.FriendRequest, error) {
	if fr, ok := m.byID[id]; ok {
		clone := *fr
		return &clone, nil
	}
	return nil, fmt.Errorf("friend request: %w", models.ErrNotFound)
}

func (m *memFriends) GetBetween(_ context.Context, a, b string) (*models.FriendRequest, error) {
	for _, fr := range m.byID {
		if (fr.ParticipantID == a && fr.FriendID == b) || (fr.ParticipantID == b && fr.FriendID == a) {
			clone := *fr
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("friend request: %w", models.ErrNotFound)
}

func (m *memFriends) ListFriends(_ context.Context, participantID string, limit, offset int) ([]*models.Participant, int, error) {
	var friends []*models.Participant
	for _, fr := range m.byID {
		if fr.StatusID != models.InvitationStatusAccepted {
			continue
		}
		var otherID string
		switch participantID {
		case fr.ParticipantID:
			otherID = fr.FriendID
		case fr.FriendID:
			otherID = fr.ParticipantID
		default:
			continue
		}
		if p, ok := m.participants.byID[otherID]; ok {
			clone := *p
			friends = append(friends, &clone)
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].ID < friends[j].ID })
	total := len(friends)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return friends[offset:end], total, nil
}

func (m *memFriends) ListPendingFor(_ context.Context, participantID string) ([]*models.FriendRequest, error) {
	var requests []*models.FriendRequest
	for _, fr := range m.byID {
		if fr.FriendID == participantID && fr.StatusID == models.InvitationStatusPending {
			clone := *fr
			requests = append(requests, &clone)
		}
	}
	return requests, nil
}

type memPositions struct {
	rows []*models.Position
}

func (m *memPositions) Create(_ context.Context, p *models.Position) error {
	clone := *p
	m.rows = append(m.rows, &clone)
	return nil
}

func (m *memPositions) ListByAdventure(_ context.Context, adventureID string) ([]*models.Position, error) {
	out := make([]*models.Position, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *memPositions) ListByParticipant(_ context.Context, participantID string, limit, offset int) ([]*models.Position, int, error) {
	var all []*models.Position
	for _, p := range m.rows {
		if p.ParticipantID == participantID {
			all = append(all, p)
		}
	}
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type memNotifications struct {
	rows    []*models.Notification
	failing bool
}

func (m *memNotifications) Create(_ context.Context, n *models.Notification) error {
	if m.failing {
		return fmt.Errorf("notification store down")
	}
	clone := *n
	m.rows = append(m.rows, &clone)
	return nil
}

func (m *memNotifications) ListByParticipant(_ context.Context, participantID string, limit, offset int) ([]*models.Notification, int, error) {
	var all []*models.Notification
	for _, n := range m.rows {
		if n.ParticipantID == participantID || n.ParticipantID == "" {
			all = append(all, n)
		}
	}
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type memIdentity struct {
	byID   map[string]*models.IdentityUser
	roles  map[string][]string
	claims map[string][]models.IdentityClaim
}

func newMemIdentity() *memIdentity {
	return &memIdentity{
		byID:   make(map[string]*models.IdentityUser),
		roles:  make(map[string][]string),
		claims: make(map[string][]models.IdentityClaim),
	}
}

func (m *memIdentity) Create(_ context.Context, u *models.IdentityUser) error {
	clone := *u
	m.byID[u.ID] = &clone
	return nil
}

func (m *memIdentity) GetByID(_ context.Context, id string) (*models.IdentityUser, error) {
	if u, ok := m.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, fmt.Errorf("identity user: %w", models.ErrNotFound)
}

func (m *memIdentity) GetByEmail(_ context.Context, email string) (*models.IdentityUser, error) {
	for _, u := range m.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("identity user: %w", models.ErrNotFound)
}

func (m *memIdentity) Update(_ context.Context, u *models.IdentityUser) error {
	if _, ok := m.byID[u.ID]; !ok {
		return fmt.Errorf("identity user: %w", models.ErrNotFound)
	}
	clone := *u
	m.byID[u.ID] = &clone
	return nil
}

func (m *memIdentity) AddRole(_ context.Context, userID, role string) error {
	m.roles[userID] = append(m.roles[userID], role)
	return nil
}

func (m *memIdentity) Roles(_ context.Context, userID string) ([]string, error) {
	return m.roles[userID], nil
}

func (m *memIdentity) AddClaim(_ context.Context, userID string, claim models.IdentityClaim) error {
	m.claims[userID] = append(m.claims[userID], claim)
	return nil
}

func (m *memIdentity) Claims(_ context.Context, userID string) ([]models.IdentityClaim, error) {
	return m.claims[userID], nil
}

// Collaborator stubs.

type sentMail struct {
	To      string
	Subject string
}

type stubEmail struct {
	result EmailResult
	sent   []sentMail
}

func okEmail() *stubEmail {
	return &stubEmail{result: EmailResult{Success: true, StatusCode: 200, Message: "sent"}}
}

func failingEmail(message string) *stubEmail {
	return &stubEmail{result: EmailResult{Success: false, StatusCode: 550, Message: message}}
}

func (s *stubEmail) Send(_ context.Context, to, subject, _ string) EmailResult {
	s.sent = append(s.sent, sentMail{To: to, Subject: subject})
	return s.result
}

type collectingPublisher struct {
	events []models.DomainEvent
}

func (p *collectingPublisher) Publish(_ context.Context, events ...models.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type recordingBroadcaster struct {
	messages []WSMessage
}

func (b *recordingBroadcaster) Broadcast(message WSMessage) {
	b.messages = append(b.messages, message)
}

type recordingPush struct {
	pushed []string
}

func (p *recordingPush) Push(_ context.Context, deviceToken, message string) error {
	p.pushed = append(p.pushed, deviceToken+": "+message)
	return nil
}

type stubGoogle struct {
	email string
	err   error
}

func (s stubGoogle) Verify(_ context.Context, _ string) (string, error) {
	return s.email, s.err
}
