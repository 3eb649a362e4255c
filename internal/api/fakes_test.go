package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/repo"
)

// memDB — in-memory хранилище с теми же ограничениями, что и схема БД:
// внешние ключи, уникальный email избирателя, один голос на избирателя.
type memDB struct {
	mu         sync.Mutex
	nextID     int64
	parties    map[int64]domain.Party
	candidates map[int64]domain.Candidate
	voters     map[int64]domain.Voter
	votes      map[int64]domain.Vote

	// fail — если задано, все операции возвращают эту ошибку.
	fail error
}

func newMemDB() *memDB {
	return &memDB{
		parties:    map[int64]domain.Party{},
		candidates: map[int64]domain.Candidate{},
		voters:     map[int64]domain.Voter{},
		votes:      map[int64]domain.Vote{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type memCandidates struct{ *memDB }

func (s memCandidates) List(context.Context) ([]domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	out := []domain.Candidate{}
	for _, id := range sortedKeys(s.candidates) {
		out = append(out, s.withParty(s.candidates[id]))
	}
	return out, nil
}

func (s memCandidates) withParty(c domain.Candidate) domain.Candidate {
	if c.PartyID != nil {
		if p, ok := s.parties[*c.PartyID]; ok {
			name := p.Name
			c.PartyName = &name
		}
	}
	return c
}

func (s memCandidates) GetByID(_ context.Context, id int64) (*domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	c, ok := s.candidates[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c = s.withParty(c)
	return &c, nil
}

func (s memCandidates) Create(_ context.Context, c *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if c.PartyID != nil {
		if _, ok := s.parties[*c.PartyID]; !ok {
			return repo.ErrInvalidReference
		}
	}
	c.ID = s.id()
	s.candidates[c.ID] = *c
	return nil
}

func (s memCandidates) UpdateParty(_ context.Context, id, partyID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	if _, ok := s.parties[partyID]; !ok {
		return 0, repo.ErrInvalidReference
	}
	c, ok := s.candidates[id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	c.PartyID = &partyID
	s.candidates[id] = c
	return 1, nil
}

func (s memCandidates) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	if _, ok := s.candidates[id]; !ok {
		return 0, repo.ErrNotFound
	}
	delete(s.candidates, id)
	for vid, v := range s.votes {
		if v.CandidateID == id {
			delete(s.votes, vid)
		}
	}
	return 1, nil
}

type memParties struct{ *memDB }

func (s memParties) List(context.Context) ([]domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	out := []domain.Party{}
	for _, id := range sortedKeys(s.parties) {
		out = append(out, s.parties[id])
	}
	return out, nil
}

func (s memParties) GetByID(_ context.Context, id int64) (*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	p, ok := s.parties[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (s memParties) Create(_ context.Context, p *domain.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	p.ID = s.id()
	s.parties[p.ID] = *p
	return nil
}

func (s memParties) Update(_ context.Context, id int64, name string, description *string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	p, ok := s.parties[id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	p.Name = name
	if description != nil {
		p.Description = description
	}
	s.parties[id] = p
	return 1, nil
}

func (s memParties) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	if _, ok := s.parties[id]; !ok {
		return 0, repo.ErrNotFound
	}
	delete(s.parties, id)
	for cid, c := range s.candidates {
		if c.PartyID != nil && *c.PartyID == id {
			c.PartyID = nil
			s.candidates[cid] = c
		}
	}
	return 1, nil
}

type memVoters struct{ *memDB }

func (s memVoters) List(context.Context) ([]domain.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	out := []domain.Voter{}
	for _, id := range sortedKeys(s.voters) {
		out = append(out, s.voters[id])
	}
	return out, nil
}

func (s memVoters) GetByID(_ context.Context, id int64) (*domain.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	v, ok := s.voters[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &v, nil
}

func (s memVoters) emailTaken(email string, except int64) bool {
	for id, v := range s.voters {
		if id != except && v.Email == email {
			return true
		}
	}
	return false
}

func (s memVoters) Create(_ context.Context, v *domain.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if s.emailTaken(v.Email, 0) {
		return repo.ErrAlreadyExists
	}
	v.ID = s.id()
	v.CreatedAt = time.Now().UTC()
	s.voters[v.ID] = *v
	return nil
}

func (s memVoters) UpdateEmail(_ context.Context, id int64, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	v, ok := s.voters[id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	if s.emailTaken(email, id) {
		return 0, repo.ErrAlreadyExists
	}
	v.Email = email
	s.voters[id] = v
	return 1, nil
}

func (s memVoters) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	if _, ok := s.voters[id]; !ok {
		return 0, repo.ErrNotFound
	}
	delete(s.voters, id)
	for vid, v := range s.votes {
		if v.VoterID == id {
			delete(s.votes, vid)
		}
	}
	return 1, nil
}

type memVotes struct{ *memDB }

func (s memVotes) List(context.Context) ([]domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	out := []domain.Vote{}
	for _, id := range sortedKeys(s.votes) {
		out = append(out, s.votes[id])
	}
	return out, nil
}

func (s memVotes) GetByID(_ context.Context, id int64) (*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	v, ok := s.votes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &v, nil
}

func (s memVotes) Create(_ context.Context, v *domain.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if _, ok := s.voters[v.VoterID]; !ok {
		return repo.ErrInvalidReference
	}
	if _, ok := s.candidates[v.CandidateID]; !ok {
		return repo.ErrInvalidReference
	}
	for _, existing := range s.votes {
		if existing.VoterID == v.VoterID {
			return repo.ErrAlreadyExists
		}
	}
	v.ID = s.id()
	v.CreatedAt = time.Now().UTC()
	s.votes[v.ID] = *v
	return nil
}

func (s memVotes) UpdateCandidate(_ context.Context, id, candidateID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	if _, ok := s.candidates[candidateID]; !ok {
		return 0, repo.ErrInvalidReference
	}
	v, ok := s.votes[id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	v.CandidateID = candidateID
	s.votes[id] = v
	return 1, nil
}

func (s memVotes) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	if _, ok := s.votes[id]; !ok {
		return 0, repo.ErrNotFound
	}
	delete(s.votes, id)
	return 1, nil
}

func (s memVotes) Tally(context.Context) ([]domain.TallyRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	counts := map[int64]int64{}
	for _, v := range s.votes {
		counts[v.CandidateID]++
	}
	out := []domain.TallyRow{}
	for id, n := range counts {
		c := memCandidates{s.memDB}.withParty(s.candidates[id])
		out = append(out, domain.TallyRow{
			CandidateID: id,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			PartyName:   c.PartyName,
			Count:       n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].CandidateID < out[j].CandidateID
	})
	return out, nil
}

// fakePublisher запоминает опубликованные события.
type fakePublisher struct {
	mu      sync.Mutex
	changes []domain.EntityChange
	err     error

	// onPublish вызывается перед записью события.
	onPublish func()
}

func (p *fakePublisher) PublishEntityChanged(_ context.Context, change domain.EntityChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onPublish != nil {
		p.onPublish()
	}
	if p.err != nil {
		return p.err
	}
	p.changes = append(p.changes, change)
	return nil
}
