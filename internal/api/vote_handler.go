package api

import (
	"net/http"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/validate"
)

func (h *Handler) registerVoteRoutes(mux *http.ServeMux, chain Middleware) {
	mux.Handle("GET /api/votes", chain(http.HandlerFunc(h.ListVotes)))
	mux.Handle("GET /api/votes/tally", chain(http.HandlerFunc(h.TallyVotes)))
	mux.Handle("GET /api/vote/{id}", chain(http.HandlerFunc(h.GetVote)))
	mux.Handle("POST /api/vote", chain(http.HandlerFunc(h.CreateVote)))
	mux.Handle("PUT /api/vote/{id}", chain(http.HandlerFunc(h.UpdateVote)))
	mux.Handle("DELETE /api/vote/{id}", chain(http.HandlerFunc(h.DeleteVote)))
}

// ListVotes возвращает голоса с именами избирателя и кандидата.
// GET /api/votes
func (h *Handler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.List(r.Context())
	if HandleRepoError(w, h.log(r), err, domain.EntityVote) {
		return
	}

	Success(w, votes)
}

// TallyVotes возвращает число голосов по кандидатам, по убыванию.
// GET /api/votes/tally
func (h *Handler) TallyVotes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.votes.Tally(r.Context())
	if HandleRepoError(w, h.log(r), err, domain.EntityVote) {
		return
	}

	Success(w, rows)
}

// GetVote — GET /api/vote/{id}
func (h *Handler) GetVote(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityVote)
	if !ok {
		return
	}

	vote, err := h.votes.GetByID(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityVote) {
		return
	}

	Success(w, vote)
}

// CreateVote принимает голос. Повторный голос того же избирателя — 409.
// POST /api/vote
func (h *Handler) CreateVote(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r, validate.VoteCreate)
	if !ok {
		return
	}

	vote := voteFromPayload(payload)
	if err := h.votes.Create(r.Context(), vote); HandleRepoError(w, h.log(r), err, domain.EntityVote) {
		return
	}

	Success(w, vote)
	h.publishChange(w, r, domain.EntityVote, domain.ActionCreated, vote.ID, payload)
}

// UpdateVote переносит голос на другого кандидата.
// PUT /api/vote/{id}
func (h *Handler) UpdateVote(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityVote)
	if !ok {
		return
	}
	payload, ok := readPayload(w, r, validate.VoteUpdate)
	if !ok {
		return
	}

	changes, err := h.votes.UpdateCandidate(r.Context(), id, validate.Int(payload, "candidate_id"))
	if HandleRepoError(w, h.log(r), err, domain.EntityVote) {
		return
	}

	Updated(w, payload, changes)
	h.publishChange(w, r, domain.EntityVote, domain.ActionUpdated, id, payload)
}

// DeleteVote — DELETE /api/vote/{id}
func (h *Handler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityVote)
	if !ok {
		return
	}

	changes, err := h.votes.Delete(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityVote) {
		return
	}

	Deleted(w, changes, id)
	h.publishChange(w, r, domain.EntityVote, domain.ActionDeleted, id, nil)
}
