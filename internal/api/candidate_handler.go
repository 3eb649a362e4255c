package api

import (
	"net/http"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/validate"
)

func (h *Handler) registerCandidateRoutes(mux *http.ServeMux, chain Middleware) {
	mux.Handle("GET /api/candidates", chain(http.HandlerFunc(h.ListCandidates)))
	mux.Handle("GET /api/candidate/{id}", chain(http.HandlerFunc(h.GetCandidate)))
	mux.Handle("POST /api/candidate", chain(http.HandlerFunc(h.CreateCandidate)))
	mux.Handle("PUT /api/candidate/{id}", chain(http.HandlerFunc(h.UpdateCandidate)))
	mux.Handle("DELETE /api/candidate/{id}", chain(http.HandlerFunc(h.DeleteCandidate)))
}

// ListCandidates возвращает всех кандидатов с названием партии.
// GET /api/candidates
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if HandleRepoError(w, h.log(r), err, domain.EntityCandidate) {
		return
	}

	Success(w, candidates)
}

// GetCandidate возвращает кандидата по ID.
// GET /api/candidate/{id}
func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityCandidate)
	if !ok {
		return
	}

	candidate, err := h.candidates.GetByID(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityCandidate) {
		return
	}

	Success(w, candidate)
}

// CreateCandidate создаёт кандидата.
// POST /api/candidate
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r, validate.CandidateCreate)
	if !ok {
		return
	}

	candidate := candidateFromPayload(payload)
	if err := h.candidates.Create(r.Context(), candidate); HandleRepoError(w, h.log(r), err, domain.EntityCandidate) {
		return
	}

	Success(w, candidate)
	h.publishChange(w, r, domain.EntityCandidate, domain.ActionCreated, candidate.ID, payload)
}

// UpdateCandidate переводит кандидата в другую партию.
// PUT /api/candidate/{id}
func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityCandidate)
	if !ok {
		return
	}
	payload, ok := readPayload(w, r, validate.CandidateUpdate)
	if !ok {
		return
	}

	changes, err := h.candidates.UpdateParty(r.Context(), id, validate.Int(payload, "party_id"))
	if HandleRepoError(w, h.log(r), err, domain.EntityCandidate) {
		return
	}

	Updated(w, payload, changes)
	h.publishChange(w, r, domain.EntityCandidate, domain.ActionUpdated, id, payload)
}

// DeleteCandidate удаляет кандидата.
// DELETE /api/candidate/{id}
func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityCandidate)
	if !ok {
		return
	}

	changes, err := h.candidates.Delete(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityCandidate) {
		return
	}

	Deleted(w, changes, id)
	h.publishChange(w, r, domain.EntityCandidate, domain.ActionDeleted, id, nil)
}
