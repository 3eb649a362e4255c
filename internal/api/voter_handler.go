package api

import (
	"net/http"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/validate"
)

func (h *Handler) registerVoterRoutes(mux *http.ServeMux, chain Middleware) {
	mux.Handle("GET /api/voters", chain(http.HandlerFunc(h.ListVoters)))
	mux.Handle("GET /api/voter/{id}", chain(http.HandlerFunc(h.GetVoter)))
	mux.Handle("POST /api/voter", chain(http.HandlerFunc(h.CreateVoter)))
	mux.Handle("PUT /api/voter/{id}", chain(http.HandlerFunc(h.UpdateVoter)))
	mux.Handle("DELETE /api/voter/{id}", chain(http.HandlerFunc(h.DeleteVoter)))
}

// ListVoters — GET /api/voters
func (h *Handler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.voters.List(r.Context())
	if HandleRepoError(w, h.log(r), err, domain.EntityVoter) {
		return
	}

	Success(w, voters)
}

// GetVoter — GET /api/voter/{id}
func (h *Handler) GetVoter(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityVoter)
	if !ok {
		return
	}

	voter, err := h.voters.GetByID(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityVoter) {
		return
	}

	Success(w, voter)
}

// CreateVoter регистрирует избирателя. Email должен быть уникален (иначе 409).
// POST /api/voter
func (h *Handler) CreateVoter(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r, validate.VoterCreate)
	if !ok {
		return
	}

	voter := voterFromPayload(payload)
	if err := h.voters.Create(r.Context(), voter); HandleRepoError(w, h.log(r), err, domain.EntityVoter) {
		return
	}

	Success(w, voter)
	h.publishChange(w, r, domain.EntityVoter, domain.ActionCreated, voter.ID, payload)
}

// UpdateVoter меняет email избирателя.
// PUT /api/voter/{id}
func (h *Handler) UpdateVoter(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityVoter)
	if !ok {
		return
	}
	payload, ok := readPayload(w, r, validate.VoterUpdate)
	if !ok {
		return
	}

	changes, err := h.voters.UpdateEmail(r.Context(), id, validate.String(payload, "email"))
	if HandleRepoError(w, h.log(r), err, domain.EntityVoter) {
		return
	}

	Updated(w, payload, changes)
	h.publishChange(w, r, domain.EntityVoter, domain.ActionUpdated, id, payload)
}

// DeleteVoter удаляет избирателя вместе с его голосом.
// DELETE /api/voter/{id}
func (h *Handler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityVoter)
	if !ok {
		return
	}

	changes, err := h.voters.Delete(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityVoter) {
		return
	}

	Deleted(w, changes, id)
	h.publishChange(w, r, domain.EntityVoter, domain.ActionDeleted, id, nil)
}
