package api

import (
	"net/http"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/validate"
)

func (h *Handler) registerPartyRoutes(mux *http.ServeMux, chain Middleware) {
	mux.Handle("GET /api/parties", chain(http.HandlerFunc(h.ListParties)))
	mux.Handle("GET /api/party/{id}", chain(http.HandlerFunc(h.GetParty)))
	mux.Handle("POST /api/party", chain(http.HandlerFunc(h.CreateParty)))
	mux.Handle("PUT /api/party/{id}", chain(http.HandlerFunc(h.UpdateParty)))
	mux.Handle("DELETE /api/party/{id}", chain(http.HandlerFunc(h.DeleteParty)))
}

// ListParties — GET /api/parties
func (h *Handler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.parties.List(r.Context())
	if HandleRepoError(w, h.log(r), err, domain.EntityParty) {
		return
	}

	Success(w, parties)
}

// GetParty — GET /api/party/{id}
func (h *Handler) GetParty(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityParty)
	if !ok {
		return
	}

	party, err := h.parties.GetByID(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityParty) {
		return
	}

	Success(w, party)
}

// CreateParty — POST /api/party
func (h *Handler) CreateParty(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r, validate.PartyCreate)
	if !ok {
		return
	}

	party := partyFromPayload(payload)
	if err := h.parties.Create(r.Context(), party); HandleRepoError(w, h.log(r), err, domain.EntityParty) {
		return
	}

	Success(w, party)
	h.publishChange(w, r, domain.EntityParty, domain.ActionCreated, party.ID, payload)
}

// UpdateParty переименовывает партию. Описание меняется, только если передано.
// PUT /api/party/{id}
func (h *Handler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityParty)
	if !ok {
		return
	}
	payload, ok := readPayload(w, r, validate.PartyUpdate)
	if !ok {
		return
	}

	changes, err := h.parties.Update(r.Context(), id,
		validate.String(payload, "name"),
		validate.OptionalString(payload, "description"),
	)
	if HandleRepoError(w, h.log(r), err, domain.EntityParty) {
		return
	}

	Updated(w, payload, changes)
	h.publishChange(w, r, domain.EntityParty, domain.ActionUpdated, id, payload)
}

// DeleteParty удаляет партию; её кандидаты остаются беспартийными.
// DELETE /api/party/{id}
func (h *Handler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r, domain.EntityParty)
	if !ok {
		return
	}

	changes, err := h.parties.Delete(r.Context(), id)
	if HandleRepoError(w, h.log(r), err, domain.EntityParty) {
		return
	}

	Deleted(w, changes, id)
	h.publishChange(w, r, domain.EntityParty, domain.ActionDeleted, id, nil)
}
