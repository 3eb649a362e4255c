package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/validate"
)

// maxBodyBytes — предельный размер тела запроса.
const maxBodyBytes = 1 << 20

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid id")
)

// decodePayload читает тело запроса как JSON объект.
// Числа сохраняются как json.Number, чтобы целые id не теряли точность.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	if payload == nil {
		return nil, errInvalidBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", errInvalidBody)
	}
	return payload, nil
}

// parseID извлекает положительный целый {id} из пути.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// readPayload декодирует тело и проверяет его по схеме.
// При ошибке ответ 400 уже записан.
func readPayload(w http.ResponseWriter, r *http.Request, schema validate.Schema) (map[string]any, bool) {
	payload, err := decodePayload(w, r)
	if err != nil {
		BadRequest(w, errInvalidBody.Error())
		return nil, false
	}
	if err := validate.Check(payload, schema); err != nil {
		BadRequest(w, err.Error())
		return nil, false
	}
	return payload, true
}

// readID разбирает {id}; при ошибке ответ 400 уже записан.
func readID(w http.ResponseWriter, r *http.Request, entity domain.Entity) (int64, bool) {
	id, err := parseID(r)
	if err != nil {
		BadRequest(w, "invalid "+string(entity)+" id")
		return 0, false
	}
	return id, true
}

func candidateFromPayload(p map[string]any) *domain.Candidate {
	return &domain.Candidate{
		FirstName:         validate.String(p, "first_name"),
		LastName:          validate.String(p, "last_name"),
		IndustryConnected: validate.Bool(p, "industry_connected"),
		PartyID:           validate.OptionalInt(p, "party_id"),
	}
}

func partyFromPayload(p map[string]any) *domain.Party {
	return &domain.Party{
		Name:        validate.String(p, "name"),
		Description: validate.OptionalString(p, "description"),
	}
}

func voterFromPayload(p map[string]any) *domain.Voter {
	return &domain.Voter{
		FirstName: validate.String(p, "first_name"),
		LastName:  validate.String(p, "last_name"),
		Email:     validate.String(p, "email"),
	}
}

func voteFromPayload(p map[string]any) *domain.Vote {
	return &domain.Vote{
		VoterID:     validate.Int(p, "voter_id"),
		CandidateID: validate.Int(p, "candidate_id"),
	}
}
