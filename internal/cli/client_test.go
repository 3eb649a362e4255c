package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeAPI — минимальная имитация Election API для тестов клиента.
type fakeAPI struct {
	voters   []VoterResponse
	requests []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/candidates":
		json.NewEncoder(w).Encode(map[string]any{
			"message": "success",
			"data": []map[string]any{
				{"id": 1, "first_name": "Ada", "last_name": "Lovelace", "industry_connected": true, "party_id": 2, "party_name": "Git Gurus"},
				{"id": 2, "first_name": "Alan", "last_name": "Turing", "industry_connected": false, "party_id": nil},
			},
		})
	case r.Method == http.MethodPost && r.URL.Path == "/api/voter":
		var row VoterRow
		json.NewDecoder(r.Body).Decode(&row)
		for _, v := range f.voters {
			if v.Email == row.Email {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"error": "voter already exists"})
				return
			}
		}
		v := VoterResponse{ID: int64(len(f.voters) + 1), FirstName: row.FirstName, LastName: row.LastName, Email: row.Email}
		f.voters = append(f.voters, v)
		json.NewEncoder(w).Encode(map[string]any{"message": "success", "data": v})
	case r.Method == http.MethodPut && r.URL.Path == "/api/candidate/1":
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{"message": "success", "data": body, "changes": 1})
	case r.Method == http.MethodDelete && r.URL.Path == "/api/vote/9":
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "vote not found"})
	case r.Method == http.MethodDelete && r.URL.Path == "/api/party/3":
		json.NewEncoder(w).Encode(map[string]any{"message": "deleted", "changes": 1, "id": 3})
	case r.Method == http.MethodGet && r.URL.Path == "/api/votes/tally":
		json.NewEncoder(w).Encode(map[string]any{
			"message": "success",
			"data": []map[string]any{
				{"candidate_id": 2, "first_name": "Alan", "last_name": "Turing", "party_name": nil, "count": 5},
				{"candidate_id": 1, "first_name": "Ada", "last_name": "Lovelace", "party_name": "Git Gurus", "count": 3},
			},
		})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("oops"))
	}
}

func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return NewClient(server.URL), api
}

func TestClient_ListCandidates(t *testing.T) {
	client, _ := newTestClient(t)

	candidates, err := client.ListCandidates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].PartyID == nil || *candidates[0].PartyID != 2 || candidates[0].PartyName != "Git Gurus" {
		t.Errorf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[1].PartyID != nil {
		t.Errorf("expected independent candidate, got party %d", *candidates[1].PartyID)
	}
}

func TestClient_Changes(t *testing.T) {
	client, _ := newTestClient(t)

	changes, err := client.SetCandidateParty(1, 2)
	if err != nil || changes != 1 {
		t.Errorf("set party: expected 1 change, got %d (%v)", changes, err)
	}

	changes, err = client.DeleteParty(3)
	if err != nil || changes != 1 {
		t.Errorf("delete party: expected 1 change, got %d (%v)", changes, err)
	}
}

func TestClient_APIError(t *testing.T) {
	client, _ := newTestClient(t)

	tests := []struct {
		name       string
		call       func() error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "error envelope",
			call:       func() error { _, err := client.DeleteVote(9); return err },
			wantStatus: http.StatusNotFound,
			wantMsg:    "vote not found",
		},
		{
			name:       "non-JSON body",
			call:       func() error { _, err := client.ListParties(); return err },
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *APIError
			if err := tt.call(); !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Message != tt.wantMsg {
				t.Errorf("expected %d %q, got %d %q", tt.wantStatus, tt.wantMsg, apiErr.StatusCode, apiErr.Message)
			}
		})
	}
}

func TestReadVoterRows(t *testing.T) {
	csv := "first_name,last_name,email\nGrace,Hopper,grace@example.com\nAlan,Kay,alan@example.com\n"

	rows, err := ReadVoterRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1] != (VoterRow{FirstName: "Alan", LastName: "Kay", Email: "alan@example.com"}) {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}

func TestImportVoters_ContinuesAfterFailure(t *testing.T) {
	client, _ := newTestClient(t)

	rows := []VoterRow{
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
		{FirstName: "G", LastName: "H", Email: "grace@example.com"},
		{FirstName: "Alan", LastName: "Kay", Email: "alan@example.com"},
	}

	result := ImportVoters(client, rows)
	if len(result.Created) != 2 {
		t.Errorf("expected 2 created, got %d", len(result.Created))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].Line != 3 {
		t.Errorf("expected failure on line 3, got %d", result.Failures[0].Line)
	}
	var apiErr *APIError
	if !errors.As(result.Failures[0].Err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 failure, got %v", result.Failures[0].Err)
	}
}

func TestVoterImportCmd(t *testing.T) {
	client, api := newTestClient(t)

	path := filepath.Join(t.TempDir(), "voters.csv")
	csv := "first_name,last_name,email\nGrace,Hopper,grace@example.com\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	var stdout, stderr bytes.Buffer
	out := &Output{w: &stdout, errW: &stderr}

	cmd := NewVoterCmd(func() *Client { return client }, func() *Output { return out })
	cmd.SetArgs([]string{"import", "--file", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.voters) != 1 || api.voters[0].Email != "grace@example.com" {
		t.Errorf("expected voter to be registered, got %+v", api.voters)
	}
	if !strings.Contains(stdout.String(), "grace@example.com") {
		t.Errorf("expected imported voter in table, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Imported 1 of 1 voters") {
		t.Errorf("unexpected summary: %q", stderr.String())
	}
}

func TestVoteTallyCmd_CSV(t *testing.T) {
	client, _ := newTestClient(t)

	var stdout bytes.Buffer
	out := &Output{w: &stdout, errW: &bytes.Buffer{}}

	cmd := NewVoteCmd(func() *Client { return client }, func() *Output { return out })
	cmd.SetArgs([]string{"tally", "--csv"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "candidate_id,first_name,last_name,party_name,count\n" +
		"2,Alan,Turing,,5\n" +
		"1,Ada,Lovelace,Git Gurus,3\n"
	if stdout.String() != want {
		t.Errorf("unexpected csv:\n%s\nwant:\n%s", stdout.String(), want)
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}
	for _, s := range []string{"", "0", "-1", "abc"} {
		if _, err := parseID(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}
