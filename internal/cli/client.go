package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// --- Response types (дублируются из domain, CLI не импортирует internal/) ---

// CandidateResponse — кандидат из API.
type CandidateResponse struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	IndustryConnected bool   `json:"industry_connected"`
	PartyID           *int64 `json:"party_id"`
	PartyName         string `json:"party_name,omitempty"`
}

// PartyResponse — партия из API.
type PartyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// VoterResponse — избиратель из API.
type VoterResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// VoteResponse — голос из API.
type VoteResponse struct {
	ID            int64  `json:"id"`
	VoterID       int64  `json:"voter_id"`
	CandidateID   int64  `json:"candidate_id"`
	VoterName     string `json:"voter_name,omitempty"`
	CandidateName string `json:"candidate_name,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// TallyRow — строка итогов голосования; выгружается в CSV.
type TallyRow struct {
	CandidateID int64  `json:"candidate_id" csv:"candidate_id"`
	FirstName   string `json:"first_name" csv:"first_name"`
	LastName    string `json:"last_name" csv:"last_name"`
	PartyName   string `json:"party_name" csv:"party_name"`
	Count       int64  `json:"count" csv:"count"`
}

// --- Request types ---

// CreateCandidateRequest — создание кандидата.
type CreateCandidateRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	IndustryConnected bool   `json:"industry_connected"`
	PartyID           *int64 `json:"party_id,omitempty"`
}

// VoterRow — регистрация избирателя; также строка CSV для импорта.
type VoterRow struct {
	FirstName string `json:"first_name" csv:"first_name"`
	LastName  string `json:"last_name" csv:"last_name"`
	Email     string `json:"email" csv:"email"`
}

// --- API response wrappers ---

type dataResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type changesResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// APIError — ответ API с кодом 4xx/5xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// --- Client ---

// Client — HTTP-клиент для Election API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func idPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

// --- Candidates ---

// ListCandidates возвращает всех кандидатов.
func (c *Client) ListCandidates() ([]CandidateResponse, error) {
	var candidates []CandidateResponse
	err := c.get("/api/candidates", &candidates)
	return candidates, err
}

// GetCandidate возвращает кандидата по ID.
func (c *Client) GetCandidate(id int64) (*CandidateResponse, error) {
	var candidate CandidateResponse
	err := c.get(idPath("/api/candidate/", id), &candidate)
	return &candidate, err
}

// CreateCandidate создаёт кандидата.
func (c *Client) CreateCandidate(req CreateCandidateRequest) (*CandidateResponse, error) {
	var candidate CandidateResponse
	err := c.post("/api/candidate", req, &candidate)
	return &candidate, err
}

// SetCandidateParty переводит кандидата в партию.
func (c *Client) SetCandidateParty(id, partyID int64) (int64, error) {
	return c.put(idPath("/api/candidate/", id), map[string]int64{"party_id": partyID})
}

// DeleteCandidate удаляет кандидата.
func (c *Client) DeleteCandidate(id int64) (int64, error) {
	return c.delete(idPath("/api/candidate/", id))
}

// --- Parties ---

// ListParties возвращает все партии.
func (c *Client) ListParties() ([]PartyResponse, error) {
	var parties []PartyResponse
	err := c.get("/api/parties", &parties)
	return parties, err
}

// GetParty возвращает партию по ID.
func (c *Client) GetParty(id int64) (*PartyResponse, error) {
	var party PartyResponse
	err := c.get(idPath("/api/party/", id), &party)
	return &party, err
}

// CreateParty создаёт партию; пустое описание не передаётся.
func (c *Client) CreateParty(name, description string) (*PartyResponse, error) {
	body := map[string]string{"name": name}
	if description != "" {
		body["description"] = description
	}
	var party PartyResponse
	err := c.post("/api/party", body, &party)
	return &party, err
}

// UpdateParty переименовывает партию. nil description оставляет описание прежним.
func (c *Client) UpdateParty(id int64, name string, description *string) (int64, error) {
	body := map[string]any{"name": name}
	if description != nil {
		body["description"] = *description
	}
	return c.put(idPath("/api/party/", id), body)
}

// DeleteParty удаляет партию.
func (c *Client) DeleteParty(id int64) (int64, error) {
	return c.delete(idPath("/api/party/", id))
}

// --- Voters ---

// ListVoters возвращает всех избирателей.
func (c *Client) ListVoters() ([]VoterResponse, error) {
	var voters []VoterResponse
	err := c.get("/api/voters", &voters)
	return voters, err
}

// GetVoter возвращает избирателя по ID.
func (c *Client) GetVoter(id int64) (*VoterResponse, error) {
	var voter VoterResponse
	err := c.get(idPath("/api/voter/", id), &voter)
	return &voter, err
}

// CreateVoter регистрирует избирателя.
func (c *Client) CreateVoter(row VoterRow) (*VoterResponse, error) {
	var voter VoterResponse
	err := c.post("/api/voter", row, &voter)
	return &voter, err
}

// UpdateVoterEmail меняет email избирателя.
func (c *Client) UpdateVoterEmail(id int64, email string) (int64, error) {
	return c.put(idPath("/api/voter/", id), map[string]string{"email": email})
}

// DeleteVoter удаляет избирателя.
func (c *Client) DeleteVoter(id int64) (int64, error) {
	return c.delete(idPath("/api/voter/", id))
}

// --- Votes ---

// ListVotes возвращает все голоса.
func (c *Client) ListVotes() ([]VoteResponse, error) {
	var votes []VoteResponse
	err := c.get("/api/votes", &votes)
	return votes, err
}

// GetVote возвращает голос по ID.
func (c *Client) GetVote(id int64) (*VoteResponse, error) {
	var vote VoteResponse
	err := c.get(idPath("/api/vote/", id), &vote)
	return &vote, err
}

// CastVote отдаёт голос избирателя за кандидата.
func (c *Client) CastVote(voterID, candidateID int64) (*VoteResponse, error) {
	body := map[string]int64{"voter_id": voterID, "candidate_id": candidateID}
	var vote VoteResponse
	err := c.post("/api/vote", body, &vote)
	return &vote, err
}

// MoveVote переносит голос на другого кандидата.
func (c *Client) MoveVote(id, candidateID int64) (int64, error) {
	return c.put(idPath("/api/vote/", id), map[string]int64{"candidate_id": candidateID})
}

// DeleteVote удаляет голос.
func (c *Client) DeleteVote(id int64) (int64, error) {
	return c.delete(idPath("/api/vote/", id))
}

// Tally возвращает итоги голосования.
func (c *Client) Tally() ([]TallyRow, error) {
	var rows []TallyRow
	err := c.get("/api/votes/tally", &rows)
	return rows, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any) (int64, error) {
	return c.doChanges(http.MethodPut, path, body)
}

func (c *Client) delete(path string) (int64, error) {
	return c.doChanges(http.MethodDelete, path, nil)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) doChanges(method, path string, body any) (int64, error) {
	resp, err := c.do(method, path, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return 0, err
	}

	var cr changesResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return cr.Changes, nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: er.Error}
}
