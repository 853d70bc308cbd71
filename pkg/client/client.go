// Package client is a Go client for the blood donation API. Credentials live in
// an explicit Session passed at construction.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request unless another http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// ErrUnauthorized is returned for any 401 response. The session has been cleared.
var ErrUnauthorized = errors.New("client: unauthorized, session cleared")

// APIError reports a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Donation is a donation record.
type Donation struct {
	ID            string    `json:"_id"`
	DonorName     string    `json:"donorName"`
	BloodType     string    `json:"bloodType"`
	Location      string    `json:"location"`
	ContactNumber string    `json:"contactNumber"`
	User          string    `json:"user"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BloodRequest is a blood request record.
type BloodRequest struct {
	ID            string    `json:"_id"`
	RequesterName string    `json:"requesterName"`
	BloodType     string    `json:"bloodType"`
	Hospital      string    `json:"hospital"`
	ContactNumber string    `json:"contactNumber"`
	Status        string    `json:"status"`
	User          string    `json:"user"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Account is the admin view of a registered user.
type Account struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	BloodType string    `json:"bloodType"`
	Location  string    `json:"location"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Registration is the sign-up form.
type Registration struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BloodType string `json:"bloodType,omitempty"`
	Location  string `json:"location,omitempty"`
}

// NewDonation is the donation form.
type NewDonation struct {
	DonorName     string `json:"donorName"`
	BloodType     string `json:"bloodType"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`
}

// NewBloodRequest is the blood request form.
type NewBloodRequest struct {
	RequesterName string `json:"requesterName"`
	BloodType     string `json:"bloodType"`
	Hospital      string `json:"hospital"`
	ContactNumber string `json:"contactNumber"`
}

// Health is the liveness payload.
type Health struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Client calls the API on behalf of a Session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client acts for.
func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, form Registration) (User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", form, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Login authenticates and stores the credentials in the session.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return User{}, err
	}
	c.session.Set(out.Token, out.User)
	return out.User, nil
}

// Logout clears the session and cancels in-flight requests.
func (c *Client) Logout() {
	c.session.Clear()
}

// MyDonations lists the caller's donations.
func (c *Client) MyDonations(ctx context.Context) ([]Donation, error) {
	var out []Donation
	if err := c.do(ctx, http.MethodGet, "/donations/my-donations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDonation records a donation and returns the server's message.
func (c *Client) CreateDonation(ctx context.Context, form NewDonation) (string, error) {
	return c.message(ctx, http.MethodPost, "/donations", form)
}

// MyRequests lists the caller's blood requests.
func (c *Client) MyRequests(ctx context.Context) ([]BloodRequest, error) {
	var out []BloodRequest
	if err := c.do(ctx, http.MethodGet, "/blood-requests/my-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRequest submits a blood request and returns the server's message.
func (c *Client) CreateRequest(ctx context.Context, form NewBloodRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/blood-requests", form)
}

// AllRequests lists every blood request. Admin only.
func (c *Client) AllRequests(ctx context.Context) ([]BloodRequest, error) {
	var out []BloodRequest
	if err := c.do(ctx, http.MethodGet, "/blood-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Approve approves a blood request. Admin only.
func (c *Client) Approve(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodPut, "/blood-requests/approve/"+url.PathEscape(id), nil)
}

// Reject rejects a blood request. Admin only.
func (c *Client) Reject(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodPut, "/blood-requests/reject/"+url.PathEscape(id), nil)
}

// Users lists every account. Admin only.
func (c *Client) Users(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
}

// Health fetches the liveness payload.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return Health{}, err
	}
	return out, nil
}

func (c *Client) message(ctx context.Context, method, path string, body any) (string, error) {
	var out messageResponse
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	sessionCtx, token := c.session.scope()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sessionCtx, cancel)
	defer stop()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload messageResponse
	if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
		payload.Message = strings.TrimSpace(string(data))
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}
