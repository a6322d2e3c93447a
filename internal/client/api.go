package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIClient is a typed wrapper over the timbr HTTP API.
type APIClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SignupRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName string  `json:"displayName"`
	Role        string  `json:"role"`
	Phone       *string `json:"phone,omitempty"`
}

// ListParams mirrors the query string of GET /api/houses.
type ListParams struct {
	Take         int
	Skip         int
	MinPrice     *int
	MaxPrice     *int
	MinBeds      *int
	MaxBeds      *int
	PropertyType string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	v.Set("take", strconv.Itoa(p.Take))
	v.Set("skip", strconv.Itoa(p.Skip))
	set := func(k string, x *int) {
		if x != nil {
			v.Set(k, strconv.Itoa(*x))
		}
	}
	set("minPrice", p.MinPrice)
	set("maxPrice", p.MaxPrice)
	set("minBeds", p.MinBeds)
	set("maxBeds", p.MaxBeds)
	if p.PropertyType != "" {
		v.Set("propertyType", p.PropertyType)
	}
	return v
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *APIClient) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Houses(ctx context.Context, p ListParams) ([]House, error) {
	var out struct {
		Houses []House `json:"houses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/houses?"+p.values().Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Houses, nil
}

func (c *APIClient) House(ctx context.Context, id string) (*House, error) {
	var out struct {
		House House `json:"house"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/houses/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.House, nil
}

// RecordSwipe posts one decision. dwell is sent in whole milliseconds.
func (c *APIClient) RecordSwipe(ctx context.Context, houseID string, dir Direction, dwell time.Duration) (*Swipe, error) {
	ms := int(dwell.Milliseconds())
	body := struct {
		HouseID   string    `json:"houseId"`
		Direction Direction `json:"direction"`
		DwellMs   int       `json:"dwellMs"`
	}{houseID, dir, max(ms, 0)}
	var out struct {
		Swipe Swipe `json:"swipe"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/swipes", body, &out); err != nil {
		return nil, err
	}
	return &out.Swipe, nil
}

// Preferences returns nil when the buyer has no stored row.
func (c *APIClient) Preferences(ctx context.Context) (*Preferences, error) {
	var out struct {
		Preferences *Preferences `json:"preferences"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/preferences", nil, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

func (c *APIClient) PutPreferences(ctx context.Context, p Preferences) (*Preferences, error) {
	var out struct {
		Preferences *Preferences `json:"preferences"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/preferences", p, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

func (c *APIClient) Agent(ctx context.Context, id string) (*AgentDetail, error) {
	var out struct {
		Agent AgentDetail `json:"agent"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/agents/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Agent, nil
}
