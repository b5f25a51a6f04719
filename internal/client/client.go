// Package client talks to the collision API over HTTP. It is the consumer
// side of the physics boundary: the simulation state machine uses it as a
// Resolver, and any failure comes back as a single human-readable
// TransportError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/san-kum/crashsim/internal/config"
	"github.com/san-kum/crashsim/internal/physics"
)

// TransportError reports a failed boundary call: network failure, a
// non-success status, or an undecodable body.
type TransportError struct {
	Op     string
	Status int
	Err    error
	Detail string
}

func (e *TransportError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is a minimal collision-API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type particlePayload struct {
	Mass     float64 `json:"mass"`
	Velocity float64 `json:"velocity"`
}

type simulatePayload struct {
	Particle1   particlePayload `json:"particle1"`
	Particle2   particlePayload `json:"particle2"`
	Restitution float64         `json:"restitution"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Resolve runs a collision on the server. It satisfies sim.Resolver.
func (c *Client) Resolve(ctx context.Context, m1, v1, m2, v2, e float64) (*physics.Result, error) {
	payload := simulatePayload{
		Particle1:   particlePayload{Mass: m1, Velocity: v1},
		Particle2:   particlePayload{Mass: m2, Velocity: v2},
		Restitution: e,
	}

	var result physics.Result
	if err := c.post(ctx, "/api/v1/simulate", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Presets fetches the server's preset catalog.
func (c *Client) Presets(ctx context.Context) ([]config.Preset, error) {
	var presets []config.Preset
	if err := c.get(ctx, "/api/v1/presets", &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	const op = "collision api"

	body, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	const op = "collision api"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			return &TransportError{Op: op, Status: resp.StatusCode, Detail: eb.Error}
		}
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
