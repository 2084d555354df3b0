// Package mock is a deterministic in-process provider for tests and demos.
package mock

import (
	"context"
	"fmt"
)

// Client echoes a canned completion without any network access.
type Client struct {
	// Err, when set, is returned from every Complete call.
	Err error
	// Response overrides the default canned reply.
	Response string

	// Calls records every user prompt received, in order.
	Calls []string
}

func New() *Client { return &Client{} }

func (c *Client) Name() string { return "mock" }

func (c *Client) Complete(_ context.Context, _, user string) (string, error) {
	c.Calls = append(c.Calls, user)
	if c.Err != nil {
		return "", c.Err
	}
	if c.Response != "" {
		return c.Response, nil
	}
	return fmt.Sprintf("mock analysis (%d chars of context)", len(user)), nil
}
