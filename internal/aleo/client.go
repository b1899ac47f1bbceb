// Package aleo is a read-only client for the Aleo explorer REST API. It covers
// the query surface the frontend uses (balances, transactions, programs). The
// record service itself never calls the network; this client backs operator
// tooling only.
package aleo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is returned when the network has no record of the queried object
var ErrNotFound = errors.New("aleo: not found")

const microcreditsPerCredit = 1_000_000

// account mapping values come back as Leo literals, e.g. "1500000u64"
var microcreditsRe = regexp.MustCompile(`(\d+)u64`)

// Client queries a single Aleo network through an explorer endpoint
type Client struct {
	http    *resty.Client
	network string
}

// NewClient creates a client for the given explorer base URL and network name
func NewClient(apiURL, network string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiURL).
			SetTimeout(15 * time.Second),
		network: network,
	}
}

// Balance returns the public credits balance of an address. Addresses with no
// account mapping entry have a zero balance, which is not an error.
func (c *Client) Balance(ctx context.Context, address string) (float64, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/%s/program/credits.aleo/mapping/account/%s", c.network, address))
	if err != nil {
		return 0, err
	}
	if !resp.IsSuccess() {
		return 0, nil
	}

	match := microcreditsRe.FindStringSubmatch(resp.String())
	if match == nil {
		return 0, nil
	}
	micro, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(micro) / microcreditsPerCredit, nil
}

// Transaction fetches a transaction by ID
func (c *Client) Transaction(ctx context.Context, txID string) (json.RawMessage, error) {
	return c.getJSON(ctx, fmt.Sprintf("/%s/transaction/%s", c.network, txID))
}

// TransactionExists reports whether the network knows the transaction
func (c *Client) TransactionExists(ctx context.Context, txID string) (bool, error) {
	_, err := c.Transaction(ctx, txID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Program fetches a deployed program by ID, e.g. "privypoll_v1.aleo"
func (c *Client) Program(ctx context.Context, programID string) (json.RawMessage, error) {
	return c.getJSON(ctx, fmt.Sprintf("/%s/program/%s", c.network, programID))
}

// ProgramDeployed reports whether a program exists on the network
func (c *Client) ProgramDeployed(ctx context.Context, programID string) (bool, error) {
	_, err := c.Program(ctx, programID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) getJSON(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("aleo: %s returned %s", path, resp.Status())
	}
	return json.RawMessage(resp.Body()), nil
}
