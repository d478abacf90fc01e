// Package rpc implements a minimal Ethereum JSON-RPC client over HTTP,
// covering the read calls this service needs: eth_blockNumber, eth_call
// and eth_getLogs. Transport failures are retried with exponential backoff;
// errors reported by the node itself are returned as-is so callers can
// inspect revert payloads.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	name       string
	url        string
	httpClient *http.Client
	maxRetries int
}

func NewClient(name, url string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		name:       name,
		url:        url,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return c.name }

// Call executes a JSON-RPC method with simple exponential backoff retry.
// Node-reported errors (*RPCError) are terminal and never retried.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if params == nil {
		params = []interface{}{}
	}

	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, _ := json.Marshal(req)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			if resp.Error != nil {
				return nil, resp.Error
			}
			return resp.Result, nil
		}

		lastErr = err

		// Exponential backoff: 100ms, 200ms, 400ms...
		if attempt < c.maxRetries {
			backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d", httpResp.StatusCode)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	return &resp, nil
}

// BlockNumber fetches the current block height via eth_blockNumber.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	result, err := c.Call(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var hexStr string
	if err := json.Unmarshal(result, &hexStr); err != nil {
		return 0, fmt.Errorf("failed to parse block number: %w", err)
	}

	return ParseHexUint64(hexStr)
}

// CallContract executes a read-only eth_call against the latest block and
// returns the hex-encoded return data.
func (c *Client) CallContract(ctx context.Context, to, calldata string) (string, error) {
	result, err := c.Call(ctx, "eth_call", map[string]string{
		"to":   to,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}

	var hexData string
	if err := json.Unmarshal(result, &hexData); err != nil {
		return "", fmt.Errorf("failed to parse call result: %w", err)
	}

	return hexData, nil
}

// Logs fetches event logs matching the filter via eth_getLogs.
// Logs are returned in the order the node delivers them (block order).
func (c *Client) Logs(ctx context.Context, q FilterQuery) ([]Log, error) {
	filter := map[string]interface{}{
		"address":   q.Address,
		"fromBlock": Uint64ToHex(q.FromBlock),
		"toBlock":   Uint64ToHex(q.ToBlock),
	}
	if len(q.Topics) > 0 {
		filter["topics"] = q.Topics
	}

	result, err := c.Call(ctx, "eth_getLogs", filter)
	if err != nil {
		return nil, err
	}

	var logs []Log
	if err := json.Unmarshal(result, &logs); err != nil {
		return nil, fmt.Errorf("failed to parse logs: %w", err)
	}

	return logs, nil
}
