package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"slotbench/pkg/common"
)

// Client speaks JSON-RPC 2.0 to a Solana-style node. It is intentionally
// thin: one method per RPC call the downloader needs.
type Client struct {
	url  string
	http *http.Client
}

func New(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// Error is the error object of a JSON-RPC response. Slot-skipped and
// block-not-available conditions arrive here.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(request{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: unexpected status %s", method, resp.Status)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if r.Error != nil {
		return r.Error
	}
	if out != nil {
		if err := json.Unmarshal(r.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}
	return nil
}

// GetSlot returns the latest finalized slot of the node.
func (c *Client) GetSlot(ctx context.Context) (uint64, error) {
	var slot uint64
	params := []any{map[string]string{"commitment": "finalized"}}
	if err := c.call(ctx, "getSlot", params, &slot); err != nil {
		return 0, err
	}
	return slot, nil
}

type blockResult struct {
	Transactions []struct {
		Transaction struct {
			AccountKeys []struct {
				Pubkey string `json:"pubkey"`
			} `json:"accountKeys"`
		} `json:"transaction"`
	} `json:"transactions"`
}

// BlockKeys fetches one block and returns the distinct account keys
// referenced by its transactions. A skipped or pruned slot surfaces as an
// *Error from the node.
func (c *Client) BlockKeys(ctx context.Context, slot uint64) ([]common.Key, error) {
	params := []any{slot, map[string]any{
		"encoding":                       "json",
		"transactionDetails":             "accounts",
		"rewards":                        false,
		"maxSupportedTransactionVersion": 0,
	}}

	var block blockResult
	if err := c.call(ctx, "getBlock", params, &block); err != nil {
		return nil, fmt.Errorf("get block %d: %w", slot, err)
	}

	seen := make(map[common.Key]struct{})
	var keys []common.Key
	for _, tx := range block.Transactions {
		for _, acc := range tx.Transaction.AccountKeys {
			k, err := common.ParseKey(acc.Pubkey)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", slot, err)
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys, nil
}
