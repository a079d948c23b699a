package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrNodeRequest = errors.New("node request failed")

// NodeError carries the node's status code and message. It matches
// ErrNodeRequest with errors.Is.
type NodeError struct {
	StatusCode int
	Message    string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrNodeRequest, e.StatusCode, e.Message)
}

func (e *NodeError) Unwrap() error {
	return ErrNodeRequest
}

func NewRpcClient(nodeURI string) (client *RpcClient, err error) {
	if nodeURI == "" {
		err = errors.New("node uri is required")
		return
	}

	client = &RpcClient{
		NodeURI: strings.TrimSuffix(nodeURI, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
	return
}

type RpcClient struct {
	NodeURI string
	HTTP    *http.Client
}

func (c *RpcClient) req(ctx context.Context, method string, path string, body io.Reader) (out []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.NodeURI+"/api/v0/"+path, body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	rsp, err := c.HTTP.Do(req)
	if err != nil {
		err = errors.Wrapf(ErrNodeRequest, "%s %s: %v", method, path, err)
		return
	}
	defer rsp.Body.Close()

	out, err = io.ReadAll(rsp.Body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		message := gjson.GetBytes(out, "error").String()
		if message == "" {
			message = strings.TrimSpace(string(out))
		}
		err = errors.WithStack(&NodeError{StatusCode: rsp.StatusCode, Message: message})
		out = nil
		return
	}

	return
}

func (c *RpcClient) post(ctx context.Context, path string, in any) (out []byte, err error) {
	jsn, err := json.Marshal(in)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	return c.req(ctx, http.MethodPost, path, bytes.NewReader(jsn))
}

// Post sends a raw request body to an api/v0 path and returns the raw
// response.
func (c *RpcClient) Post(ctx context.Context, path string, in any) ([]byte, error) {
	return c.post(ctx, path, in)
}

type ConstructOut struct {
	TransactionHex string
	FeeNanos       uint64
	Raw            json.RawMessage
}

// Construct asks the node to build the transaction at endpoint from
// request and returns the unsigned hex.
func (c *RpcClient) Construct(ctx context.Context, endpoint string, request any) (out *ConstructOut, err error) {
	raw, err := c.post(ctx, endpoint, request)
	if err != nil {
		return
	}

	parsed := gjson.ParseBytes(raw)
	out = &ConstructOut{
		TransactionHex: parsed.Get("TransactionHex").String(),
		FeeNanos:       parsed.Get("FeeNanos").Uint(),
		Raw:            raw,
	}
	if out.TransactionHex == "" {
		out = nil
		err = errors.Wrapf(ErrNodeRequest, "%s response has no TransactionHex", endpoint)
	}
	return
}

type SubmitTransactionIn struct {
	TransactionHex string `json:"TransactionHex"`
}

type SubmitTransactionOut struct {
	TxnHashHex string
	Raw        json.RawMessage
}

func (c *RpcClient) SubmitTransaction(ctx context.Context, in *SubmitTransactionIn) (out *SubmitTransactionOut, err error) {
	raw, err := c.post(ctx, "submit-transaction", in)
	if err != nil {
		return
	}

	out = &SubmitTransactionOut{
		TxnHashHex: gjson.GetBytes(raw, "TxnHashHex").String(),
		Raw:        raw,
	}
	return
}

type AppState struct {
	BlockHeight          uint64
	MinFeeRateNanosPerKB uint64
}

func (c *RpcClient) GetAppState(ctx context.Context) (out *AppState, err error) {
	raw, err := c.post(ctx, "get-app-state", struct{}{})
	if err != nil {
		return
	}

	parsed := gjson.ParseBytes(raw)
	out = &AppState{
		BlockHeight:          parsed.Get("BlockHeight").Uint(),
		MinFeeRateNanosPerKB: parsed.Get("MinFeeRateNanosPerKB").Uint(),
	}
	if out.MinFeeRateNanosPerKB == 0 {
		out.MinFeeRateNanosPerKB = parsed.Get("DefaultFeeRateNanosPerKB").Uint()
	}
	return
}
