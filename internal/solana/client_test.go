package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	ferrors "github.com/lugondev/solfleet/internal/errors"
)

const (
	statusPending   = "null"
	statusConfirmed = `{"slot":100,"confirmations":1,"err":null,"confirmationStatus":"confirmed"}`
	statusFailed    = `{"slot":100,"confirmations":null,"err":{"InstructionError":[0,{"Custom":1}]},"confirmationStatus":"confirmed"}`
)

// statusStub runs a JSON-RPC endpoint whose getSignatureStatuses answer is
// chosen per call by status(n), n counting from 1.
func statusStub(t *testing.T, status func(call int) string) *Client {
	t.Helper()

	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unparseable rpc request: %v", err)
		}

		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"context":{"slot":100},"value":[%s]}}`, req.ID, status(n))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.pollInterval = 5 * time.Millisecond
	return c
}

func TestConfirmTransactionConfirmed(t *testing.T) {
	c := statusStub(t, func(int) string { return statusConfirmed })

	var sig solana.Signature
	sig[0] = 1
	if err := c.ConfirmTransaction(context.Background(), sig); err != nil {
		t.Fatalf("ConfirmTransaction: %v", err)
	}
}

func TestConfirmTransactionPendingThenConfirmed(t *testing.T) {
	c := statusStub(t, func(call int) string {
		if call < 3 {
			return statusPending
		}
		return statusConfirmed
	}).WithConfirmTimeout(5 * time.Second)

	var sig solana.Signature
	sig[0] = 2
	if err := c.ConfirmTransaction(context.Background(), sig); err != nil {
		t.Fatalf("ConfirmTransaction after pending polls: %v", err)
	}
}

func TestConfirmTransactionOnChainFailure(t *testing.T) {
	c := statusStub(t, func(int) string { return statusFailed })

	var sig solana.Signature
	sig[0] = 3
	err := c.ConfirmTransaction(context.Background(), sig)

	var fe *ferrors.FleetError
	if !ferrors.As(err, &fe) || fe.Code != ferrors.ErrCodeTransactionFailed {
		t.Fatalf("err = %v, want transaction failed", err)
	}
	if ferrors.IsTransient(err) {
		t.Error("an on-chain execution failure is permanent, not transient")
	}
}

func TestConfirmTransactionTimeout(t *testing.T) {
	c := statusStub(t, func(int) string { return statusPending }).
		WithConfirmTimeout(50 * time.Millisecond)

	var sig solana.Signature
	sig[0] = 4
	err := c.ConfirmTransaction(context.Background(), sig)

	if !ferrors.Is(err, ferrors.ErrConfirmTimeout) {
		t.Fatalf("err = %v, want confirm timeout", err)
	}
	if !ferrors.IsTransient(err) {
		t.Error("a confirmation timeout should be transient")
	}
}

func TestCallTimeoutBoundsSlowRPC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":0,"result":{"context":{"slot":1},"value":0}}`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL).WithCallTimeout(20 * time.Millisecond)
	_, err := c.GetBalance(context.Background(), solana.PublicKey{})
	if err == nil {
		t.Fatal("expected the per-call deadline to cut the request off")
	}
	if !ferrors.IsTransient(err) {
		t.Errorf("err = %v, want a transient rpc failure", err)
	}
}
