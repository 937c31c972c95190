package ledgerapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		AccountID: "acct-1",
		PageSize:  2,
		Timeout:   5 * time.Second,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig("https://ledger.example.com").Validate())

	cfg := testConfig("https://ledger.example.com")
	cfg.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig("https://ledger.example.com")
	cfg.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig("https://ledger.example.com")
	cfg.AccountID = ""
	assert.Error(t, cfg.Validate())
}

func TestFetchInvoices(t *testing.T) {
	t.Run("follows pagination to the end", func(t *testing.T) {
		var gotAuth, gotAccount string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotAccount = r.Header.Get("X-Account-ID")
			require.Equal(t, "/v1/invoices", r.URL.Path)

			switch r.URL.Query().Get("page") {
			case "1":
				fmt.Fprint(w, `{"invoices":[
					{"id":1001,"customer_id":77,"customer_name":"Acme, Inc.","number":"INV-1001","status":"open","currency":"USD","amount":"1500.00","amount_due":"1500.00","issue_date":"2026-01-15","due_date":"2026-02-15"},
					{"id":1002,"customer_id":77,"customer_name":"Acme, Inc.","number":"INV-1002","status":"paid","currency":"USD","amount":"200.00","amount_due":"0.00","issue_date":"2026-01-20","paid_date":"2026-02-01"}
				],"page":1,"has_more":true}`)
			case "2":
				fmt.Fprint(w, `{"invoices":[
					{"id":1003,"customer_id":99,"customer_name":"Initech","number":"INV-1003","status":"overdue","currency":"USD","amount":"50.00","amount_due":"50.00","issue_date":"2025-12-01","due_date":"2025-12-31"}
				],"page":2,"has_more":false}`)
			default:
				t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			}
		}))

		records, err := client.FetchInvoices(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "acct-1", gotAccount)

		assert.Equal(t, int64(1001), records[0].LedgerInvoiceID)
		assert.Equal(t, int64(77), records[0].LedgerCustomerID)
		assert.Equal(t, ledger.InvoiceStatusOpen, records[0].Status)
		assert.Equal(t, "1500.00", records[0].Amount.StringFixed(2))
		require.NotNil(t, records[0].DueDate)
		assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), *records[0].DueDate)
		assert.Nil(t, records[0].PaidDate)

		assert.Equal(t, ledger.InvoiceStatusPaid, records[1].Status)
		require.NotNil(t, records[1].PaidDate)

		assert.Equal(t, ledger.InvoiceStatusOverdue, records[2].Status)
	})

	t.Run("empty account yields no records", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"invoices":[],"page":1,"has_more":false}`)
		}))

		records, err := client.FetchInvoices(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("mid-pagination failure returns no partial result", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "1" {
				fmt.Fprint(w, `{"invoices":[
					{"id":1001,"customer_id":77,"customer_name":"Acme","number":"INV-1001","status":"open","amount":"10.00","amount_due":"10.00","issue_date":"2026-01-15"}
				],"page":1,"has_more":true}`)
				return
			}
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		}))

		records, err := client.FetchInvoices(context.Background())
		assert.Nil(t, records)
		assert.ErrorIs(t, err, ledger.ErrGatewayRequest)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("auth rejection maps to the auth sentinel", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
		}))

		_, err := client.FetchInvoices(context.Background())
		assert.ErrorIs(t, err, ledger.ErrGatewayAuth)
		assert.Contains(t, err.Error(), "bad key")
	})

	t.Run("malformed body maps to the response sentinel", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"invoices": not json`)
		}))

		_, err := client.FetchInvoices(context.Background())
		assert.ErrorIs(t, err, ledger.ErrGatewayResponse)
	})

	t.Run("unknown status maps to the response sentinel", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"invoices":[
				{"id":1,"customer_id":2,"customer_name":"X","number":"I-1","status":"mystery","amount":"1.00","amount_due":"1.00","issue_date":"2026-01-01"}
			],"page":1,"has_more":false}`)
		}))

		_, err := client.FetchInvoices(context.Background())
		assert.ErrorIs(t, err, ledger.ErrGatewayResponse)
		assert.Contains(t, err.Error(), "mystery")
	})

	t.Run("unreachable server maps to the unavailable sentinel", func(t *testing.T) {
		client, err := NewClient(testConfig("http://127.0.0.1:1"), zap.NewNop())
		require.NoError(t, err)

		_, err = client.FetchInvoices(context.Background())
		assert.ErrorIs(t, err, ledger.ErrGatewayUnavailable)
	})
}

func TestClientTestConnection(t *testing.T) {
	t.Run("reports the account name", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/account", r.URL.Path)
			fmt.Fprint(w, `{"id":1,"name":"Acme Books"}`)
		}))

		check, err := client.TestConnection(context.Background())
		require.NoError(t, err)
		assert.True(t, check.OK)
		assert.Equal(t, "Acme Books", check.AccountName)
	})

	t.Run("propagates auth failures", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"expired"}`, http.StatusForbidden)
		}))

		check, err := client.TestConnection(context.Background())
		assert.Nil(t, check)
		assert.ErrorIs(t, err, ledger.ErrGatewayAuth)
		assert.Contains(t, err.Error(), "expired")
	})
}

func TestMapInvoiceStatus(t *testing.T) {
	cases := map[string]ledger.InvoiceStatus{
		"draft":          ledger.InvoiceStatusDraft,
		"open":           ledger.InvoiceStatusOpen,
		"sent":           ledger.InvoiceStatusOpen,
		"viewed":         ledger.InvoiceStatusOpen,
		"partial":        ledger.InvoiceStatusPartial,
		"partially_paid": ledger.InvoiceStatusPartial,
		"paid":           ledger.InvoiceStatusPaid,
		"overdue":        ledger.InvoiceStatusOverdue,
		"past_due":       ledger.InvoiceStatusOverdue,
		"void":           ledger.InvoiceStatusVoid,
		"written_off":    ledger.InvoiceStatusVoid,
		"PAID":           ledger.InvoiceStatusPaid,
		" open ":         ledger.InvoiceStatusOpen,
	}
	for raw, want := range cases {
		got, err := mapInvoiceStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := mapInvoiceStatus("cancelled")
	assert.Error(t, err)
}
