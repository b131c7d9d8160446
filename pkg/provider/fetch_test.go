package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		retries   int
		wantCalls int32
		wantCode  int
	}{
		{name: "ok", statuses: []int{200}, retries: 2, wantCalls: 1},
		{name: "retry 503 then ok", statuses: []int{503, 200}, retries: 2, wantCalls: 2},
		{name: "retry 429 then ok", statuses: []int{429, 200}, retries: 1, wantCalls: 2},
		{name: "no retry on 404", statuses: []int{404, 200}, retries: 3, wantCalls: 1, wantCode: 404},
		{name: "retries exhausted", statuses: []int{500, 500, 500}, retries: 1, wantCalls: 2, wantCode: 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				n := int(calls.Add(1)) - 1
				status := tc.statuses[len(tc.statuses)-1]
				if n < len(tc.statuses) {
					status = tc.statuses[n]
				}
				w.WriteHeader(status)
				fmt.Fprintf(w, "body %d", status)
			}))
			defer server.Close()

			req, err := http.NewRequest(http.MethodGet, server.URL+"/x?api_key=hidden", nil)
			require.NoError(t, err)

			body, err := Fetch(context.Background(), server.Client(), req, tc.retries, nil)
			assert.Equal(t, tc.wantCalls, calls.Load())

			if tc.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "body 200", string(body))
				return
			}

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.wantCode, statusErr.Code)
			assert.NotContains(t, statusErr.Error(), "hidden")
		})
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, strings.Repeat("a", MaxBodySize+10))
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	body, err := Fetch(context.Background(), server.Client(), req, 0, nil)
	require.NoError(t, err)
	assert.Len(t, body, MaxBodySize)
}

func TestStatusError_Temporary(t *testing.T) {
	assert.True(t, (&StatusError{Code: 429}).Temporary())
	assert.True(t, (&StatusError{Code: 502}).Temporary())
	assert.False(t, (&StatusError{Code: 403}).Temporary())
}
