package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/memoryboard/internal/auth"
	"github.com/mmynk/memoryboard/internal/metrics"
	"github.com/mmynk/memoryboard/pkg/api"
)

func TestBearer(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"bearer abc", "", false},
		{"Bearer a b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearer(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

type echo struct{}

type seen struct {
	Pass    string `json:"pass"`
	GroupID string `json:"groupId"`
}

// serve runs one unary call through the interceptors and reports what the
// handler saw in its context.
func serve(t *testing.T, header string, interceptors ...connect.Interceptor) (*seen, error) {
	t.Helper()

	mux := http.NewServeMux()
	mux.Handle("/test.Echo/Call", connect.NewUnaryHandler(
		"/test.Echo/Call",
		func(ctx context.Context, _ *connect.Request[echo]) (*connect.Response[seen], error) {
			return connect.NewResponse(&seen{Pass: GetPass(ctx), GroupID: GetPassGroupID(ctx)}), nil
		},
		connect.WithCodec(api.Codec{}),
		connect.WithInterceptors(interceptors...),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := connect.NewClient[echo, seen](http.DefaultClient, server.URL+"/test.Echo/Call", connect.WithCodec(api.Codec{}))
	req := connect.NewRequest(&echo{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}

	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestOptionalPass(t *testing.T) {
	passes := auth.NewPassManager("middleware-key", time.Hour)
	pass, err := passes.Issue("group-1")
	require.NoError(t, err)

	got, err := serve(t, "Bearer "+pass, OptionalPass(passes))
	require.NoError(t, err)
	assert.Equal(t, pass, got.Pass)
	assert.Equal(t, "group-1", got.GroupID)

	got, err = serve(t, "Bearer forged", OptionalPass(passes))
	require.NoError(t, err)
	assert.Empty(t, got.Pass)
	assert.Empty(t, got.GroupID)

	got, err = serve(t, "", OptionalPass(passes))
	require.NoError(t, err)
	assert.Empty(t, got.Pass)
}

func TestLoggingInterceptor_ObservesRPC(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	_, err := serve(t, "", LoggingInterceptor(m))
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "memoryboard_rpc_duration_seconds"))
}
