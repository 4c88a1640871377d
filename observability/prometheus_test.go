package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartling/core"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		info core.ResponseInfo
		want string
	}{
		{name: "transport", info: core.ResponseInfo{Err: errors.New("dial tcp: refused")}, want: OutcomeTransportError},
		{name: "success envelope", info: core.ResponseInfo{StatusCode: 200, Code: core.CodeSuccess}, want: OutcomeSuccess},
		{name: "raw download", info: core.ResponseInfo{StatusCode: 200}, want: OutcomeSuccess},
		{name: "validation", info: core.ResponseInfo{StatusCode: 400, Code: core.CodeValidationError}, want: OutcomeValidationError},
		{name: "other code", info: core.ResponseInfo{StatusCode: 500, Code: core.CodeGeneralError}, want: OutcomeAPIError},
		{name: "non-envelope error", info: core.ResponseInfo{StatusCode: 502}, want: OutcomeAPIError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.info))
		})
	}
}

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks, err := NewPrometheusHooks(reg)
	require.NoError(t, err)

	info := core.RequestInfo{Operation: "list_files", Method: "GET", Endpoint: "/file/list", RequestID: "r1"}
	ctx := hooks.OnRequestStart(context.Background(), info)
	assert.Equal(t, 1.0, testutil.ToFloat64(hooks.inFlight.WithLabelValues("list_files")))

	hooks.OnRequestEnd(ctx, core.ResponseInfo{
		RequestInfo: info,
		StatusCode:  200,
		Code:        core.CodeSuccess,
		Duration:    25 * time.Millisecond,
	})

	assert.Equal(t, 0.0, testutil.ToFloat64(hooks.inFlight.WithLabelValues("list_files")))
	assert.Equal(t, 1.0, testutil.ToFloat64(hooks.requests.WithLabelValues("list_files", OutcomeSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(hooks.duration))
}

func TestNewPrometheusHooks_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusHooks(reg)
	require.NoError(t, err)

	_, err = NewPrometheusHooks(reg)
	assert.Error(t, err)
}
