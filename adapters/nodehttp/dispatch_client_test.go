package nodehttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
	"testing"

	"myfleet/domain"
	"myfleet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchClient_Send(t *testing.T) {
	var gotPath string
	var gotBody sendRequest
	port := startNode(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"dispatch_id":"d-1","outcomes":[{"worker":"10.0.0.3","result":0},{"worker":"10.0.0.4","result":null,"error":"timeout"}]}`)
	})

	res, err := NewDispatchClient(port, &http.Client{}).Send(context.Background(), loopback,
		domain.TaskDescriptor{Instructions: "my tool", Args: []string{"-v"}}, 250)
	require.NoError(t, err)

	assert.Equal(t, "/send/my%20tool", gotPath)
	assert.Equal(t, sendRequest{Args: []string{"-v"}, TimeoutMs: 250}, gotBody)
	assert.Equal(t, "d-1", res.DispatchID)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, netip.MustParseAddr("10.0.0.3"), res.Outcomes[0].Worker)
	assert.Equal(t, 0, *res.Outcomes[0].Result)
	assert.Nil(t, res.Outcomes[1].Result)
	assert.Equal(t, "timeout", res.Outcomes[1].Err)
}

func TestDispatchClient_Send_Errors(t *testing.T) {
	t.Run("manager error body keeps its code", func(t *testing.T) {
		port := startNode(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"code":"bad_parameter","message":"timeout_ms must be positive"}}`)
		})
		_, err := NewDispatchClient(port, &http.Client{}).Send(context.Background(), loopback, domain.TaskDescriptor{Instructions: "x"}, 0)
		assert.True(t, service.IsBadParameterError(err))
	})

	t.Run("invalid worker address", func(t *testing.T) {
		port := startNode(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"dispatch_id":"d","outcomes":[{"worker":"nope","result":1}]}`)
		})
		_, err := NewDispatchClient(port, &http.Client{}).Send(context.Background(), loopback, domain.TaskDescriptor{Instructions: "x"}, 0)
		assert.Error(t, err)
	})

	t.Run("empty instructions", func(t *testing.T) {
		_, err := NewDispatchClient(9255, &http.Client{}).Send(context.Background(), loopback, domain.TaskDescriptor{}, 0)
		assert.True(t, service.IsBadParameterError(err))
	})
}
