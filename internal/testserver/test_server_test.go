package testserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/scopetrack/internal/testserver"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)

	var text string
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			text = tc.Text
		}
	}
	require.False(t, res.IsError, text)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

func TestHTTP_Health(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTP_DeliveryWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t)

	client := callTool(t, session, "create_client", map[string]any{"name": "Acme", "contact_email": "ops@acme.test"})
	clientID := client["id"].(string)

	contract := callTool(t, session, "add_contract", map[string]any{"client_id": clientID, "title": "Website", "type": "FixedPrice"})
	contractID := contract["id"].(string)

	deliverable := callTool(t, session, "add_deliverable", map[string]any{"contract_id": contractID, "title": "Launch"})
	deliverableID := deliverable["id"].(string)

	callTool(t, session, "update_contract_status", map[string]any{"id": contractID, "status": "Active"})
	callTool(t, session, "update_deliverable_status", map[string]any{"id": deliverableID, "status": "InProgress"})
	done := callTool(t, session, "update_deliverable_status", map[string]any{"id": deliverableID, "status": "Completed", "note": "shipped"})
	require.Equal(t, "Completed", done["status"])

	completed := callTool(t, session, "update_contract_status", map[string]any{"id": contractID, "status": "Completed"})
	require.Equal(t, "Completed", completed["status"])

	history := callTool(t, session, "list_activity", map[string]any{"entity_kind": "Contract", "entity_id": contractID})
	entries := history["entries"].([]any)
	require.Len(t, entries, 4)

	var descriptions []string
	for _, e := range entries {
		descriptions = append(descriptions, e.(map[string]any)["description"].(string))
	}
	require.Equal(t, []string{
		"Contract 'Website' created",
		"Contract 'Website' status changed to Draft",
		"Contract 'Website' status changed to Active",
		"Contract 'Website' status changed to Completed",
	}, descriptions)

	var count int
	require.NoError(t, ts.DB.QueryRow(`SELECT COUNT(*) FROM activity_log`).Scan(&count))
	// client, contract, deliverable created; contract x3; deliverable x2
	require.Equal(t, 8, count)
}
