package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `scopetrack tracks client work as Clients → Contracts → Deliverables, with an append-only activity log.

Core concepts:
- Client: Active or Inactive. Only active clients take new contracts. Contact emails are unique (case-insensitive).
- Contract: Draft → Active → Completed → Archived. Activation needs at least one deliverable.
- Deliverable: Pending → InProgress → Completed, or Cancelled. Status changes need an Active contract and never go back to Pending.
- Activity: every create and status change is logged automatically in the same transaction as the change.

Default workflow:
1) list_clients or get_client to orient.
2) create_client, add_contract, add_deliverable to capture scope.
3) update_contract_status / update_deliverable_status to move work along; pass a note to explain the change.
4) list_activity for one entity's history, get_recent_activity for everything.

Errors carry a code: NOT_FOUND, INVALID_ARGUMENT, INVALID_STATE, CONFLICT.

Docs:
- scopetrack://docs/lifecycles
- scopetrack://docs/activity
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "scopetrack://docs/lifecycles",
		Name:        "docs_lifecycles",
		Title:       "Lifecycles and rules",
		Description: "Status machines for clients, contracts and deliverables and the rules that gate each transition.",
		Content: `# Lifecycles and rules

## Client

` + "`Active <-> Inactive`" + ` via ` + "`toggle_client_status`" + `.

- Name and contact email are required.
- Contracts can only be added while the client is Active.

## Contract

` + "`Draft -> Active -> Completed -> Archived`" + `

| From | Active | Completed | Archived |
|---|---|---|---|
| Draft | needs a deliverable | allowed | allowed |
| Active | rejected | allowed | allowed |
| Completed | rejected | rejected | allowed |
| Archived | rejected | rejected | rejected |

- Deliverables can be added in any status except Archived.
- ` + "`update_contract_status`" + ` accepts Active, Completed or Archived.

## Deliverable

` + "`Pending -> InProgress -> Completed`" + `, with Cancelled reachable from Pending and InProgress.

- Any status change requires the parent contract to be Active.
- Completed and Cancelled are terminal.
- Setting the current status again is rejected.
`,
	},
	{
		URI:         "scopetrack://docs/activity",
		Name:        "docs_activity",
		Title:       "Activity log",
		Description: "What gets logged, when, and how notes are attached.",
		Content: `# Activity log

Entries are derived from the changes in each write, never edited and never deleted.

| Change | Entry |
|---|---|
| client, contract or deliverable created | Created: "Client 'Acme' created" |
| client name or email changed | Updated: "Client 'Acme' updated" |
| client status toggled | StatusChanged |
| contract or deliverable changed, including a deliverable added to a contract | StatusChanged: "Contract 'Build' status changed to Active" |

A note passed to ` + "`update_contract_status`" + ` or ` + "`update_deliverable_status`" + ` is appended to the
entry on a new line as ` + "`[<UTC timestamp>] <note>`" + `. A client write that leaves its details and status unchanged logs nothing.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
