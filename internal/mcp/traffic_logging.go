package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLogger logs each MCP message at debug level. Tool calls carry the
// tool name so one operation can be followed through the log.
func trafficLogger(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			params := formatPayload(requestParams(req))
			attrs := []any{"direction", direction, "method", method, "session_id", requestSessionID(req)}
			if method == "tools/call" {
				attrs = append(attrs, "tool", toolName(params))
			}
			logger.Debug("mcp request", append(attrs, "params", params)...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			attrs = append(attrs, "elapsed", time.Since(start), "result", formatPayload(result))
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp response", attrs...)
			return result, err
		}
	}
}

// requestSessionID returns the SDK session id, which the streamable HTTP
// transport takes from the Mcp-Session-Id header, or the raw header when the
// session has none. Stdio sessions have no id.
func requestSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	// accessors panic on requests whose session or params are nil pointers
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if session := req.GetSession(); session != nil {
		id = session.ID()
	}
	if id == "" {
		if extra := req.GetExtra(); extra != nil && extra.Header != nil {
			id = extra.Header.Get("Mcp-Session-Id")
		}
	}
	return id
}

func requestParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func toolName(params string) string {
	var call struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(params), &call); err != nil {
		return ""
	}
	return call.Name
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
