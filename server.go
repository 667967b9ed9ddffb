package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gamma-omg/resume-ranker/ranker"
	"github.com/gamma-omg/resume-ranker/readers"
	"github.com/gamma-omg/resume-ranker/scoring"
)

type resumeRanker interface {
	Rank(ctx context.Context, jobDescription string, docs []readers.Document) (*ranker.Result, error)
}

type rankServer struct {
	log    *slog.Logger
	root   string
	filter nameFilter
	ranker resumeRanker
}

type matchResponse struct {
	Columns []string         `json:"columns"`
	Rows    []scoring.Record `json:"rows"`
	Errors  []string         `json:"errors,omitempty"`
}

func NewRankServer(rs *rankServer) *server.MCPServer {
	tool := mcp.NewTool("match_resumes",
		mcp.WithDescription("Ranks the resumes stored under the document root against a job description "+
			"and reports matched and missing keywords for each resume"),
		mcp.WithString("job_description",
			mcp.Required(),
			mcp.Description("Full text of the job description"),
		),
		mcp.WithString("folder",
			mcp.Description("Subfolder of the document root holding the resumes, the whole root if empty"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: json (default), csv or table"),
			mcp.Enum("json", "csv", "table"),
		),
	)

	srv := server.NewMCPServer("Resume Ranker", version, server.WithToolCapabilities(false))
	srv.AddTool(tool, rs.handleMatch)

	return srv
}

func (rs *rankServer) handleMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	job, err := request.RequireString("job_description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	folder, _ := args["folder"].(string)
	format, _ := args["format"].(string)
	if format == "" {
		format = "json"
	}

	docs, err := collectDocuments(rs.log, rs.filter, rs.resolve(folder))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := rs.ranker.Rank(ctx, job, docs)
	if errors.Is(err, ranker.ErrEmptyInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		rs.log.Error("matching failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := formatResult(res, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(out), nil
}

// resolve keeps folder inside the document root.
func (rs *rankServer) resolve(folder string) string {
	return filepath.Join(rs.root, filepath.Clean("/"+folder))
}

func formatResult(res *ranker.Result, format string) (string, error) {
	var buf bytes.Buffer

	switch format {
	case "csv":
		if err := scoring.WriteCSV(&buf, res.Table); err != nil {
			return "", err
		}
		return buf.String(), nil
	case "table":
		scoring.Render(&buf, res.Table)
	case "json":
		resp := matchResponse{
			Columns: res.Table.Layout.Header(),
			Rows:    res.Table.Records(),
		}
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		for _, f := range res.Failures {
			resp.Errors = append(resp.Errors, f.Error())
		}
		if err := enc.Encode(resp); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}

	for _, f := range res.Failures {
		fmt.Fprintf(&buf, "%s\n", f.Error())
	}

	return buf.String(), nil
}
