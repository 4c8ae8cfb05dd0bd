package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/overlay"
	"github.com/ziadkadry99/dexview/internal/view"
)

// handleGetRecord describes one complete record.
func (s *Server) handleGetRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, errResult := s.lookupKey(request)
	if errResult != nil {
		return errResult, nil
	}

	rec, ok := s.cache.Get(key)
	if !ok || !rec.Complete() {
		return mcp.NewToolResultError(fmt.Sprintf("Record %d has not loaded yet.", key)), nil
	}

	d := view.NewDetail(rec, overlay.SubviewAbout, s.opts.NewsEntryIndex, nil)
	return mcp.NewToolResultText(formatDetail(d)), nil
}

// handleSearchRecords lists records whose names match a term.
func (s *Server) handleSearchRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: term"), nil
	}

	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	keys, filtered := s.cache.Search(term, s.opts.SearchMinChars)
	if !filtered {
		return mcp.NewToolResultError(fmt.Sprintf("Search terms need at least %d characters.", s.opts.SearchMinChars)), nil
	}
	if len(keys) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No records match %q.", term)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d record(s):\n", len(keys)))
	for i, k := range keys {
		if i == limit {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(keys)-limit))
			break
		}
		rec, _ := s.cache.Get(k)
		card := view.NewCard(k, rec, true)
		sb.WriteString(fmt.Sprintf("%s %s", card.Number, card.Name))
		if len(card.Types) > 0 {
			sb.WriteString(" (" + strings.Join(card.Types, ", ") + ")")
		}
		if !card.Loaded {
			sb.WriteString(" [loading]")
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetEvolution lists the evolution stages of a record.
func (s *Server) handleGetEvolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, errResult := s.lookupKey(request)
	if errResult != nil {
		return errResult, nil
	}
	rec, ok := s.cache.Get(key)
	if !ok || rec.Secondary == nil {
		return mcp.NewToolResultError(fmt.Sprintf("Species data for record %d has not loaded yet.", key)), nil
	}
	if s.resolver == nil {
		return mcp.NewToolResultError("Evolution lookup is not available."), nil
	}

	stages, err := s.resolver.Resolve(ctx, rec.Secondary.EvolutionChainURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve evolution chain: %v", err)), nil
	}

	names := make([]string, 0, len(stages))
	for _, st := range stages {
		names = append(names, fmt.Sprintf("%s %s", catalog.FormatNumber(st.Key), catalog.DisplayName(st.Name)))
	}
	return mcp.NewToolResultText(strings.Join(names, " -> ")), nil
}

// handleCatalogStatus reports loading progress.
func (s *Server) handleCatalogStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := catalog.Status{Complete: s.cache.CompleteCount(), Total: s.cache.Size()}
	if s.status != nil {
		st = s.status.Status()
	}
	text := fmt.Sprintf("%d of %d records loaded", st.Complete, st.Total)
	if st.Failed > 0 {
		text += fmt.Sprintf(", %d fetches failed", st.Failed)
	}
	if st.Loading {
		text += " (still loading)"
	}
	return mcp.NewToolResultText(text), nil
}

// lookupKey reads the key argument, falling back to a name lookup.
func (s *Server) lookupKey(request mcp.CallToolRequest) (catalog.Key, *mcp.CallToolResult) {
	if k := request.GetInt("key", 0); k > 0 {
		return catalog.Key(k), nil
	}
	if name := request.GetString("name", ""); name != "" {
		if k, ok := s.cache.FindByName(name); ok {
			return k, nil
		}
		return 0, mcp.NewToolResultError(fmt.Sprintf("No loaded record is named %q.", name))
	}
	return 0, mcp.NewToolResultError("missing required parameter: key")
}

// formatDetail renders a record as plain text for agent consumption.
func formatDetail(d view.Detail) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", d.About.Number, d.Name))
	sb.WriteString(fmt.Sprintf("Types: %s\n", strings.Join(d.About.Types, ", ")))
	sb.WriteString(fmt.Sprintf("Height: %s\n", d.About.Height))
	sb.WriteString(fmt.Sprintf("Weight: %s\n", d.About.Weight))
	sb.WriteString(fmt.Sprintf("Abilities: %s\n", strings.Join(d.About.Abilities, ", ")))
	if d.Color != "" {
		sb.WriteString(fmt.Sprintf("Color: %s\n", d.Color))
	}
	if d.News != "" {
		sb.WriteString("\n" + d.News + "\n")
	}
	if len(d.Stats) > 0 {
		sb.WriteString("\nBase stats:\n")
		for _, st := range d.Stats {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", st.Name, st.Base))
		}
	}
	return sb.String()
}
