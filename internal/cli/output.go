package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(MessageResult{Message: msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Pseudo string  `json:"pseudo"`
	Points int     `json:"points"`
	Rank   *string `json:"rank,omitempty"`
}

// MessageResult is the confirmation returned by writes
type MessageResult struct {
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func rankOrDash(rank *string) string {
	if rank == nil {
		return "-"
	}
	return *rank
}

func (o *Output) printPlayer(p Player) {
	_, _ = fmt.Fprintf(o.w, "Pseudo: %s\n", p.Pseudo)
	_, _ = fmt.Fprintf(o.w, "Points: %d\n", p.Points)
	_, _ = fmt.Fprintf(o.w, "Rank: %s\n", rankOrDash(p.Rank))
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PSEUDO\tPOINTS\tRANK")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Pseudo, p.Points, rankOrDash(p.Rank))
	}
	_ = tw.Flush()
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
