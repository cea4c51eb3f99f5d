package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/llm"
	"github.com/abhisek/literacyhub/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the quiz generation requests sent to language models",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quiz generation requests",
	RunE:  runLLMList,
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and raw response of one request",
	Args:  cobra.ExactArgs(1),
	RunE:  runLLMView,
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise token usage by purpose and estimated cost by model",
	RunE:  runLLMStats,
}

func runLLMList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	since, _ := cmd.Flags().GetDuration("since")

	opts := store.QueryOpts{Limit: limit, Purpose: purpose}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}

	s, done, err := openEventStore(cmd)
	if err != nil {
		return err
	}
	defer done()

	events, err := s.QueryLLMEvents(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No requests recorded.")
		return nil
	}

	t := newTable("ID", "When", "Purpose", "Model", "Tokens in/out", "Latency", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.Row(
			strconv.Itoa(e.ID),
			humanize.Time(e.Timestamp),
			e.Purpose,
			truncate(e.Model, 28),
			fmt.Sprintf("%s / %s", humanize.Comma(int64(e.InputTokens)), humanize.Comma(int64(e.OutputTokens))),
			fmt.Sprintf("%dms", e.LatencyMs),
			ok,
		)
	}
	printTable(out, t)
	return nil
}

func runLLMView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid request id %q", args[0])
	}

	s, done, err := openEventStore(cmd)
	if err != nil {
		return err
	}
	defer done()

	e, err := s.GetLLMEvent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return fmt.Errorf("no request with id %d", id)
	}

	out := cmd.OutOrStdout()
	status := "ok"
	if !e.Success {
		status = "failed: " + e.ErrorMessage
	}
	fmt.Fprintf(out, "Request #%d  %s (%s)\n", e.ID,
		e.Timestamp.Local().Format("2006-01-02 15:04:05"), humanize.Time(e.Timestamp))
	fmt.Fprintf(out, "  %s / %s for %s\n", e.Provider, e.Model, e.Purpose)
	fmt.Fprintf(out, "  %d tokens in, %d out, %dms, %s\n",
		e.InputTokens, e.OutputTokens, e.LatencyMs, status)

	printBody(out, "Prompt", e.RequestBody)
	printBody(out, "Response", e.ResponseBody)
	return nil
}

func printBody(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n── %s %s\n", title, strings.Repeat("─", max(56-len(title), 4)))
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

func runLLMStats(cmd *cobra.Command, _ []string) error {
	s, done, err := openEventStore(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	byPurpose, err := s.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(byPurpose) == 0 {
		fmt.Fprintln(out, "No requests recorded.")
		return nil
	}

	var calls, in, outTok int
	usage := newTable("Purpose", "Calls", "Input", "Output", "Avg latency")
	for _, u := range byPurpose {
		usage.Row(u.Key, strconv.Itoa(u.Calls),
			humanize.Comma(int64(u.InputTokens)), humanize.Comma(int64(u.OutputTokens)),
			fmt.Sprintf("%dms", u.AvgLatencyMs))
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	usage.Row("total", strconv.Itoa(calls), humanize.Comma(int64(in)), humanize.Comma(int64(outTok)), "")
	printTable(out, usage)

	byModel, err := s.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(byModel) == 0 {
		return nil
	}

	var total float64
	var unpriced []string
	costs := newTable("Model", "Calls", "Estimated cost")
	for _, u := range byModel {
		price := llm.LookupCost(u.Key)
		if price == nil {
			unpriced = append(unpriced, u.Key)
			costs.Row(truncate(u.Key, 32), strconv.Itoa(u.Calls), "?")
			continue
		}
		c := price.Cost(u.InputTokens, u.OutputTokens)
		total += c
		costs.Row(truncate(u.Key, 32), strconv.Itoa(u.Calls), formatCost(c))
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	costs.Row(label, "", formatCost(total))

	fmt.Fprintln(out)
	printTable(out, costs)
	if len(unpriced) > 0 {
		fmt.Fprintf(out, "No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

// openEventStore opens the SQLite store, which is the only backend that
// records LLM requests.
func openEventStore(cmd *cobra.Command) (*store.Store, func(), error) {
	d, err := loadDeps(cmd, false)
	if err != nil {
		return nil, nil, err
	}
	s, err := d.openSQLite()
	if err != nil {
		d.close()
		return nil, nil, err
	}
	return s, d.close, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (e.g. "+llm.PurposeQuizGen+")")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
