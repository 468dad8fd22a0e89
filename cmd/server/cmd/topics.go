package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Togather-Foundation/topicdir/internal/domain/topics"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// The views mirror the HTTP response bodies so CLI and API output agree.
type topicView struct {
	Topic       string `json:"topic" yaml:"topic"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type missView struct {
	Error       string   `json:"error" yaml:"error"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

type topicListView struct {
	Topics []string `json:"topics" yaml:"topics"`
}

func newTopicsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Query the embedded topic directory offline",
		Long: `Query the embedded topic directory without starting the server.

Lookups use the same exact-match and suggestion rules as the HTTP API.

Examples:
  server topics list
  server topics search "Quantum Computing Applications"
  server topics summarize renewable --output json`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputText, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output %q (use text, json or yaml)", output)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every topic name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newTopicService()
			if err != nil {
				return err
			}
			view := topicListView{Topics: svc.ListAll(cmd.Context())}
			if output == outputText {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(view.Topics, "\n"))
				return err
			}
			return encode(cmd.OutOrStdout(), output, view)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <name>",
		Short: "Show the description of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newTopicService()
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), output, topics.OpSearch, svc.Search(cmd.Context(), args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "summarize <name>",
		Short: "Show the summary of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newTopicService()
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), output, topics.OpSummarize, svc.Summarize(cmd.Context(), args[0]))
		},
	})

	return cmd
}

func newTopicService() (*topics.Service, error) {
	dir, err := topics.Default()
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	return topics.NewService(dir), nil
}

func missOf(op string, res topics.Result) missView {
	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return missView{Error: res.NotFoundMessage(op), Suggestions: suggestions}
}

func foundOf(op string, res topics.Result) topicView {
	if op == topics.OpSummarize {
		return topicView{Topic: res.Entry.Name, Summary: res.Entry.Description}
	}
	return topicView{Topic: res.Entry.Name, Description: res.Entry.Description}
}

func printResult(w io.Writer, output, op string, res topics.Result) error {
	if output != outputText {
		if res.Found {
			return encode(w, output, foundOf(op, res))
		}
		return encode(w, output, missOf(op, res))
	}

	if res.Found {
		_, err := fmt.Fprintf(w, "%s\n  %s\n", res.Entry.Name, res.Entry.Description)
		return err
	}

	miss := missOf(op, res)
	if _, err := fmt.Fprintln(w, miss.Error); err != nil {
		return err
	}
	if len(miss.Suggestions) > 0 {
		fmt.Fprintln(w, "Did you mean:")
		for _, s := range miss.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	return nil
}

func encode(w io.Writer, output string, v any) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output %q", output)
	}
}
