package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sebastiantruijens/movie-tui/search"
	"github.com/sebastiantruijens/movie-tui/tmdb"
)

type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
	formatYAML
)

var (
	searchPage int
	searchJSON bool
	searchYAML bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search movies and print one page of results",
	Long: `Run a single TMDB movie search without starting the interface and
print the requested page of results as text, JSON or YAML.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{consoleLogAnnotation: "true"},
	RunE:        runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page to print (1-based)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the raw result page as JSON")
	searchCmd.Flags().BoolVar(&searchYAML, "yaml", false, "print the raw result page as YAML")
	searchCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func runSearch(cmd *cobra.Command, args []string) error {
	format := formatText
	switch {
	case searchJSON:
		format = formatJSON
	case searchYAML:
		format = formatYAML
	}

	query := strings.Join(args, " ")
	return searchOnce(cmd.Context(), cmd.OutOrStdout(), tmdbClient, appLog.WithComponent("cli"), query, searchPage, format)
}

// searchOnce drives one search through the same state machine as the UI and
// writes the resulting page to w.
func searchOnce(ctx context.Context, w io.Writer, searcher tmdb.Searcher, log zerolog.Logger, query string, page int, format outputFormat) error {
	if page < 1 {
		return fmt.Errorf("invalid --page %d: %w", page, tmdb.ErrInvalidPage)
	}

	state := search.New()
	k, err := state.Submit(query)
	if err != nil {
		return err
	}

	outcome := resolve(ctx, &state, searcher, k)
	if state.Status() == search.StatusErrored {
		return fmt.Errorf("search failed: %w", state.Err())
	}

	if page > 1 {
		k, ok := state.ChangePage(page - 1)
		if !ok {
			return fmt.Errorf("page %d out of range: %q has %d page(s)", page, state.Query(), max(state.TotalPages(), 1))
		}
		outcome = resolve(ctx, &state, searcher, k)
		if state.Status() == search.StatusErrored {
			return fmt.Errorf("search failed: %w", state.Err())
		}
	}

	data := state.Data()
	log.Debug().
		Stringer("key", state.Key()).
		Int("results", len(data.Results)).
		Int("total_pages", data.TotalPages).
		Msg("search complete")

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	if outcome.NoResults {
		_, err := fmt.Fprintln(w, "No movies found for your request.")
		return err
	}

	return printResults(w, state.Query(), data)
}

func resolve(ctx context.Context, state *search.State, searcher tmdb.Searcher, k search.Key) search.Outcome {
	result, err := searcher.SearchMovies(ctx, k.Query, k.Page)
	return state.Resolve(k, result, err)
}

func printResults(w io.Writer, query string, data *tmdb.ResultPage) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Results for %q (page %d of %d, %d total):\n", query, data.Page, data.TotalPages, data.TotalResults)
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, movie := range data.Results {
		year := movie.Year()
		if year == "" {
			year = "----"
		}
		fmt.Fprintf(&sb, "• %s (%s)  ★ %.1f\n", movie.Title, year, movie.VoteAverage)
		fmt.Fprintf(&sb, "  %s\n", movie.PageURL())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
