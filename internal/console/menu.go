package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"reviewstats/internal/reports"
)

// State is the menu loop state
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ExitChoice ends the loop
const ExitChoice = 0

type menuItem struct {
	choice int
	label  string
}

// menuItems is the menu in print order
var menuItems = []menuItem{
	{1, "Get artists with highest average score"},
	{2, "Get preferred genres by year"},
	{3, "Get average score by genre"},
	{4, "Get distribution of scores"},
	{5, "Search for terms in reviews"},
	{ExitChoice, "Exit"},
}

type handlerFunc func(m *Menu, ctx context.Context) error

// handlers maps menu choices to reports. It is never modified.
var handlers = map[int]handlerFunc{
	1: (*Menu).topArtists,
	2: (*Menu).genreTrend,
	3: (*Menu).genreAverages,
	4: (*Menu).scoreDistribution,
	5: (*Menu).search,
}

// Menu runs the interactive report loop
type Menu struct {
	service  *reports.Service
	prompter *Prompter
	out      io.Writer
	state    State
}

// NewMenu creates a menu reading from in and printing to out
func NewMenu(service *reports.Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		service:  service,
		prompter: NewPrompter(in, out),
		out:      out,
		state:    Running,
	}
}

// State returns the current loop state
func (m *Menu) State() State {
	return m.state
}

// Run shows the menu and dispatches choices until the user exits or input
// ends. Unparseable input and database failures are returned.
func (m *Menu) Run(ctx context.Context) error {
	for m.state == Running {
		RenderMenu(m.out)

		choice, err := m.prompter.ReadInt()
		if err == nil {
			err = m.Dispatch(ctx, choice)
		}
		if errors.Is(err, io.EOF) {
			slog.Debug("Input closed, exiting")
			m.state = Terminated
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(m.out, "Now exiting...")
	return nil
}

// Dispatch runs the report for choice. Unknown choices print a notice and
// leave the loop running.
func (m *Menu) Dispatch(ctx context.Context, choice int) error {
	if choice == ExitChoice {
		m.state = Terminated
		return nil
	}

	handler, ok := handlers[choice]
	if !ok {
		fmt.Fprintln(m.out, "\nThat is not a valid choice.")
		return nil
	}

	slog.Debug("Running report", "choice", choice)
	return handler(m, ctx)
}

func (m *Menu) topArtists(ctx context.Context) error {
	report, err := m.service.TopArtists(ctx)
	if err != nil {
		return err
	}
	RenderTopArtists(m.out, report)
	return nil
}

func (m *Menu) genreTrend(ctx context.Context) error {
	genres, err := m.service.Genres(ctx)
	if err != nil {
		return err
	}

	RenderGenreMenu(m.out, genres)
	if len(genres) == 0 {
		fmt.Fprintln(m.out, "\nNo genres were found.")
		return nil
	}

	choice, err := m.prompter.ReadIntInRange(1, len(genres)+1, func() {
		fmt.Fprintf(m.out, "Please enter a number in the range 1 to %d\n", len(genres))
	})
	if err != nil {
		return err
	}

	groups, err := m.service.GenreTrend(ctx, genres[choice-1])
	if err != nil {
		return err
	}
	RenderGenreTrend(m.out, groups)
	return nil
}

func (m *Menu) genreAverages(ctx context.Context) error {
	groups, err := m.service.GenreAverages(ctx)
	if err != nil {
		return err
	}
	RenderGenreAverages(m.out, groups)
	return nil
}

func (m *Menu) scoreDistribution(ctx context.Context) error {
	report, err := m.service.ScoreDistribution(ctx)
	if err != nil {
		return err
	}
	RenderDistribution(m.out, report)
	return nil
}

func (m *Menu) search(ctx context.Context) error {
	term, err := m.prompter.ReadLine("\nPlease enter a term to search for.\n>> ")
	if err != nil {
		return err
	}

	hits, err := m.service.Search(ctx, term)
	if err != nil {
		return err
	}

	RenderSearchSummary(m.out, len(hits), term)
	if len(hits) == 0 {
		return nil
	}

	index, err := m.prompter.ReadIntInRange(0, len(hits), func() {
		fmt.Fprintf(m.out, "Please enter a number in the range 0 to %d\n", len(hits))
	})
	if err != nil {
		return err
	}

	hit, err := reports.SelectHit(hits, index)
	if err != nil {
		return err
	}
	detail, err := m.service.ReviewDetail(ctx, hit)
	if err != nil {
		return err
	}

	RenderReview(m.out, detail)
	return m.prompter.WaitForEnter("\nPress Enter to Continue...")
}
