package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewstats/internal/models"
	"reviewstats/internal/reports"
	"reviewstats/internal/testutil"
)

func newTestMenu(input string) (*Menu, *testutil.MockReviewRepository, *bytes.Buffer) {
	mockRepo := &testutil.MockReviewRepository{}
	out := &bytes.Buffer{}
	service := reports.NewService(mockRepo, reports.DefaultOptions())
	return NewMenu(service, strings.NewReader(input), out), mockRepo, out
}

func TestMenu_ExitImmediately(t *testing.T) {
	menu, mockRepo, out := newTestMenu("0\n")

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, Terminated, menu.State())
	assert.True(t, strings.HasSuffix(out.String(), "\n>> Now exiting...\n"))
	mockRepo.AssertExpectations(t)
}

func TestMenu_EndOfInputTerminates(t *testing.T) {
	menu, _, out := newTestMenu("")

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, Terminated, menu.State())
	assert.Contains(t, out.String(), "Now exiting...")
}

func TestMenu_InvalidChoiceKeepsRunning(t *testing.T) {
	menu, _, out := newTestMenu("9\n0\n")

	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "\nThat is not a valid choice.\n")
	assert.Equal(t, 2, strings.Count(out.String(), "Please choose from the queries below:"))
}

func TestMenu_NonNumericChoiceIsFatal(t *testing.T) {
	menu, _, out := newTestMenu("quit\n")

	err := menu.Run(context.Background())
	assert.ErrorIs(t, err, ErrNotANumber)
	assert.Equal(t, Running, menu.State())
	assert.NotContains(t, out.String(), "Now exiting...")
}

func TestMenu_TopArtists(t *testing.T) {
	menu, mockRepo, out := newTestMenu("1\n0\n")
	testutil.ExpectArtistAverages(mockRepo, []models.ArtistScore{
		testutil.Artist("A", 7.0, 2),
		testutil.Artist("B", 9.0, 1),
	}, nil)

	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "1) B :: Average Score: 9.0, Number of Reviews: 1\n"+
		"2) A :: Average Score: 7.0, Number of Reviews: 2\n")
	mockRepo.AssertExpectations(t)
}

func TestMenu_RepositoryErrorIsFatal(t *testing.T) {
	menu, mockRepo, _ := newTestMenu("3\n0\n")
	mockRepo.On("GenreAverages", mock.Anything).Return(nil, assert.AnError)

	err := menu.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMenu_GenreTrend(t *testing.T) {
	// 5 is out of range and re-prompts
	menu, mockRepo, out := newTestMenu("2\n5\n2\n0\n")
	testutil.ExpectGenres(mockRepo, []string{"", "rock"}, nil)
	mockRepo.On("GenreYearAverages", mock.Anything).Return([]models.GenreYearScore{
		testutil.GenreYear("rock", "2003", 6.0, 1),
		testutil.GenreYear("", "2001", 9.0, 1),
		testutil.GenreYear("rock", "2001", 8.0, 1),
	}, nil)

	require.NoError(t, menu.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "1) undefined\n2) rock\n")
	assert.Contains(t, output, "Please enter a number in the range 1 to 2\n")
	assert.Contains(t, output, "Year: 2001, Average Score: 8.0, Number of Reviews: 1\n"+
		"Year: 2003, Average Score: 6.0, Number of Reviews: 1\n")
	assert.NotContains(t, output, "Average Score: 9.0")
}

func TestMenu_GenreTrend_NoGenres(t *testing.T) {
	menu, mockRepo, out := newTestMenu("2\n0\n")
	testutil.ExpectGenres(mockRepo, []string{}, nil)

	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "No genres were found.")
	mockRepo.AssertNotCalled(t, "GenreYearAverages", mock.Anything)
}

func TestMenu_GenreAveragesAndDistribution(t *testing.T) {
	menu, mockRepo, out := newTestMenu("3\n4\n0\n")
	mockRepo.On("GenreAverages", mock.Anything).Return([]models.GenreScore{
		testutil.Genre("rock", 7.0, 2),
		testutil.Genre("", 9.0, 2),
	}, nil)
	testutil.ExpectScoreCounts(mockRepo, 3, testutil.ScoreCounts(9.5, 9.5, 3.0), nil)

	require.NoError(t, menu.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Genre: undefined, Average Score: 9.0, Number of Reviews: 2\n"+
		"Genre: rock, Average Score: 7.0, Number of Reviews: 2\n")
	assert.Contains(t, output, "Score Range: 9.0 - 10.0, Number Given: 2, Percentage: 66.667%\n")
	assert.Contains(t, output, "Score Range: 3.0 - 3.9, Number Given: 1, Percentage: 33.333%\n")
}

func TestMenu_Search(t *testing.T) {
	// 3 is out of range for two hits
	menu, mockRepo, out := newTestMenu("5\nquoted\n3\n1\n\n0\n")
	review := testutil.SampleReview()
	mockRepo.On("SearchContent", mock.Anything, "quoted").Return([]models.Content{
		{ID: int32(1), Content: "Other review."},
		{ID: review.ID, Content: testutil.SampleContent},
	}, nil)
	mockRepo.On("FindReviewByID", mock.Anything, review.ID).Return(review, nil)

	require.NoError(t, menu.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "\nPlease enter a term to search for.\n>> ")
	assert.Contains(t, output, "\n2 reviews were found that use the term 'quoted'\n")
	assert.Contains(t, output, "Please enter a number between 0 and 2 to read that review\n")
	assert.Contains(t, output, "Please enter a number in the range 0 to 2\n")
	assert.Contains(t, output, "\nArtist: Massive Attack | Album: Mezzanine | Score: 9.3\n\n"+
		"First paragraph.\nSecond \"quoted\" paragraph.\n"+
		"\nPress Enter to Continue...")
	assert.Contains(t, output, "Now exiting...")
	mockRepo.AssertExpectations(t)
}

func TestMenu_SearchNoHits(t *testing.T) {
	menu, mockRepo, out := newTestMenu("5\nbagpipes\n0\n")
	mockRepo.On("SearchContent", mock.Anything, "bagpipes").Return([]models.Content{}, nil)

	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "\n0 reviews were found that use the term 'bagpipes'\n")
	assert.NotContains(t, out.String(), "Please enter a number between")
	mockRepo.AssertNotCalled(t, "FindReviewByID", mock.Anything, mock.Anything)
}

func TestMenu_SearchMissingReview(t *testing.T) {
	menu, mockRepo, _ := newTestMenu("5\nghost\n0\n")
	mockRepo.On("SearchContent", mock.Anything, "ghost").Return([]models.Content{{ID: int32(404)}}, nil)
	mockRepo.On("FindReviewByID", mock.Anything, int32(404)).Return(nil, nil)

	err := menu.Run(context.Background())
	assert.ErrorIs(t, err, reports.ErrReviewNotFound)
}

func TestMenu_DispatchExit(t *testing.T) {
	menu, _, _ := newTestMenu("")

	require.NoError(t, menu.Dispatch(context.Background(), ExitChoice))
	assert.Equal(t, Terminated, menu.State())
	assert.Equal(t, "terminated", menu.State().String())
}
