package coverage

import (
	"testing"

	"github.com/mdolmen/autour-go/internal/fetch"
	"github.com/mdolmen/autour-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls     int
	responses []struct {
		places    []fetch.RawPlace
		saturated bool
	}
}

func (f *fakeFetcher) FetchCircle(centerLat, centerLon, radiusM float64, includedTypes []string) ([]fetch.RawPlace, bool, error) {
	r := f.responses[f.calls]
	f.calls++
	return r.places, r.saturated, nil
}

func TestFetchWithSplitReturnsDirectlyWhenNotSaturated(t *testing.T) {
	f := &fakeFetcher{responses: []struct {
		places    []fetch.RawPlace
		saturated bool
	}{
		{places: []fetch.RawPlace{{FormattedAddress: "a"}}, saturated: false},
	}}

	e := &Engine{Fetcher: f, logger: utils.NewLogger("test")}
	places, err := e.fetchWithSplit(48.86, 2.33, 500, 1.0/64, 1.0/128, []string{"museum"}, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)
	assert.Len(t, places, 1)
}

func TestFetchWithSplitRecursesOnSaturation(t *testing.T) {
	f := &fakeFetcher{responses: []struct {
		places    []fetch.RawPlace
		saturated bool
	}{
		{places: make([]fetch.RawPlace, 20), saturated: true},
		{places: []fetch.RawPlace{{FormattedAddress: "q1"}}, saturated: false},
		{places: []fetch.RawPlace{{FormattedAddress: "q2"}}, saturated: false},
		{places: []fetch.RawPlace{{FormattedAddress: "q3"}}, saturated: false},
		{places: []fetch.RawPlace{{FormattedAddress: "q4"}}, saturated: false},
	}}

	e := &Engine{Fetcher: f, logger: utils.NewLogger("test")}
	places, err := e.fetchWithSplit(48.86, 2.33, 500, 1.0/64, 1.0/128, []string{"museum"}, 0)

	require.NoError(t, err)
	assert.Equal(t, 5, f.calls)
	assert.Len(t, places, 4)
}

func TestFetchWithSplitStopsAtMaxDepth(t *testing.T) {
	responses := make([]struct {
		places    []fetch.RawPlace
		saturated bool
	}, 0)
	// enough saturated responses to reach maxSplitDepth, then leaves stop recursing
	for i := 0; i < 500000; i++ {
		responses = append(responses, struct {
			places    []fetch.RawPlace
			saturated bool
		}{places: make([]fetch.RawPlace, 20), saturated: true})
	}

	f := &fakeFetcher{responses: responses}
	e := &Engine{Fetcher: f, logger: utils.NewLogger("test")}

	_, err := e.fetchWithSplit(48.86, 2.33, 500, 1.0/64, 1.0/128, []string{"museum"}, maxSplitDepth-1)
	require.NoError(t, err)
	// one call at depth maxSplitDepth-1 (saturated) triggers exactly 4 more
	// at maxSplitDepth, which then stop recursing regardless of saturation.
	assert.Equal(t, 5, f.calls)
}

func TestLastTokenExtractsCountryToken(t *testing.T) {
	assert.Equal(t, "France", lastToken("1 Rue de Rivoli, Paris, France"))
	assert.Equal(t, "USA", lastToken("500 Main St, Springfield, USA"))
	assert.Equal(t, "", lastToken(""))
}
