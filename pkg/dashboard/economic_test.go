package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthly(values ...float64) core.TimeSeries {
	points := make([]core.Point, len(values))
	for i, v := range values {
		points[i] = core.Point{Time: time.Date(2021, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), Value: v}
	}
	return core.MustTimeSeries(points...)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 13)
	for _, section := range catalog {
		assert.NoError(t, section.Validate(), section.Title)
	}

	rates := catalog[9]
	assert.Equal(t, GroupRates, rates.Group)
	assert.Equal(t, []SeriesRef{
		{ID: "DFF", Label: "U.S."},
		{ID: "IRSTCB01CAM156N", Label: "CAN"},
		{ID: "IRSTCI01MXM156N", Label: "MEX"},
	}, rates.Series)

	assert.Error(t, Section{Title: "empty"}.Validate())
	assert.Error(t, Section{}.Validate())
}

func TestEconomic(t *testing.T) {
	catalog := []Section{
		{Group: GroupEconomic, Title: "Inflation", AxisLabel: "Inflation (%)",
			Series: []SeriesRef{{ID: "US", Label: "U.S."}, {ID: "CA", Label: "CAN"}}},
		{Group: GroupRates, Title: "Rates", AxisLabel: "Rates (%)",
			Series: []SeriesRef{{ID: "US", Label: "U.S."}, {ID: "CA", Label: "CAN"}, {ID: "MX", Label: "MEX"}}},
		{Group: GroupEconomic, Title: "Broken", AxisLabel: "x",
			Series: []SeriesRef{{ID: "MISSING", Label: "U.S."}, {ID: "US", Label: "U.S."}}},
	}
	econ := &fakeEconomics{series: map[string]core.TimeSeries{
		"US": monthly(1, 2, 3),
		"CA": monthly(2, 3),
		"MX": monthly(7, 7, 7, 7),
	}}

	view := newService(&fakePrices{}, econ, WithCatalog(catalog)).Economic(context.Background())

	require.Len(t, view.Groups, 2)
	assert.Equal(t, GroupEconomic, view.Groups[0].Title)
	assert.Equal(t, GroupRates, view.Groups[1].Title)
	require.Len(t, view.Groups[0].Sections, 2)

	inflation := view.Groups[0].Sections[0]
	require.NotNil(t, inflation.Chart)
	assert.Equal(t, "Inflation (%)", inflation.Chart.Layout.YAxes[0].Title)

	rates := view.Groups[1].Sections[0]
	require.NotNil(t, rates.Chart)
	var names []string
	for _, trace := range rates.Chart.Data {
		names = append(names, trace.Name)
	}
	assert.Equal(t, []string{"U.S.", "CAN", "MEX"}, names)

	broken := view.Groups[0].Sections[1]
	assert.Nil(t, broken.Chart)
	assert.Contains(t, broken.Error, "MISSING")

	// groups render in catalog order and a section stops at its first failed fetch
	assert.Equal(t, []string{"US", "CA", "MISSING", "US", "CA", "MX"}, econ.calls)
}

func TestFindSection(t *testing.T) {
	s := newService(&fakePrices{}, &fakeEconomics{})

	section, ok := s.FindSection("unemployment")
	require.True(t, ok)
	assert.Equal(t, "Unemployment Rates", section.Title)

	section, ok = s.FindSection("dff")
	require.True(t, ok)
	assert.Equal(t, GroupRates, section.Group)

	_, ok = s.FindSection("weather")
	assert.False(t, ok)
}
