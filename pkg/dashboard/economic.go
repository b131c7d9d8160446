package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/raykavin/fluid/pkg/chart"
	"github.com/samber/lo"
)

// Group is a titled run of sections, e.g. "Interest Rates".
type Group struct {
	Title    string  `json:"title"`
	Sections []Panel `json:"sections"`
}

type EconomicView struct {
	Title  string  `json:"title"`
	Groups []Group `json:"groups"`
}

// Economic renders every catalog section, grouped in catalog order.
func (s *Service) Economic(ctx context.Context) EconomicView {
	titles := lo.Uniq(lo.Map(s.catalog, func(section Section, _ int) string {
		return section.Group
	}))

	view := EconomicView{Title: string(TabEconomic)}
	for _, title := range titles {
		sections := lo.Filter(s.catalog, func(section Section, _ int) bool {
			return section.Group == title
		})

		group := Group{Title: title}
		for _, section := range sections {
			group.Sections = append(group.Sections, s.RenderSection(ctx, section))
		}
		view.Groups = append(view.Groups, group)
	}
	return view
}

// RenderSection fetches the series of one section in order and overlays them.
// A failed fetch leaves the chart out and sets Panel.Error.
func (s *Service) RenderSection(ctx context.Context, section Section) Panel {
	panel := Panel{Title: section.Title, Note: section.Note}
	log := s.log.WithField("section", section.Title)

	labeled := make([]chart.Labeled, 0, len(section.Series))
	for _, ref := range section.Series {
		series, err := s.fetchSeries(ctx, ref.ID)
		if err != nil {
			log.WithError(err).Warn("economic series unavailable")
			panel.Error = fmt.Sprintf("%s (%s) is unavailable: %v", ref.Label, ref.ID, err)
			return panel
		}
		labeled = append(labeled, chart.Labeled{Series: series, Label: ref.Label})
	}

	spec, err := chart.RenderOverlay(chart.Overlay(section.AxisLabel, labeled...))
	if err != nil {
		panel.Error = err.Error()
		return panel
	}

	panel.Chart = &spec
	return panel
}

// FindSection looks a section up by case-insensitive title prefix or series id.
func (s *Service) FindSection(query string) (Section, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	return lo.Find(s.catalog, func(section Section) bool {
		if strings.HasPrefix(strings.ToLower(section.Title), query) {
			return true
		}
		return lo.ContainsBy(section.Series, func(ref SeriesRef) bool {
			return strings.ToLower(ref.ID) == query
		})
	})
}
