package dashboard

type Tab string

const (
	TabDashboard   Tab = "Dashboard"
	TabEconomic    Tab = "Economic Indicators"
	TabForecasting Tab = "Forecasting"
)

// Tabs returns the sidebar tabs in display order.
func Tabs() []Tab {
	return []Tab{TabDashboard, TabEconomic, TabForecasting}
}

// ParseTab matches a tab by its exact display name.
func ParseTab(name string) (Tab, bool) {
	for _, tab := range Tabs() {
		if string(tab) == name {
			return tab, true
		}
	}
	return "", false
}

// ForecastingView is the placeholder shown by the Forecasting tab.
type ForecastingView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (s *Service) Forecasting() ForecastingView {
	return ForecastingView{Title: string(TabForecasting), Message: "Work in progress ..."}
}
