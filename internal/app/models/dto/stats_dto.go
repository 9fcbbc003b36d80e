package dto

// ApplicationStatusCounts breaks applications down by review status.
type ApplicationStatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// ApplicationPhaseCounts breaks approved applications down by phase.
type ApplicationPhaseCounts struct {
	NotStarted int64 `json:"notStarted"`
	Active     int64 `json:"active"`
	Completed  int64 `json:"completed"`
	Terminated int64 `json:"terminated"`
}

// OverviewStatsResponse is the directorate-wide dashboard summary
type OverviewStatsResponse struct {
	Institutions int64                   `json:"institutions"`
	Students     int64                   `json:"students"`
	Applications ApplicationStatusCounts `json:"applications"`
	Phases       ApplicationPhaseCounts  `json:"phases"`
	OpenTickets  int64                   `json:"openTickets"`
}

// InstitutionStatsResponse is the per-institution dashboard summary
type InstitutionStatsResponse struct {
	InstitutionID   int64                   `json:"institutionId"`
	InstitutionName string                  `json:"institutionName"`
	Students        int64                   `json:"students"`
	Applications    ApplicationStatusCounts `json:"applications"`
	Phases          ApplicationPhaseCounts  `json:"phases"`
	ReportsPending  int64                   `json:"reportsPending"`
	OpenTickets     int64                   `json:"openTickets"`
}
