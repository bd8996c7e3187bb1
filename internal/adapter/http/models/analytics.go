package models

type DepositTypeAggregateResponse struct {
	DepositType  string `json:"depositType"`
	DepositCount int64  `json:"depositCount"`
	TotalAmount  string `json:"totalAmount"`
}

type TimelinePointResponse struct {
	OpenDate    string `json:"openDate"`
	TotalAmount string `json:"totalAmount"`
}

type DashboardResponse struct {
	ByType        []DepositTypeAggregateResponse `json:"byType"`
	Timeline      []TimelinePointResponse        `json:"timeline"`
	ActiveAmounts []string                       `json:"activeAmounts"`
}
