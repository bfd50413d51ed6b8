package models

// ErrorResponse defines API error response format
type ErrorResponse struct {
	Code  string `json:"code" yaml:"code"`
	Error string `json:"error" yaml:"error"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Version   string  `json:"version" yaml:"version"`
	StartTime string  `json:"startTime" yaml:"startTime"`
	Status    string  `json:"status" yaml:"status"`
	Uptime    string  `json:"uptime" yaml:"uptime"`
	Metrics   Metrics `json:"metrics" yaml:"metrics"`
}

// Metrics 关键指标统计
type Metrics struct {
	TotalRequests int64 `json:"totalRequests" yaml:"totalRequests"`
	ErrorRequests int64 `json:"errorRequests" yaml:"errorRequests"`
	PhaseRuns     int64 `json:"phaseRuns" yaml:"phaseRuns"`
	PhaseFailures int64 `json:"phaseFailures" yaml:"phaseFailures"`
}
