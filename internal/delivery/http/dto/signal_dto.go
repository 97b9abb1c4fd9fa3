package dto

import "signalgate/internal/domain"

// SubmitAck echoes a minimal subset of an accepted submission
type SubmitAck struct {
	Asset     string `json:"asset"`
	Direction string `json:"direction"`
	Timeframe string `json:"timeframe"`
}

// SignalListResponse carries a bounded suffix of the store plus the total
// record count ever stored
type SignalListResponse struct {
	Signals []*domain.SignalRecord `json:"signals"`
	Total   int                    `json:"total"`
}

// HealthResponse reports service status and configuration sanity
type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Timestamp        string `json:"timestamp"`
	SecretConfigured bool   `json:"secret_configured"`
}

// ServiceInfo describes the service and its endpoint map
type ServiceInfo struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
