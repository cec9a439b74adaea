// cmd/satyasetu/error.go
package main

import "fmt"

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeAnalysis ErrorType = "analysis"
	ErrorTypeScrape   ErrorType = "scrape"
	ErrorTypeOracle   ErrorType = "oracle"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeStore    ErrorType = "store"
	ErrorTypeMonitor  ErrorType = "monitor"
	ErrorTypeAPI      ErrorType = "api"
)

// Error codes
const (
	// Analysis error codes
	ErrAnalysisInput = "ANALYSIS_001"

	// Scrape error codes
	ErrScrapeSearch = "SCRAPE_001"
	ErrScrapeFetch  = "SCRAPE_002"

	// Oracle error codes
	ErrOracleCall  = "ORACLE_001"
	ErrOracleParse = "ORACLE_002"

	// Config error codes
	ErrConfigLoad       = "CONFIG_001"
	ErrConfigValidation = "CONFIG_002"

	// Store error codes
	ErrStoreLoad = "STORE_001"
	ErrStoreSave = "STORE_002"

	// Monitor error codes
	ErrMonitorFetch = "MONITOR_001"

	// External API error codes
	ErrAPIRequest = "API_001"
)

// ShieldError is the custom error type for the application
type ShieldError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Inner   error     `json:"-"`
}

func (e *ShieldError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("[%s-%s] %s: %v", e.Type, e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("[%s-%s] %s", e.Type, e.Code, e.Message)
}

func (e *ShieldError) Unwrap() error {
	return e.Inner
}

// NewError creates a new ShieldError
func NewError(errType ErrorType, code string, message string, inner error) *ShieldError {
	return &ShieldError{
		Type:    errType,
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// Common error constructors
func NewAnalysisError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeAnalysis, code, message, inner)
}

func NewScrapeError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeScrape, code, message, inner)
}

func NewOracleError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeOracle, code, message, inner)
}

func NewConfigError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeConfig, code, message, inner)
}

func NewStoreError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeStore, code, message, inner)
}

func NewMonitorError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeMonitor, code, message, inner)
}

func NewAPIError(code string, message string, inner error) *ShieldError {
	return NewError(ErrorTypeAPI, code, message, inner)
}
