package instrumentation

import "strings"

// ExtractUserDomain collapses an email address to its domain so metric
// labels never carry individual user identities. Each distinct label value
// costs a time series in Prometheus; domains keep the set bounded while
// full addresses would grow with the user base. Anything that is not a
// well-formed address maps to "unknown".
//
//	ExtractUserDomain("pat@corp.example")  // "corp.example"
//	ExtractUserDomain("invalid")           // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Operation labels used by the Google API call metrics. Status and Service
// constants live in config.go next to the config that gates them.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationSend   = "send"
	OperationSearch = "search"
)
