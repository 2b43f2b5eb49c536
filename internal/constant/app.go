package constant

import "time"

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"

	JWT_TYPE_ACCESS  = "access"
	JWT_TYPE_REFRESH = "refresh"

	QUERY_TIMEOUT_DURATION = 15 * time.Second

	DefaultPageSize uint = 10
	MaxPageSize     uint = 100
)
