package kafka_client

import "time"

const (
	CLIENT_ID        = "sentiview-producer"
	PRODUCE_RETRIES  = 3
	RETRY_DELAY      = 500 * time.Millisecond
	FLUSH_TIMEOUT_MS = 5000
)
