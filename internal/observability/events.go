package observability

// EventEnvelope wraps a domain event for the topic exchange.
type EventEnvelope struct {
	EventType string      `json:"event_type"`
	EventName string      `json:"event_name"`
	Payload   interface{} `json:"payload"`
}

// Routing keys for the marketplace domain events.
const (
	RoutingKeyLikes    = "swap_events.likes"
	RoutingKeyMatches  = "swap_events.matches"
	RoutingKeyChats    = "swap_events.chats"
	RoutingKeyMessages = "swap_events.messages"
	RoutingKeyWSChats  = "ws_events.chats"
)

func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
