package events

// Topic constants for domain events emitted during a session.
const (
	TopicCheckoutCompleted = "checkout.completed"
	TopicStockPersisted    = "stock.persisted"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicCheckoutCompleted,
		TopicStockPersisted,
	}
}
