// Package kafka publishes order lifecycle events to a Kafka topic.
//
// Messages are keyed by order id so every event of one order lands on the
// same partition and keeps its relative order.
package kafka
