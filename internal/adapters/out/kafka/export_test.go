package kafka

import "github.com/segmentio/kafka-go"

func NewOrderEventPublisherWithWriter(writer messageWriter) *OrderEventPublisher {
	return newOrderEventPublisher(writer)
}

func WriterOf(p *OrderEventPublisher) *kafka.Writer {
	w, _ := p.writer.(*kafka.Writer)
	return w
}
