package service

import (
	"encoding/json"
	"log"

	"blogapi/internal/util"
	"blogapi/internal/websocket"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationWorker consumes notification messages from RabbitMQ and
// pushes them to connected websocket clients.
type NotificationWorker struct {
	rabbit   *util.RabbitMQClient
	wsHub    *websocket.Hub
	stopChan chan bool
}

func NewNotificationWorker(rabbit *util.RabbitMQClient, wsHub *websocket.Hub) *NotificationWorker {
	return &NotificationWorker{
		rabbit:   rabbit,
		wsHub:    wsHub,
		stopChan: make(chan bool),
	}
}

// Start declares the exchange/queue pair and begins consuming. Without a
// broker the worker quietly stays off; clients fall back to polling.
func (w *NotificationWorker) Start() error {
	if w.rabbit == nil {
		return nil
	}
	channel := w.rabbit.GetChannel()
	if channel == nil {
		return nil
	}

	if err := channel.ExchangeDeclare(
		NotificationExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	queue, err := channel.QueueDeclare(
		NotificationQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	if err := channel.QueueBind(
		NotificationQueueName,
		NotificationRouteKey,
		NotificationExchange,
		false,
		nil,
	); err != nil {
		return err
	}

	msgs, err := channel.Consume(
		queue.Name,
		"notification_worker",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		log.Println("Notification worker started, consuming messages...")
		for {
			select {
			case <-w.stopChan:
				log.Println("Notification worker stopped")
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Println("Notification queue closed")
					return
				}
				if err := w.process(msg); err != nil {
					log.Printf("Error processing notification message: %v", err)
					msg.Nack(false, true)
				} else {
					msg.Ack(false)
				}
			}
		}
	}()

	return nil
}

func (w *NotificationWorker) process(msg amqp.Delivery) error {
	var m NotificationMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	if w.wsHub != nil {
		w.wsHub.BroadcastToUser(m.OwnerID, map[string]interface{}{
			"type":       m.Type,
			"content_id": m.ContentID,
			"content":    m.Content,
			"timestamp":  m.Timestamp,
		})
	}
	return nil
}

// Stop stops the notification worker.
func (w *NotificationWorker) Stop() {
	close(w.stopChan)
}
