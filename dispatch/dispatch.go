package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	"github.com/SchnorcherSepp/fileinput/input"
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

// packageName is the prefix for log messages
const packageName = "dispatch"

// Task is the message of one partial file.
type Task struct {
	Index int    `json:"index"` // task index in the plan
	Count int    `json:"count"` // task count of the plan
	Path  string `json:"path"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
}

// Channel is the part of *amqp.Channel used by the publisher and the worker.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// interface check: Channel
var _ Channel = (*amqp.Channel)(nil)

// Dial opens a connection and a channel that prefetches only one task at a time.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dispatch/Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("dispatch/Dial: %w", err)
	}

	// one task per worker
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("dispatch/Dial: qos: %w", err)
	}
	return conn, ch, nil
}

//--------------------------------------------------------------------------------------------------------------------//

// Publisher sends the tasks of a plan to a durable work queue.
type Publisher struct {
	ch    Channel
	queue string
}

// NewPublisher returns a publisher for the queue.
func NewPublisher(ch Channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue}
}

// Declare creates the durable queue if it does not exist.
func (p *Publisher) Declare() error {
	_, err := p.ch.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("dispatch/Declare: %s: %w", p.queue, err)
	}
	return nil
}

// Publish sends one persistent message per partial file in plan order.
// The first error stops the publishing; the tasks before are already sent.
func (p *Publisher) Publish(plan *input.Plan) error {
	if plan == nil {
		return errors.New("dispatch/Publish: plan is nil")
	}

	count := plan.TaskCount()
	for i, part := range plan.Partials {
		body, err := json.Marshal(Task{
			Index: i,
			Count: count,
			Path:  part.Path(),
			Start: part.Start(),
			End:   part.End(),
		})
		if err != nil {
			return fmt.Errorf("dispatch/Publish: %w", err)
		}

		err = p.ch.Publish("", p.queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
		if err != nil {
			log.Printf("ERROR: %s/Publish: task %d/%d: %v", packageName, i, count, err)
			return fmt.Errorf("dispatch/Publish: task %d: %w", i, err)
		}
	}

	log.Printf("INFO: %s/Publish: %d tasks sent to queue '%s'", packageName, count, p.queue)
	return nil
}

// Consume starts the manual-ack delivery of the tasks.
func Consume(ch Channel, queue string) (<-chan amqp.Delivery, error) {
	d, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("dispatch/Consume: %s: %w", queue, err)
	}
	return d, nil
}

//--------------------------------------------------------------------------------------------------------------------//

// Decode reads a task message and returns the task and its partial file.
func Decode(body []byte) (Task, interf.Partial, error) {
	var t Task
	if err := json.Unmarshal(body, &t); err != nil {
		return t, nil, fmt.Errorf("dispatch/Decode: %w", err)
	}
	if t.Path == "" {
		return t, nil, errors.New("dispatch/Decode: task without path")
	}
	p, err := impl.NewPartial(t.Path, t.Start, t.End)
	if err != nil {
		return t, nil, fmt.Errorf("dispatch/Decode: %w", err)
	}
	return t, p, nil
}

// Serve handles the deliveries until the channel is closed.
// A task is acked if handle returns nil. Invalid messages and failed tasks are
// nacked without requeue. Retries belong to the orchestrator.
func Serve(deliveries <-chan amqp.Delivery, handle func(Task, interf.Partial) error) (done, failed int) {
	for d := range deliveries {
		t, p, err := Decode(d.Body)
		if err == nil {
			err = handle(t, p)
		}

		if err != nil {
			failed++
			log.Printf("ERROR: %s/Serve: task %d/%d: %v", packageName, t.Index, t.Count, err)
			if errN := d.Nack(false, false); errN != nil {
				log.Printf("ERROR: %s/Serve: nack: %v", packageName, errN)
			}
			continue
		}

		done++
		if errA := d.Ack(false); errA != nil {
			log.Printf("ERROR: %s/Serve: ack: %v", packageName, errA)
		}
	}
	return done, failed
}
