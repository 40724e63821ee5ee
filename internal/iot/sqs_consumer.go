// Package iot feeds detector events from the device queue into the status board.
package iot

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"parking_booking/internal/service"
)

// SQSAPI is the part of *sqs.Client the consumer uses.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// DeviceEventHandler is implemented by *service.StatusBoard.
type DeviceEventHandler interface {
	HandleDeviceEvent(ctx context.Context, body string) error
}

type SQSConsumer struct {
	sqsClient  SQSAPI
	queueURL   string
	handler    DeviceEventHandler
	retryDelay time.Duration
}

func NewSQSConsumer(client SQSAPI, queueURL string, handler DeviceEventHandler) *SQSConsumer {
	return &SQSConsumer{
		sqsClient:  client,
		queueURL:   queueURL,
		handler:    handler,
		retryDelay: 5 * time.Second,
	}
}

// Start long-polls the queue until ctx is cancelled.
func (c *SQSConsumer) Start(ctx context.Context) {
	log.Printf("SQS Consumer: listening on queue %s", c.queueURL)
	for {
		select {
		case <-ctx.Done():
			log.Println("SQS Consumer: context cancelled, stopping.")
			return
		default:
		}

		if err := c.poll(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("SQS Consumer: context cancelled, stopping.")
				return
			}
			log.Printf("SQS Consumer: receive failed: %v", err)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				log.Println("SQS Consumer: context cancelled while waiting for retry.")
				return
			}
		}
	}
}

// poll receives one batch. A message that fails processing is left on the
// queue and comes back after the visibility timeout.
func (c *SQSConsumer) poll(ctx context.Context) error {
	result, err := c.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     20,
		VisibilityTimeout:   60,
	})
	if err != nil {
		return err
	}
	if len(result.Messages) == 0 {
		return nil
	}
	log.Printf("SQS Consumer: received %d message(s)", len(result.Messages))

	for _, message := range result.Messages {
		c.process(ctx, message)
	}
	return nil
}

func (c *SQSConsumer) process(ctx context.Context, message types.Message) {
	if message.Body == nil {
		log.Println("SQS Consumer: empty message body, deleting.")
		c.deleteMessage(ctx, message.ReceiptHandle)
		return
	}
	if err := c.handler.HandleDeviceEvent(ctx, *message.Body); err != nil {
		if errors.Is(err, service.ErrUnprocessableEvent) {
			log.Printf("SQS Consumer: dropping message %s: %v", aws.ToString(message.MessageId), err)
			c.deleteMessage(ctx, message.ReceiptHandle)
			return
		}
		log.Printf("SQS Consumer: message %s failed: %v. It will be retried after the visibility timeout.",
			aws.ToString(message.MessageId), err)
		return
	}
	c.deleteMessage(ctx, message.ReceiptHandle)
}

func (c *SQSConsumer) deleteMessage(ctx context.Context, receiptHandle *string) {
	if receiptHandle == nil {
		log.Println("SQS Consumer: missing receipt handle, cannot delete message.")
		return
	}
	_, err := c.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		log.Printf("SQS Consumer: delete failed: %v", err)
	}
}
