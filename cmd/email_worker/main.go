package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/config"
	"github.com/oksasatya/timbr/pkg/helpers"
	"github.com/oksasatya/timbr/pkg/mailer"
	mailtpl "github.com/oksasatya/timbr/pkg/mailer/templates"
)

// sender is the Mailgun surface the worker needs.
type sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type outcome int

const (
	ack outcome = iota
	drop
	retry
)

// handle renders and sends one queued job. A send that already failed once
// is dropped rather than requeued again.
func handle(ctx context.Context, mg sender, body []byte, redelivered bool, logger *logrus.Logger) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil || job.To == "" {
		logger.WithError(err).Warn("bad message")
		return drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if !job.Resolved() {
		if job.Template == "" {
			logger.WithField("to", job.To).Warn("job has neither body nor template")
			return drop
		}
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			logger.WithError(err).WithField("template", job.Template).Error("render failed")
			return drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mg.Send(c, job.Message(subject, text, html)); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "redelivered": redelivered}).Error("send failed")
		if redelivered {
			return drop
		}
		return retry
	}
	return ack
}

const consumerTag = "timbr-email-worker"

func main() {
	_ = godotenv.Load()
	cfg, cfgErr := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)
	if cfgErr != nil {
		logger.WithError(cfgErr).Warn("configuration problems")
	}

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("email worker stopped")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		return errors.New("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		return errors.New("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		return err
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			switch handle(ctx, mg, msg.Body, msg.Redelivered, logger) {
			case ack:
				_ = msg.Ack(false)
			case drop:
				_ = msg.Nack(false, false)
			case retry:
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.WithFields(logrus.Fields{
		"queue":       cfg.RabbitMQEmailQueue,
		"dead_letter": helpers.DeadLetterQueue(cfg.RabbitMQEmailQueue),
	}).Info("email worker listening")

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
		_ = ch.Cancel(consumerTag, false)
	case err := <-closed:
		return fmt.Errorf("broker connection lost: %v", err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		logger.Warn("in-flight email did not finish before shutdown")
	}
	return nil
}
