package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-ddd-registration/config"
	"github.com/oksasatya/go-ddd-registration/internal/infrastructure/messaging"
	"github.com/oksasatya/go-ddd-registration/pkg/helpers"
	"github.com/oksasatya/go-ddd-registration/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		helpers.NewLogger("email-worker", "production").Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	mg, err := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	if err != nil {
		logger.Fatalf("mailgun: %v", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := messaging.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("%v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retry := messaging.NewRetryPolicy(ch, cfg.RabbitMQEmailQueue, cfg.MailMaxAttempts)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancelSend := context.WithTimeout(ctx, 15*time.Second)
			err := mailer.Process(c, msg.Body, mg)
			cancelSend()

			out, serr := retry.Settle(ctx, msg, err)
			entry := logger.WithField("outcome", out).WithField("attempt", messaging.Attempts(msg.Headers)+1)
			if serr != nil {
				entry = entry.WithField("settle_error", serr.Error())
			}
			switch {
			case err == nil:
				entry.Debug("email sent")
			case out == messaging.OutcomeDeadLetter:
				entry.WithError(err).Warn("email job dead-lettered")
			default:
				entry.WithError(err).Error("send failed")
			}
		}
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
