package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendAccountApproved(ctx context.Context, toEmail, firstName string) error
	SendWithdrawalProcessed(ctx context.Context, toEmail string, amount int64, approved bool) error
}

// NoopEmailService используется, когда отправка почты не настроена
type NoopEmailService struct{}

func (s *NoopEmailService) SendAccountApproved(ctx context.Context, toEmail, firstName string) error {
	log.Printf("[EmailService] noop send account approved to=%s", toEmail)
	return nil
}

func (s *NoopEmailService) SendWithdrawalProcessed(ctx context.Context, toEmail string, amount int64, approved bool) error {
	log.Printf("[EmailService] noop send withdrawal processed to=%s approved=%t", toEmail, approved)
	return nil
}

// ResendEmailService отправляет письма через REST API Resend
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendAccountApproved(ctx context.Context, toEmail, firstName string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Your account has been approved",
		Text:    fmt.Sprintf("Hello %s, your account has been approved. You can now sign in and start answering surveys.", firstName),
		Html:    fmt.Sprintf("<p>Hello %s,</p><p>Your account has been <strong>approved</strong>. You can now sign in and start answering surveys.</p>", firstName),
	}

	return s.sendWithRetry(ctx, params, fmt.Sprintf("approve-%s", toEmail))
}

func (s *ResendEmailService) SendWithdrawalProcessed(ctx context.Context, toEmail string, amount int64, approved bool) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	subject := "Your withdrawal has been processed"
	body := fmt.Sprintf("Your withdrawal request for %d has been processed and sent to your payment method.", amount)
	if !approved {
		subject = "Your withdrawal was declined"
		body = fmt.Sprintf("Your withdrawal request for %d was declined. The amount has been returned to your balance.", amount)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
		Html:    fmt.Sprintf("<p>%s</p>", body),
	}

	return s.sendWithRetry(ctx, params, "")
}

func (s *ResendEmailService) sendWithRetry(ctx context.Context, params *resend.SendEmailRequest, idempotencyKey string) error {
	options := &resend.SendEmailOptions{}
	if strings.TrimSpace(idempotencyKey) != "" {
		options.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
