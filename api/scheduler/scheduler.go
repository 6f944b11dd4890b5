package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/registry"
	templates "github.com/linesmerrill/lostfound-api/templates/html"
)

// DigestSchedule runs the moderation digest every day at 7 AM UTC
const DigestSchedule = "0 7 * * *"

// Sender delivers one email
type Sender func(toEmail, toName, subject, htmlContent, plainText string) error

// Scheduler handles periodic background jobs for the registry
type Scheduler struct {
	cron *cron.Cron
	reg  *registry.Registry
	conf config.Config
	send Sender
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithSender replaces SendGrid as the mail transport
func WithSender(send Sender) Option {
	return func(s *Scheduler) { s.send = send }
}

// NewScheduler creates a new scheduler instance
func NewScheduler(reg *registry.Registry, conf config.Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		reg:  reg,
		conf: conf,
	}
	if conf.SendGridAPIKey != "" {
		s.send = sendGridSender(conf)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(DigestSchedule, s.moderationDigest)
	if err != nil {
		zap.S().Errorw("failed to register moderation digest job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("registry scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("registry scheduler stopped")
}

func (s *Scheduler) moderationDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := s.SendDigest(ctx)
	if err != nil {
		zap.S().Errorw("moderation digest failed", "error", err)
		return
	}
	zap.S().Infow("moderation digest finished", "flaggedItems", sent)
}

// SendDigest mails the administrator a summary of every reported item and
// returns how many items it listed. Nothing is sent when no item is reported.
func (s *Scheduler) SendDigest(ctx context.Context) (int, error) {
	if s.conf.AdminEmail == "" {
		zap.S().Warn("no administrator configured, skipping moderation digest")
		return 0, nil
	}
	if s.send == nil {
		zap.S().Warn("no mail transport configured, skipping moderation digest")
		return 0, nil
	}

	items, err := s.reg.FlaggedItems(ctx, identity.UserID(s.conf.AdminEmail))
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		zap.S().Debug("no flagged items, moderation digest not sent")
		return 0, nil
	}

	entries := make([]templates.FlaggedEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, templates.FlaggedEntry{
			ItemID:   item.ID,
			Title:    item.Title,
			Type:     string(item.Type),
			Status:   string(item.Status),
			Reporter: item.ReporterName,
			Reports:  len(item.Reports),
		})
	}
	htmlContent, plainText := templates.RenderModerationDigest(entries)
	subject := templates.DigestSubject(len(entries))
	if err := s.send(s.conf.AdminEmail, "Registry Administrator", subject, htmlContent, plainText); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func sendGridSender(conf config.Config) Sender {
	fromEmail := conf.DigestFromEmail
	if fromEmail == "" {
		fromEmail = conf.AdminEmail
	}
	return func(toEmail, toName, subject, htmlContent, plainText string) error {
		from := mail.NewEmail(templates.Brand, fromEmail)
		to := mail.NewEmail(toName, toEmail)
		message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
		client := sendgrid.NewSendClient(conf.SendGridAPIKey)
		response, err := client.Send(message)
		if err != nil {
			return err
		}
		if response.StatusCode >= 400 {
			zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
			return errors.New("sendgrid rejected the message")
		}
		return nil
	}
}
