// Package reminder sends SMS and push reminders ahead of confirmed
// reservations on a cron schedule.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const runTimeout = time.Minute

type Store interface {
	ListDueReminders(ctx context.Context, fromMs, toMs int64) ([]models.Reservation, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type Job struct {
	store    Store
	notifier notify.Notifier
	lead     time.Duration
	loc      *time.Location
	log      *zap.Logger
	bugs     bugreport.Reporter

	now func() time.Time
}

func NewJob(
	store Store,
	notifier notify.Notifier,
	lead time.Duration,
	loc *time.Location,
	log *zap.Logger,
	bugs bugreport.Reporter,
) *Job {
	return &Job{
		store:    store,
		notifier: notifier,
		lead:     lead,
		loc:      loc,
		log:      log.Named("reminder"),
		bugs:     bugs,
		now:      time.Now,
	}
}

// Run reminds every confirmed reservation starting within the lead window.
// A row is marked before its messages go out, so a reminder is sent at most
// once even when runs overlap.
func (j *Job) Run(ctx context.Context) (int, error) {
	now := j.now()

	due, err := j.store.ListDueReminders(ctx, now.UnixMilli(), now.Add(j.lead).UnixMilli())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range due {
		claimed, err := j.store.MarkReminderSent(ctx, r.ID, now)
		if err != nil {
			return sent, err
		}
		if !claimed {
			continue
		}

		for _, msg := range j.messages(r) {
			if err := j.notifier.Send(ctx, msg); err != nil {
				j.log.Warn("reminder not delivered",
					zap.String("reservation_id", r.ID.String()),
					zap.String("channel", string(msg.Channel)),
					zap.Error(err),
				)
			}
		}
		sent++
	}
	return sent, nil
}

func (j *Job) messages(r models.Reservation) []notify.Message {
	at := time.UnixMilli(r.TimeTimestamp).In(j.loc)
	body := fmt.Sprintf("תזכורת: יש לך תור ב-%s בשעה %s.", at.Format("02/01"), at.Format(timezone.TimeLayout))
	data := map[string]string{
		"reservationId": r.ID.String(),
		"time":          at.Format(time.RFC3339),
	}

	msgs := []notify.Message{{
		Kind:          notify.KindReminder,
		Channel:       notify.ChannelPush,
		RecipientType: "customer",
		RecipientID:   r.CustomerID,
		Title:         "תזכורת לתור",
		Body:          body,
		Data:          data,
	}}
	if r.CustomerPhone != "" {
		msgs = append(msgs, notify.Message{
			Kind:          notify.KindReminder,
			Channel:       notify.ChannelSMS,
			RecipientType: "customer",
			RecipientID:   r.CustomerID,
			Phone:         r.CustomerPhone,
			Body:          body,
			Data:          data,
		})
	}
	return msgs
}

// Schedule registers the job on a cron running in shop time. The caller
// starts and stops the returned cron.
func Schedule(job *Job, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(job.loc))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		n, err := job.Run(ctx)
		if err != nil {
			job.log.Error("reminder run failed", zap.Error(err))
			job.bugs.Report(ctx, bugreport.Report{
				Err:      err,
				Action:   "send reservation reminders",
				Severity: bugreport.SeverityMedium,
			})
			return
		}
		if n > 0 {
			job.log.Info("reminders sent", zap.Int("count", n))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add reminder job %q: %w", spec, err)
	}
	return c, nil
}
