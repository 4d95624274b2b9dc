package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"council-motions-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that push motion decisions to
// subscribers.
type WorkerPool struct {
	size    int
	jobs    chan uuid.UUID
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan uuid.UUID, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case motionID := <-wp.jobs:
			log.Printf("Worker %d processing motion %s", id, motionID)
			wp.sendNotificationsForMotion(ctx, motionID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Notify queues a decided motion for its subscribers.
func (wp *WorkerPool) Notify(motionID uuid.UUID) {
	wp.jobs <- motionID
}

// statusText is what subscribers read; it leans on the formal wording
// of the council minutes.
var statusText = map[model.MotionStatus]string{
	model.MotionAccepted:            "was accepted",
	model.MotionRejected:            "was rejected",
	model.MotionWithdrawn:           "was withdrawn",
	model.MotionNotHandled:          "was not handled",
	model.MotionRejectedByPresidium: "was rejected by the presidium",
}

// sendNotificationsForMotion fetches the motion and its watchers and
// pushes the decision out.
func (wp *WorkerPool) sendNotificationsForMotion(ctx context.Context, motionID uuid.UUID) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_motion_mapping smm ON smm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("smm.motion_id = ?", motionID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for motion %s: %v", motionID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	var motion model.Motion
	if err := wp.db.WithContext(ctx).
		Select("period_number", "seq", "title", "status").
		First(&motion, "id = ?", motionID).Error; err != nil {
		log.Printf("Error fetching motion %s: %v", motionID, err)
		return
	}

	outcome, decided := statusText[motion.Status]
	if !decided {
		// Still in deliberation; nothing worth pushing.
		return
	}

	log.Printf("Sending %d notifications for motion %s", len(subscriptions), motionID)
	message := fmt.Sprintf("Motion %d/%d %q %s.", motion.PeriodNumber, motion.Seq, motion.Title, outcome)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == 410 {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
