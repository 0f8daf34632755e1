// Package ingest watches a drop directory for scanned check images and
// publishes a payment request for each stable new file. It exists for batch
// scanning setups where checks arrive as files rather than API uploads.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"checkflow/pkg/queue"
)

// RequestPublisher sends check payment requests to the check topic.
type RequestPublisher interface {
	PublishCheckPayment(ctx context.Context, customerID string, image []byte) (string, error)
}

// KafkaRequestPublisher is the production publisher.
type KafkaRequestPublisher struct {
	writer *kafka.Writer
}

func NewKafkaRequestPublisher(writer *kafka.Writer) *KafkaRequestPublisher {
	return &KafkaRequestPublisher{writer: writer}
}

func (p *KafkaRequestPublisher) PublishCheckPayment(ctx context.Context, customerID string, image []byte) (string, error) {
	paymentID := "payment-" + uuid.NewString()
	payload, err := json.Marshal(queue.CheckPaymentRequest{
		PaymentID:  paymentID,
		CustomerID: customerID,
		ImageData:  image,
	})
	if err != nil {
		return "", fmt.Errorf("encode check payment request: %w", err)
	}
	msg := kafka.Message{Key: []byte(paymentID), Value: payload}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return "", fmt.Errorf("write check payment request: %w", err)
	}
	return paymentID, nil
}

// Watcher publishes a payment request per image dropped into Dir. Files are
// moved into Dir/sent after publishing so restarts don't resubmit them.
type Watcher struct {
	Dir               string
	DefaultCustomerID string
	Publisher         RequestPublisher
}

const sentSubdir = "sent"

// Run processes files already present, then watches for new ones until the
// context is cancelled. Events are debounced: scanners create files in
// several writes, so a file only counts once it has been quiet for a bit.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Join(w.Dir, sentSubdir), 0755); err != nil {
		return fmt.Errorf("create sent dir: %w", err)
	}
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return fmt.Errorf("read drop dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && isSupportedImage(e.Name()) {
			w.process(ctx, e.Name())
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	log.Printf("ingest: watching %s (debounced)", w.Dir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
				name := filepath.Base(ev.Name)
				if isSupportedImage(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, seen := range pending {
				if now.Sub(seen) > 300*time.Millisecond { // stable
					delete(pending, name)
					w.process(ctx, name)
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("ingest: watch error: %v", err)
		}
	}
}

func (w *Watcher) process(ctx context.Context, name string) {
	full := filepath.Join(w.Dir, name)
	data, err := os.ReadFile(full)
	if err != nil {
		log.Printf("ingest: read %s: %v", name, err)
		return
	}
	customerID := customerIDFromName(name)
	if customerID == "" {
		customerID = w.DefaultCustomerID
	}
	if customerID == "" {
		log.Printf("ingest: skipping %s: no customer id in filename and no default configured", name)
		return
	}
	paymentID, err := w.Publisher.PublishCheckPayment(ctx, customerID, data)
	if err != nil {
		log.Printf("ingest: publish %s: %v", name, err)
		return
	}
	if err := os.Rename(full, filepath.Join(w.Dir, sentSubdir, name)); err != nil {
		log.Printf("ingest: move %s to sent: %v", name, err)
	}
	log.Printf("ingest: submitted %s payment=%s customer=%s (%d bytes)", name, paymentID, customerID, len(data))
}

// customerIDFromName extracts the customer UUID from filenames shaped like
// "<customer-uuid>_anything.png". Returns "" when the prefix is not a UUID.
func customerIDFromName(name string) string {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return ""
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return ""
	}
	return prefix
}

func isSupportedImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}
