package database

import (
	"fmt"

	"github.com/example/korbot/pkg/models"
)

// SubscriberRepository handles the channel digest subscriber list
type SubscriberRepository struct{}

// NewSubscriberRepository creates a new repository instance
func NewSubscriberRepository() *SubscriberRepository {
	return &SubscriberRepository{}
}

// Add registers a user as a subscriber. Adding twice is a no-op.
func (r *SubscriberRepository) Add(userID int64) error {
	query := DB.Rebind(`INSERT INTO subscribers (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`)
	if _, err := DB.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to add subscriber: %v", err)
	}
	return nil
}

// GetAll returns all subscribers
func (r *SubscriberRepository) GetAll() ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	if err := DB.Select(&subscribers, `SELECT user_id, created_at FROM subscribers`); err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %v", err)
	}
	return subscribers, nil
}

// Delete removes a subscriber
func (r *SubscriberRepository) Delete(userID int64) error {
	query := DB.Rebind(`DELETE FROM subscribers WHERE user_id = ?`)
	if _, err := DB.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete subscriber: %v", err)
	}
	return nil
}
