package models

import "time"

// Category is the list a task belongs to.
type Category string

const (
	CategoryToday     Category = "Today"
	CategoryUpcoming  Category = "Upcoming"
	CategoryCompleted Category = "Completed"
)

// Categories lists every valid Category.
var Categories = []Category{CategoryToday, CategoryUpcoming, CategoryCompleted}

// Valid reports whether c is one of Categories. Matching is case-sensitive.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Task represents a task item owned by a user.
type Task struct {
	ID        string    `json:"_id" bson:"_id" firestore:"id"`
	UserID    string    `json:"userId" bson:"userId" firestore:"userId"`
	Title     string    `json:"title" bson:"title" firestore:"title"`
	Category  Category  `json:"category" bson:"category" firestore:"category"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

// Task event actions.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// TaskEvent is the message payload for Kafka, published after a task write.
type TaskEvent struct {
	Action     string    `json:"action"` // created, deleted
	TaskID     string    `json:"taskId"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}
