package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id" bson:"_id" firestore:"id"`
	Name         string    `json:"name" bson:"name" firestore:"name"`
	Email        string    `json:"email" bson:"email" firestore:"email"`
	PasswordHash string    `json:"-" bson:"password" firestore:"password"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}
