package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeSet is a set of user ids keyed by their hex form. An entry only ever
// exists with value true; toggling off removes the key, so "liked" means
// "key present".
type LikeSet map[string]bool

func (s LikeSet) Has(userID string) bool {
	return s[userID]
}

// Toggle flips the presence of userID in the set.
func (s LikeSet) Toggle(userID string) {
	if s[userID] {
		delete(s, userID)
	} else {
		s[userID] = true
	}
}

type Post struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	// Author snapshot taken at creation time; intentionally not kept in
	// sync with later profile edits.
	FirstName       string    `json:"firstName" bson:"firstName"`
	LastName        string    `json:"lastName" bson:"lastName"`
	Location        string    `json:"location" bson:"location"`
	UserPicturePath string    `json:"userPicturePath" bson:"userPicturePath"`
	Description     string    `json:"description" bson:"description"`
	PicturePath     string    `json:"picturePath" bson:"picturePath"`
	Likes           LikeSet   `json:"likes" bson:"likes"`
	Comments        []string  `json:"comments" bson:"comments"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}
