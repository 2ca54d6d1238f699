package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxFriends caps the size of a user's friend list. Enforced when toggling,
// not at the schema level.
const MaxFriends = 30

type User struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	FirstName     string               `json:"firstName" bson:"firstName"`
	LastName      string               `json:"lastName" bson:"lastName"`
	Email         string               `json:"email" bson:"email"`
	Password      string               `json:"password,omitempty" bson:"password"`
	PicturePath   string               `json:"picturePath" bson:"picturePath"`
	CoverPath     string               `json:"coverPath" bson:"coverPath"`
	Friends       []primitive.ObjectID `json:"friends" bson:"friends"`
	Location      string               `json:"location" bson:"location"`
	Occupation    string               `json:"occupation" bson:"occupation"`
	Twitter       string               `json:"twitter" bson:"twitter,omitempty"`
	Linkedin      string               `json:"linkedin" bson:"linkedin,omitempty"`
	ViewedProfile int                  `json:"viewedProfile" bson:"viewedProfile"`
	Impressions   int                  `json:"impressions" bson:"impressions"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
	// Set only when another user's profile is viewed; nil means the field
	// is omitted from the response entirely.
	IsFriend *bool `json:"isFriend,omitempty" bson:"-"`
}

// Sanitize blanks the password hash before the user is serialized.
func (u *User) Sanitize() {
	u.Password = ""
}

// HasFriend reports whether id is in the user's friend list.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// FriendSummary is the projection returned when listing a user's friends.
type FriendSummary struct {
	ID          primitive.ObjectID `json:"_id"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	PicturePath string             `json:"picturePath"`
	Location    string             `json:"location"`
	Occupation  string             `json:"occupation"`
	IsFriend    bool               `json:"isFriend"`
}
