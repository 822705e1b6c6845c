package models

import "fmt"

// Name is an immutable first/last name value pair.
type Name struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewName constructs a Name, requiring both parts.
func NewName(first, last string) (Name, error) {
	if first == "" {
		return Name{}, fmt.Errorf("first name cannot be empty")
	}
	if last == "" {
		return Name{}, fmt.Errorf("last name cannot be empty")
	}
	return Name{FirstName: first, LastName: last}, nil
}

// Full returns the space-joined full name.
func (n Name) Full() string {
	return n.FirstName + " " + n.LastName
}

func (n Name) String() string {
	return n.Full()
}

// Person is the capability set shared by the people the registry tracks.
// Student and Instructor are the two variants; equality is by identity
// key only.
type Person interface {
	Identity() string
	DisplayName() string
	ContactEmail() string
	Role() string
	ProfileSummary() string
}
