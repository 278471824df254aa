package models

// Profile is a company account on the platform. Pages, users and option
// lists all live under a profile.
type Profile struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
