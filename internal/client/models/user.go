package models

// User is the identity record returned by the TrainIA API. The server is the
// single source of truth: a User is replaced wholesale on every successful
// fetch or update and never mutated field by field on the client.
type User struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	AvatarURL          string `json:"avatar_url"`
	Role               string `json:"role"`
	SubscriptionStatus string `json:"subscription_status"`
}
