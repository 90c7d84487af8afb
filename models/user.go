package models

import "time"

type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	NickName   string    `json:"nickName"`
	LoginType  string    `json:"loginType"`
	Username   string    `json:"username"`
	SocialType *string   `json:"socialType"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CredentialsLoginRequest is the body of POST /auth/local.
type CredentialsLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
