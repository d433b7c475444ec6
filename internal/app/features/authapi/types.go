package authapi

import (
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registerInput struct {
	Name     string   `json:"name" validate:"required,max=100" label:"Name"`
	Email    string   `json:"email" validate:"required,max=254,email" label:"Email"`
	Password string   `json:"password" validate:"required,max=72" label:"Password"`
	Role     []string `json:"role" validate:"max=10,dive,max=50" label:"Role"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// userJSON is the public view of an account.
type userJSON struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  []string           `json:"role"`
}

func toUserJSON(u *models.User) userJSON {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, Role: roles}
}

type sessionResponse struct {
	Message   string   `json:"message"`
	User      userJSON `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expiresAt"`
}

type meResponse struct {
	User userJSON `json:"user"`
}

type usersResponse struct {
	Users []userJSON `json:"users"`
}
