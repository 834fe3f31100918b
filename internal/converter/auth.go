package converter

import (
	"strings"

	"roulette_backend/internal/api/dto/auth"
	"roulette_backend/internal/model"
)

func RegisterRequestToUserModel(req *auth.RegisterRequest) *model.User {
	return &model.User{
		Name:     strings.TrimSpace(req.Name),
		Login:    strings.TrimSpace(req.Login),
		Password: req.Password,
	}
}
