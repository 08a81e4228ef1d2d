package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/worklog/internal/domain/user"
)

// DefaultAccounts are the accounts created by Seed.
var DefaultAccounts = []user.CreateRequest{
	{Username: "admin", Name: "系统管理员", Role: user.RoleManager},
	{Username: "zhang_san", Name: "张三", Role: user.RoleEmployee},
	{Username: "li_si", Name: "李四", Role: user.RoleEmployee},
}

// Seed creates the default accounts that do not exist yet and returns the
// ones it created.
func (a *App) Seed(ctx context.Context) ([]user.User, error) {
	var created []user.User
	for _, req := range DefaultAccounts {
		u, err := a.Users.Create(ctx, req)
		if errors.Is(err, user.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", req.Username, err)
		}
		a.Logger.Info("seeded account", "username", u.Username, "role", u.Role)
		created = append(created, *u)
	}
	return created, nil
}
