package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/models"
)

// LoginResult — кто вошёл и куда его отправить.
type LoginResult struct {
	Role     models.Role
	UserID   string // пустой для администратора
	Redirect string
}

// Login проверяет учётные данные: сперва администратор из конфигурации,
// затем родитель по телефону, затем учитель. Пароли сравниваются как есть —
// хэширование сознательно вне рамок.
func (s *Service) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	if login == "" || password == "" {
		return nil, validationf("логин и пароль обязательны")
	}

	if login == s.AdminLogin && password == s.AdminPassword {
		return &LoginResult{Role: models.Admin, Redirect: "/admin"}, nil
	}

	// Телефон вводят с пробелами — нормализуем.
	phone := strings.ReplaceAll(login, " ", "")

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	parent, err := db.FindParentByPhone(dbCtx, s.DB, phone)
	if err != nil {
		return nil, fmt.Errorf("поиск родителя: %w", err)
	}
	if parent != nil && parent.Password == password {
		return &LoginResult{Role: models.Parent, UserID: parent.ID, Redirect: "/parent"}, nil
	}

	teacher, err := db.FindTeacherByPhone(dbCtx, s.DB, phone)
	if err != nil {
		return nil, fmt.Errorf("поиск учителя: %w", err)
	}
	if teacher != nil && teacher.Password == password {
		return &LoginResult{Role: models.Teacher, UserID: teacher.ID, Redirect: "/teacher"}, nil
	}

	return nil, validationf("неверный логин или пароль")
}
