package ctxutil

import (
	"context"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
)

// приватные ключи, чтобы исключить коллизии
type key int

const keySession key = iota

// Session — явный сеансовый контекст запроса: роль и идентификатор субъекта.
// Заполняется один раз в middleware из cookie-пары auth_role/auth_id.
type Session struct {
	Role   models.Role
	UserID string // пустой для администратора
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, keySession, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	v := ctx.Value(keySession)
	if v == nil {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout — стандартный таймаут для БД; не растягиваем дедлайн родителя.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
