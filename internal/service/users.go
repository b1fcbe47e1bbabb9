package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/models"
)

type TeacherInput struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password"` // обязателен при создании, опционален при обновлении
}

type StudentInput struct {
	FullName string `json:"fullName" validate:"required"`
}

type ParentInput struct {
	FullName   string   `json:"fullName" validate:"required"`
	Phone      string   `json:"phone" validate:"required"`
	Password   string   `json:"password"`
	StudentIDs []string `json:"studentIds" validate:"dive,len=24,hexadecimal"`
}

func normalizePhone(p string) string { return strings.ReplaceAll(strings.TrimSpace(p), " ", "") }

func (s *Service) CreateTeacher(ctx context.Context, in TeacherInput) (string, error) {
	if in.Password == "" {
		return "", validationf("пароль обязателен")
	}
	phone := normalizePhone(in.Phone)

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	// Дубликат телефона ловим поиском до вставки; уникальный индекс — страховка.
	existing, err := db.FindTeacherByPhone(dbCtx, s.DB, phone)
	if err != nil {
		return "", fmt.Errorf("проверка телефона: %w", err)
	}
	if existing != nil {
		return "", conflictf("учитель с телефоном %s уже существует", phone)
	}
	return db.CreateTeacher(dbCtx, s.DB, in.FullName, phone, in.Password)
}

func (s *Service) UpdateTeacher(ctx context.Context, id string, in TeacherInput) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := db.UpdateTeacher(dbCtx, s.DB, id, in.FullName, normalizePhone(in.Phone), in.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: учитель %s", ErrNotFound, id)
	}
	return err
}

func (s *Service) DeleteTeacher(ctx context.Context, id string) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := db.DeleteTeacher(dbCtx, s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: учитель %s", ErrNotFound, id)
	}
	return err
}

func (s *Service) GetTeacher(ctx context.Context, id string) (*models.TeacherAccount, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	teacher, err := db.GetTeacherByID(dbCtx, s.DB, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: учитель %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("чтение учителя: %w", err)
	}
	return teacher, nil
}

func (s *Service) ListTeachers(ctx context.Context) ([]models.TeacherAccount, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListTeachers(dbCtx, s.DB)
}

func (s *Service) CreateStudent(ctx context.Context, in StudentInput) (string, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.CreateStudent(dbCtx, s.DB, in.FullName)
}

func (s *Service) UpdateStudent(ctx context.Context, id string, in StudentInput) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := db.UpdateStudent(dbCtx, s.DB, id, in.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: ученик %s", ErrNotFound, id)
	}
	return err
}

func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := db.DeleteStudent(dbCtx, s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: ученик %s", ErrNotFound, id)
	}
	return err
}

func (s *Service) ListStudents(ctx context.Context) ([]models.StudentAccount, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListStudents(dbCtx, s.DB)
}

func (s *Service) CreateParent(ctx context.Context, in ParentInput) (string, error) {
	if in.Password == "" {
		return "", validationf("пароль обязателен")
	}
	phone := normalizePhone(in.Phone)

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	existing, err := db.FindParentByPhone(dbCtx, s.DB, phone)
	if err != nil {
		return "", fmt.Errorf("проверка телефона: %w", err)
	}
	if existing != nil {
		return "", conflictf("родитель с телефоном %s уже существует", phone)
	}
	return db.CreateParent(dbCtx, s.DB, in.FullName, phone, in.Password, in.StudentIDs)
}

func (s *Service) UpdateParent(ctx context.Context, id string, in ParentInput) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := db.UpdateParent(dbCtx, s.DB, id, in.FullName, normalizePhone(in.Phone), in.Password, in.StudentIDs)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: родитель %s", ErrNotFound, id)
	}
	return err
}

func (s *Service) DeleteParent(ctx context.Context, id string) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := db.DeleteParent(dbCtx, s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: родитель %s", ErrNotFound, id)
	}
	return err
}

func (s *Service) ListParents(ctx context.Context) ([]models.ParentAccount, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListParents(dbCtx, s.DB)
}
