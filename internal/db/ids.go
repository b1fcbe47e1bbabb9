package db

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID выдаёт непрозрачный 24-символьный hex-идентификатор (ObjectID).
// Генерируется на стороне приложения, в базе хранится как TEXT.
func NewID() string { return primitive.NewObjectID().Hex() }

// ValidID проверяет, что строка — корректный 24-hex идентификатор.
func ValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
