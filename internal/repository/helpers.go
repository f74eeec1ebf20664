package repository

import "strings"

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
