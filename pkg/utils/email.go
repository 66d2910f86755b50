package utils

import "regexp"

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func IsEmail(email string) bool {
	return emailRegex.MatchString(email)
}
