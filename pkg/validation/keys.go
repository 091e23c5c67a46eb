package validation

var messageKeys = map[string]string{
	MsgNameRequired:     "signup.errors.name.required",
	MsgEmailRequired:    "signup.errors.email.required",
	MsgEmailInvalid:     "signup.errors.email.invalid",
	MsgPhoneRequired:    "signup.errors.phone.required",
	MsgPhoneDigits:      "signup.errors.phone.digits",
	MsgPasswordRequired: "signup.errors.password.required",
	MsgPasswordLength:   "signup.errors.password.length",
	MsgPasswordLower:    "signup.errors.password.lowercase",
	MsgPasswordUpper:    "signup.errors.password.uppercase",
	MsgPasswordDigit:    "signup.errors.password.digit",
	MsgPasswordSpecial:  "signup.errors.password.special",
}

// MessageKey returns the translation key of a built-in message, or "" for
// messages produced by custom validators.
func MessageKey(message string) string {
	return messageKeys[message]
}
