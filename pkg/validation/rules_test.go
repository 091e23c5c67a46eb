package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/model"
)

func TestValidate_RequiredMessages(t *testing.T) {
	want := map[model.FieldName]string{
		model.FieldNameName:     MsgNameRequired,
		model.FieldNameEmail:    MsgEmailRequired,
		model.FieldNamePhone:    MsgPhoneRequired,
		model.FieldNamePassword: MsgPasswordRequired,
	}
	for _, field := range model.Fields() {
		if got := Validate(field, ""); got != want[field] {
			t.Fatalf("%s: expected %q, got %q", field, want[field], got)
		}
	}
}

func TestValidate_Rules(t *testing.T) {
	cases := []struct {
		name  string
		field model.FieldName
		value string
		want  string
	}{
		{"name whitespace only", model.FieldNameName, "   ", MsgNameRequired},
		{"name ok", model.FieldNameName, "Ada Lovelace", ""},
		{"name byte order mark only", model.FieldNameName, "\ufeff", MsgNameRequired},
		{"name next line only", model.FieldNameName, "\u0085", ""},
		{"email minimal", model.FieldNameEmail, "a@b.c", ""},
		{"email without at", model.FieldNameEmail, "abc", MsgEmailInvalid},
		{"email without dot", model.FieldNameEmail, "a@b", MsgEmailInvalid},
		{"email double at", model.FieldNameEmail, "a@@b.c", MsgEmailInvalid},
		{"email inner space", model.FieldNameEmail, "a b@c.d", MsgEmailInvalid},
		{"email whitespace only", model.FieldNameEmail, "  ", MsgEmailInvalid},
		{"email subdomain", model.FieldNameEmail, "user@mail.example.org", ""},
		{"email no-break space", model.FieldNameEmail, "a\u00a0b@c.d", MsgEmailInvalid},
		{"email byte order mark", model.FieldNameEmail, "a\ufeffb@c.d", MsgEmailInvalid},
		{"email vertical tab", model.FieldNameEmail, "a\vb@c.d", MsgEmailInvalid},
		{"email next line is not whitespace", model.FieldNameEmail, "a\u0085b@c.d", ""},
		{"phone too short", model.FieldNamePhone, "123", MsgPhoneDigits},
		{"phone ten digits", model.FieldNamePhone, "1234567890", ""},
		{"phone spaced", model.FieldNamePhone, "123 456 7890", ""},
		{"phone fifteen digits", model.FieldNamePhone, "123456789012345", ""},
		{"phone sixteen digits", model.FieldNamePhone, "1234567890123456", MsgPhoneDigits},
		{"phone with dashes", model.FieldNamePhone, "123-456-7890", MsgPhoneDigits},
		{"phone whitespace only", model.FieldNamePhone, "   ", MsgPhoneDigits},
		{"phone ideographic spaces", model.FieldNamePhone, "123\u3000456\u30007890", ""},
		{"phone byte order mark", model.FieldNamePhone, "\ufeff1234567890", ""},
		{"phone next line kept", model.FieldNamePhone, "12345\u008567890", MsgPhoneDigits},
		{"password valid", model.FieldNamePassword, "Abcdef1!", ""},
		{"password short", model.FieldNamePassword, "Ab1!", MsgPasswordLength},
		{"password no lowercase", model.FieldNamePassword, "ABCDEFG1!", MsgPasswordLower},
		{"password no uppercase before special", model.FieldNamePassword, "abcdefg1", MsgPasswordUpper},
		{"password no digit", model.FieldNamePassword, "Abcdefgh!", MsgPasswordDigit},
		{"password no special", model.FieldNamePassword, "Abcdefg1", MsgPasswordSpecial},
		{"unknown field", model.FieldName("nickname"), "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Validate(tc.field, tc.value); got != tc.want {
				t.Fatalf("Validate(%s, %q) = %q, want %q", tc.field, tc.value, got, tc.want)
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	values := model.Values{
		model.FieldNameName:     "Ada",
		model.FieldNameEmail:    "ada",
		model.FieldNamePhone:    "",
		model.FieldNamePassword: "Abcdef1!",
	}

	want := model.Errors{
		model.FieldNameEmail: MsgEmailInvalid,
		model.FieldNamePhone: MsgPhoneRequired,
	}
	if diff := cmp.Diff(want, ValidateAll(values, nil)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestStripWhitespace(t *testing.T) {
	cases := map[string]string{
		" 12\t34\n56 ":         "123456",
		"12\u00a034\u200a56":   "123456",
		"\ufeff12\u2028\u3000": "12",
		"12\u008534":           "12\u008534",
		"12\u180e34":           "12\u180e34",
	}
	for in, want := range cases {
		if got := StripWhitespace(in); got != want {
			t.Fatalf("StripWhitespace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMessageKey(t *testing.T) {
	if got := MessageKey(MsgEmailInvalid); got != "signup.errors.email.invalid" {
		t.Fatalf("MessageKey(email invalid) = %q", got)
	}
	if got := MessageKey("custom failure"); got != "" {
		t.Fatalf("MessageKey(custom) = %q, want empty", got)
	}
}
