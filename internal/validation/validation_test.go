package validation_test

import (
	"strings"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
)

func validInput() models.EmployeeInput {
	return models.EmployeeInput{
		Name:    "Al",
		Dept:    models.DeptIT,
		Active:  true,
		Number:  "123",
		Email:   "a@b.com",
		Address: "x",
		Photo:   "data:image/png;base64,AAA=",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validation.Validate(validInput()))
}

func TestValidate_EmptyRecord(t *testing.T) {
	t.Parallel()

	errs := validation.Validate(models.EmployeeInput{})
	require.NotNil(t, errs)

	assert.Equal(t, []validation.Field{
		validation.FieldName,
		validation.FieldDept,
		validation.FieldEmail,
		validation.FieldNumber,
		validation.FieldAddress,
		validation.FieldPhoto,
	}, errs.Fields())
	assert.Equal(t, map[validation.Field]string{
		validation.FieldName:    validation.MsgNameRequired,
		validation.FieldDept:    validation.MsgDeptInvalid,
		validation.FieldEmail:   validation.MsgEmailRequired,
		validation.FieldNumber:  validation.MsgNumberRequired,
		validation.FieldAddress: validation.MsgAddressRequired,
		validation.FieldPhoto:   validation.MsgPhotoRequired,
	}, errs.ByField())
	assert.Equal(t, strings.Join(errs.Messages(), " "), errs.Error())
}

func TestValidate_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "empty", value: "", wantMsg: validation.MsgNameRequired},
		{name: "only spaces", value: "    ", wantMsg: validation.MsgNameRequired},
		{name: "one char", value: "A", wantMsg: validation.MsgNameTooShort},
		{name: "one char padded", value: "  A  ", wantMsg: validation.MsgNameTooShort},
		{name: "two chars", value: "Al"},
		{name: "two chars padded", value: " Al "},
		{name: "long", value: "Alexandra Petrova"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			in.Name = tt.value

			assert.Equal(t, tt.wantMsg, validation.Validate(in).ByField()[validation.FieldName])
		})
	}
}

func TestValidate_Email(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "empty", value: "", wantMsg: validation.MsgEmailRequired},
		{name: "spaces", value: "   ", wantMsg: validation.MsgEmailRequired},
		{name: "no at", value: "ab.com", wantMsg: validation.MsgEmailInvalid},
		{name: "no dot in domain", value: "a@bcom", wantMsg: validation.MsgEmailInvalid},
		{name: "two ats", value: "a@b@c.com", wantMsg: validation.MsgEmailInvalid},
		{name: "inner space", value: "a b@c.com", wantMsg: validation.MsgEmailInvalid},
		{name: "vertical tab", value: "a\vb@c.com", wantMsg: validation.MsgEmailInvalid},
		{name: "no-break space in local part", value: "a\u00a0b@c.com", wantMsg: validation.MsgEmailInvalid},
		{name: "em space in domain", value: "a@b\u2003x.com", wantMsg: validation.MsgEmailInvalid},
		{name: "no-break space in tld", value: "a@b.c\u00a0d", wantMsg: validation.MsgEmailInvalid},
		{name: "byte order mark", value: "a\ufeffb@c.com", wantMsg: validation.MsgEmailInvalid},
		{name: "empty tld", value: "a@b.", wantMsg: validation.MsgEmailInvalid},
		{name: "simple", value: "a@b.com"},
		{name: "padded", value: "  a@b.com  "},
		{name: "upper case", value: "John.Doe@Example.COM"},
		{name: "subdomain", value: "j@mail.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			in.Email = tt.value

			assert.Equal(t, tt.wantMsg, validation.Validate(in).ByField()[validation.FieldEmail])
		})
	}
}

func TestValidate_GeneratedEmails(t *testing.T) {
	t.Parallel()

	for range 50 {
		in := validInput()
		in.Email = randomail.GenerateRandomEmail()

		assert.Nil(t, validation.Validate(in), "generated email %q must be accepted", in.Email)
	}
}

func TestValidate_Number(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "empty", value: "", wantMsg: validation.MsgNumberRequired},
		{name: "spaces", value: "  ", wantMsg: validation.MsgNumberRequired},
		{name: "letters", value: "12a", wantMsg: validation.MsgNumberDigits},
		{name: "negative", value: "-12", wantMsg: validation.MsgNumberDigits},
		{name: "decimal", value: "1.5", wantMsg: validation.MsgNumberDigits},
		{name: "padded digits", value: " 12", wantMsg: validation.MsgNumberDigits},
		{name: "eleven digits", value: "12345678901", wantMsg: validation.MsgNumberTooLong},
		{name: "one digit", value: "7"},
		{name: "leading zeros", value: "0007"},
		{name: "ten digits", value: "1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			in.Number = tt.value

			assert.Equal(t, tt.wantMsg, validation.Validate(in).ByField()[validation.FieldNumber])
		})
	}
}

func TestValidate_AddressDeptPhoto(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Address = " \t "
	in.Dept = "Marketing"
	in.Photo = "https://example.com/me.png"

	errs := validation.Validate(in)
	require.NotNil(t, errs)

	assert.Equal(t, []string{
		validation.MsgDeptInvalid,
		validation.MsgAddressRequired,
		validation.MsgPhotoNotImage,
	}, errs.Messages())
}

func TestValidatePhotoFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mediaType string
		size      int64
		want      string
	}{
		{name: "png", mediaType: "image/png", size: 1024},
		{name: "jpeg", mediaType: "image/jpeg", size: 1024},
		{name: "jpg", mediaType: "image/jpg", size: 1024},
		{name: "exactly 2MB", mediaType: "image/png", size: validation.MaxPhotoBytes},
		{name: "gif", mediaType: "image/gif", size: 1024, want: validation.MsgPhotoType},
		{name: "unknown", mediaType: "", size: 1024, want: validation.MsgPhotoType},
		{name: "3MB", mediaType: "image/jpeg", size: 3 * 1024 * 1024, want: validation.MsgPhotoTooLarge},
		{name: "one byte over", mediaType: "image/png", size: validation.MaxPhotoBytes + 1, want: validation.MsgPhotoTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, validation.ValidatePhotoFile(tt.mediaType, tt.size))
		})
	}
}

func TestErrors_NilReceiver(t *testing.T) {
	t.Parallel()

	var errs *validation.Errors

	assert.Nil(t, errs.Messages())
	assert.Nil(t, errs.Fields())
	assert.Empty(t, errs.ByField())
}
