package utils

import "testing"

type registerPayload struct {
	Name                 string `validate:"required,nameok"`
	Email                string `validate:"required,email"`
	Password             string `validate:"required,pwdmin"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func TestValidateStruct_OK(t *testing.T) {
	p := registerPayload{
		Name:                 "Jane Doe",
		Email:                "jane@example.com",
		Password:             "hunter22",
		PasswordConfirmation: "hunter22",
	}
	if err := ValidateStruct(&p); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateStruct_Required(t *testing.T) {
	p := registerPayload{Email: "jane@example.com", Password: "hunter22", PasswordConfirmation: "hunter22"}
	if err := ValidateStruct(&p); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestValidateStruct_Email(t *testing.T) {
	for _, bad := range []string{"nope", "a@b", "a b@c.com", "@x.com"} {
		p := registerPayload{Name: "Jane", Email: bad, Password: "hunter22", PasswordConfirmation: "hunter22"}
		if err := ValidateStruct(&p); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateStruct_PasswordRules(t *testing.T) {
	p := registerPayload{Name: "Jane", Email: "jane@example.com", Password: "short", PasswordConfirmation: "short"}
	if err := ValidateStruct(&p); err == nil {
		t.Fatal("expected error for short password")
	}
	p = registerPayload{Name: "Jane", Email: "jane@example.com", Password: "hunter22", PasswordConfirmation: "hunter23"}
	if err := ValidateStruct(&p); err == nil {
		t.Fatal("expected error for mismatched confirmation")
	}
}

func TestValidateStruct_RequiredNumeric(t *testing.T) {
	type payload struct {
		Quantity int `validate:"required"`
	}
	if err := ValidateStruct(&payload{}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if err := ValidateStruct(&payload{Quantity: 3}); err != nil {
		t.Fatalf("expected non-zero quantity to pass, got %v", err)
	}
}

func TestValidateStruct_NameCharacters(t *testing.T) {
	p := registerPayload{Name: "<script>", Email: "jane@example.com", Password: "hunter22", PasswordConfirmation: "hunter22"}
	if err := ValidateStruct(&p); err == nil {
		t.Fatal("expected error for invalid name characters")
	}
}
