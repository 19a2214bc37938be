package validate

import "testing"

type signupInput struct {
	Name     string   `json:"name" validate:"required"`
	UserName string   `json:"userName" validate:"required,alpha_dash,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Gender   string   `json:"gender" validate:"nullable,in=men,women,unisex"`
	Price    float64  `json:"price" validate:"required,gt=0"`
	Qty      int      `json:"qty" validate:"gte=0"`
	Nick     *string  `json:"nick" validate:"nullable,min=2"`
	Tags     []string `json:"tags" validate:"required"`
}

func valid() signupInput {
	return signupInput{
		Name:     "Asha",
		UserName: "asha_k",
		Email:    "asha@example.com",
		Gender:   "women",
		Price:    99.5,
		Qty:      0,
		Tags:     []string{"new"},
	}
}

func TestStructValid(t *testing.T) {
	errs := Struct(valid())
	if HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestRequired(t *testing.T) {
	in := valid()
	in.Name = "  "
	in.Tags = nil

	errs := Struct(in)
	if _, ok := errs["name"]; !ok {
		t.Error("blank name should fail required")
	}
	if _, ok := errs["tags"]; !ok {
		t.Error("empty slice should fail required")
	}
}

func TestEmail(t *testing.T) {
	in := valid()
	in.Email = "not-an-email"
	if _, ok := Struct(in)["email"]; !ok {
		t.Error("bad email should fail")
	}
}

func TestAlphaDashAndMin(t *testing.T) {
	in := valid()
	in.UserName = "has space"
	if _, ok := Struct(in)["userName"]; !ok {
		t.Error("space should fail alpha_dash")
	}

	in = valid()
	in.UserName = "ab"
	if _, ok := Struct(in)["userName"]; !ok {
		t.Error("too-short username should fail min=3")
	}
}

func TestInKeepsMultiValueParams(t *testing.T) {
	in := valid()
	in.Gender = "kids"
	if _, ok := Struct(in)["gender"]; !ok {
		t.Error("value outside in= list should fail")
	}

	for _, g := range []string{"men", "women", "unisex"} {
		in.Gender = g
		if msg, ok := Struct(in)["gender"]; ok {
			t.Errorf("gender %q should pass, got %q", g, msg)
		}
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	in := valid()
	in.Gender = ""
	in.Nick = nil
	if errs := Struct(in); HasErrors(errs) {
		t.Errorf("empty nullable fields should pass, got %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	in := valid()
	in.Price = 0
	if _, ok := Struct(in)["price"]; !ok {
		t.Error("price 0 should fail required")
	}

	in = valid()
	in.Price = -5
	if _, ok := Struct(in)["price"]; !ok {
		t.Error("negative price should fail gt=0")
	}

	in = valid()
	in.Qty = -1
	if _, ok := Struct(in)["qty"]; !ok {
		t.Error("negative qty should fail gte=0")
	}
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	in := valid()
	in.UserName = ""
	errs := Struct(in)
	if _, ok := errs["userName"]; !ok {
		t.Errorf("error should be keyed by json tag, got %v", errs)
	}
}
