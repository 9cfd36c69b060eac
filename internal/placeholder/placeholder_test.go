package placeholder

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"hai bien", "Hi {first_name}, re {reason_for_visit}", []string{"first_name", "reason_for_visit"}},
		{"khong co bien", "no vars here", []string{}},
		{"trung lap", "{a}{a}{b}", []string{"a", "b"}},
		{"text rong", "", []string{}},
		{"ngoac le bi bo qua", "open { no close, close } alone, {valid_one}", []string{"valid_one"}},
		{"ngoac long nhau", "{{inner}}", []string{"inner"}},
		{"ky tu la trong token", "{bad name} {good_name}", []string{"good_name"}},
	}

	for _, tc := range cases {
		got := Extract(tc.text)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("case '%s': Extract(%q) = %v, muốn %v", tc.name, tc.text, got, tc.want)
		}
	}
}

func TestExtractGiuThuTuXuatHienDauTien(t *testing.T) {
	got := Extract("{c} and {a} then {b} and {a} again")
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract không giữ thứ tự xuất hiện đầu tiên: %v, muốn %v", got, want)
	}
}

func TestExtractAllUnionNhieuTemplate(t *testing.T) {
	got := ExtractAll("Hi {first_name}", "Your visit: {reason_for_visit}", "Bye {first_name}")
	want := []string{"first_name", "reason_for_visit"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractAll = %v, muốn %v", got, want)
	}
}

func TestRender(t *testing.T) {
	values := map[string]string{"first_name": "Lan", "reason_for_visit": "khám răng"}

	got := Render("Hi {first_name}, re {reason_for_visit}. {unknown} stays.", values)
	want := "Hi Lan, re khám răng. {unknown} stays."
	if got != want {
		t.Fatalf("Render = %q, muốn %q", got, want)
	}
}

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"First Name", "first_name"},
		{"first_name", "first_name"},
		{"  Email Address  ", "email_address"},
		{"phone-number", "phone_number"},
		{"a__b___c", "a_b_c"},
		{"9lives", "_9lives"},
		{"", ""},
		{"___", ""},
	}

	for _, tc := range cases {
		got := Canonicalize(tc.in)
		if got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, muốn %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{"First Name", "9 Lives", "ALL CAPS VAR", "weird--chars!!here", "ok_already"}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize không idempotent với %q: lần 1 %q, lần 2 %q", in, once, twice)
		}
	}
}
