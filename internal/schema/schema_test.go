package schema

import (
	"reflect"
	"testing"
)

func notificationSkeleton() []SkeletonField {
	return []SkeletonField{
		{Name: "phone_number", Def: PropertyDef{Type: TypeString, Description: "Số điện thoại người nhận"}, Required: true},
		{Name: "email", Def: PropertyDef{Type: TypeString, Description: "Email người nhận"}, Required: true},
	}
}

func TestBuildParametersDayDu(t *testing.T) {
	folderProps := map[string]PropertyDef{
		"first_name": {Type: TypeString, Description: "Tên của khách"},
	}

	params := BuildParameters(notificationSkeleton(), []string{"first_name", "ghost_var"}, folderProps)

	if params.Type != TypeObject {
		t.Errorf("Type = %q, muốn %q", params.Type, TypeObject)
	}

	wantKeys := []string{"phone_number", "email", "first_name", "ghost_var"}
	if len(params.Properties) != len(wantKeys) {
		t.Fatalf("Properties có %d key, muốn %d: %v", len(params.Properties), len(wantKeys), params.Properties)
	}
	for _, key := range wantKeys {
		if _, ok := params.Properties[key]; !ok {
			t.Errorf("Properties thiếu key %q", key)
		}
	}

	// Placeholder có trong folder: copy nguyên định nghĩa
	if params.Properties["first_name"].Description != "Tên của khách" {
		t.Errorf("first_name không được copy từ folder: %+v", params.Properties["first_name"])
	}

	// Placeholder không còn trong folder: fallback string
	ghost := params.Properties["ghost_var"]
	if ghost.Type != TypeString {
		t.Errorf("ghost_var.Type = %q, muốn %q", ghost.Type, TypeString)
	}
	if ghost.Description != "Variable: ghost_var" {
		t.Errorf("ghost_var.Description = %q, muốn 'Variable: ghost_var'", ghost.Description)
	}

	wantRequired := []string{"phone_number", "email", "first_name", "ghost_var"}
	if !reflect.DeepEqual(params.Required, wantRequired) {
		t.Errorf("Required = %v, muốn %v", params.Required, wantRequired)
	}
}

func TestBuildParametersKhongTrungRequired(t *testing.T) {
	// Placeholder trùng tên với skeleton không được thêm lần hai
	params := BuildParameters(notificationSkeleton(), []string{"phone_number", "email", "last_name"}, nil)

	wantRequired := []string{"phone_number", "email", "last_name"}
	if !reflect.DeepEqual(params.Required, wantRequired) {
		t.Fatalf("Required = %v, muốn %v", params.Required, wantRequired)
	}

	seen := make(map[string]bool)
	for _, name := range params.Required {
		if seen[name] {
			t.Errorf("Required chứa phần tử trùng: %q", name)
		}
		seen[name] = true
		if _, ok := params.Properties[name]; !ok {
			t.Errorf("Required chứa %q nhưng Properties không có", name)
		}
	}
}

func TestBuildParametersSkeletonRong(t *testing.T) {
	params := BuildParameters(nil, []string{"a", "b"}, nil)
	if len(params.Properties) != 2 {
		t.Fatalf("Properties = %v, muốn 2 key a, b", params.Properties)
	}
	if !reflect.DeepEqual(params.Required, []string{"a", "b"}) {
		t.Errorf("Required = %v, muốn [a b]", params.Required)
	}
}

func TestBuildParametersDeterministic(t *testing.T) {
	folderProps := map[string]PropertyDef{
		"first_name": {Type: TypeString, Description: "Tên"},
		"birthdate":  {Type: TypeString, Description: "Ngày sinh"},
	}
	placeholders := []string{"first_name", "birthdate", "ghost"}

	first := BuildParameters(notificationSkeleton(), placeholders, folderProps)
	second := BuildParameters(notificationSkeleton(), placeholders, folderProps)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("BuildParameters không deterministic:\nlần 1: %+v\nlần 2: %+v", first, second)
	}
}

func TestFallbackDefEnumNil(t *testing.T) {
	def := FallbackDef("anything")
	if def.Enum != nil {
		t.Errorf("FallbackDef.Enum = %v, muốn nil", def.Enum)
	}
}
