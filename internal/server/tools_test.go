package server

import (
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"photo_load",
		"photo_info",
		"photo_enhance",
		"photo_enhance_accurate",
		"photo_crop_mode",
		"photo_crop_point",
		"photo_crop_commit",
		"photo_crop_undo",
		"photo_geometry",
		"photo_sample",
		"photo_preview",
		"photo_save",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"photo_load", []string{"path"}},
		{"photo_save", []string{"path"}},
		{"photo_crop_mode", []string{"enabled"}},
		{"photo_crop_point", []string{"x", "y"}},
		{"photo_sample", []string{"points"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool := toolByName(t, tt.tool)
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, want := range tt.required {
				found := false
				for _, r := range required {
					if r == want {
						found = true
					}
				}
				if !found {
					t.Errorf("should require %q", want)
				}
				if _, ok := props[want]; !ok {
					t.Errorf("required %q has no property schema", want)
				}
			}
		})
	}
}

func TestToolDefinitions_EnhanceModes(t *testing.T) {
	props := toolByName(t, "photo_enhance").InputSchema["properties"].(map[string]interface{})
	mode, ok := props["mode"].(map[string]interface{})
	if !ok {
		t.Fatal("mode property should exist and be a map")
	}
	enum, ok := mode["enum"].([]string)
	if !ok {
		t.Fatal("mode should have enum")
	}

	want := []string{"standard", "natural", "vivid", "pro"}
	if len(enum) != len(want) {
		t.Fatalf("enum: got %v, want %v", enum, want)
	}
	for i := range want {
		if enum[i] != want[i] {
			t.Errorf("enum[%d]: got %s, want %s", i, enum[i], want[i])
		}
	}
}

func TestToolDefinitions_CropPointSpaces(t *testing.T) {
	props := toolByName(t, "photo_crop_point").InputSchema["properties"].(map[string]interface{})
	space, ok := props["space"].(map[string]interface{})
	if !ok {
		t.Fatal("space property should exist")
	}
	if space["default"] != "source" {
		t.Errorf("space default: got %v, want source", space["default"])
	}
}
