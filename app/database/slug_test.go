package database

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"docker", "docker"},
		{"Docker", "docker"},
		{"Spring Boot", "spring-boot"},
		{"C++", "c"},
		{"ASP.NET Core", "asp-net-core"},
		{"Café", "cafe"},
		{"  trimmed  ", "trimmed"},
		{"machine--learning", "machine-learning"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.name); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestSlugify_NonLatinFallback(t *testing.T) {
	// Korean names have no latin representation; the lowercased name
	// itself keeps the slug unique
	got := Slugify("도커 네트워크")
	if got != "도커-네트워크" {
		t.Errorf("Slugify(도커 네트워크) = %q", got)
	}
}
