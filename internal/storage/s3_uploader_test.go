package storage

import (
	"testing"
)

func TestNewS3UploaderValidation(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name: "missing endpoint",
			config: &Config{
				AccessKeyID:     "key",
				AccessKeySecret: "secret",
				Bucket:          "invoices",
			},
		},
		{
			name: "missing credentials",
			config: &Config{
				Endpoint: "s3.example.com",
				Bucket:   "invoices",
			},
		},
		{
			name: "missing bucket",
			config: &Config{
				Endpoint:        "s3.example.com",
				AccessKeyID:     "key",
				AccessKeySecret: "secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewS3Uploader(tt.config); err == nil {
				t.Error("NewS3Uploader() should fail with incomplete config")
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	got := PublicURL("invoices-bucket", "s3.ap-south-1.amazonaws.com", "invoices/1756700000-Jane_Doe.pdf")
	want := "https://invoices-bucket.s3.ap-south-1.amazonaws.com/invoices/1756700000-Jane_Doe.pdf"

	if got != want {
		t.Errorf("PublicURL() = %q, want %q", got, want)
	}
}
