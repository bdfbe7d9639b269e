package timezone

import "testing"

func TestGetTimezone(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      string
	}{
		{
			name:      "harare",
			latitude:  -17.8292,
			longitude: 31.0522,
			want:      "Africa/Harare",
		},
		{
			name:      "victoria falls",
			latitude:  -17.9243,
			longitude: 25.8572,
			want:      "Africa/Harare",
		},
		{
			name:      "bulawayo",
			latitude:  -20.1325,
			longitude: 28.6265,
			want:      "Africa/Harare",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetTimezone(tt.latitude, tt.longitude)
			if err != nil {
				t.Fatalf("GetTimezone() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetTimezone() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewServiceReturnsSingleton(t *testing.T) {
	a, err := NewService()
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	b, err := NewService()
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if a != b {
		t.Error("NewService() returned distinct instances, want singleton")
	}
}
