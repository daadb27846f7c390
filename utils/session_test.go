package utils

import "testing"

func TestGetLocationFromIPOffline(t *testing.T) {
	// None of these reach the geolocation service.
	cases := []struct {
		name string
		ip   string
		want string
	}{
		{"empty", "", "Unknown Location"},
		{"garbage", "not-an-ip", "Unknown Location"},
		{"loopback v4", "127.0.0.1", "Local Network"},
		{"loopback v6", "::1", "Local Network"},
		{"private", "192.168.1.20", "Local Network"},
		{"private 10", "10.0.0.5", "Local Network"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetLocationFromIP(tc.ip)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateSessionName(t *testing.T) {
	const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	withLocation := GenerateSessionName(chromeUA, "Berlin, Germany")
	if withLocation != "Chrome on Windows (Berlin, Germany)" {
		t.Errorf("unexpected session name: %q", withLocation)
	}

	withoutLocation := GenerateSessionName(chromeUA, "")
	if withoutLocation != "Chrome on Windows (Unknown Location)" {
		t.Errorf("unexpected session name: %q", withoutLocation)
	}
}
