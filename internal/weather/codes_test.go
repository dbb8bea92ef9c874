package weather

import "testing"

func TestDescribe(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{45, "Fog"},
		{53, "Drizzle"},
		{63, "Rain"},
		{75, "Snow"},
		{81, "Rain showers"},
		{86, "Snow showers"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm"},
		{42, "Unknown"},
	}
	for _, c := range cases {
		if got := Describe(c.code); got != c.want {
			t.Fatalf("Describe(%d) = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestSevere(t *testing.T) {
	if Severe(82) {
		t.Fatal("rain showers are not severe")
	}
	if !Severe(95) || !Severe(99) {
		t.Fatal("thunderstorm codes are severe")
	}
}
