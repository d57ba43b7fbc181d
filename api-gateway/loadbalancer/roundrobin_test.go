package loadbalancer

import "testing"

func TestNextCyclesThroughServers(t *testing.T) {
	servers := []string{"http://a:8080", "http://b:8080", "http://c:8080"}
	rr := NewRoundRobin(servers)

	for round := 0; round < 2; round++ {
		for _, want := range servers {
			if got := rr.Next(); got != want {
				t.Fatalf("Next() = %q, want %q", got, want)
			}
		}
	}
}

func TestNewRoundRobinDefaultsWhenEmpty(t *testing.T) {
	rr := NewRoundRobin(nil)
	if got := rr.Next(); got != "http://localhost:8080" {
		t.Fatalf("Next() = %q, want default instance", got)
	}
}

func TestGetServersReturnsCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})
	servers := rr.GetServers()
	servers[0] = "mutated"
	if got := rr.Next(); got != "http://a:8080" {
		t.Fatal("GetServers exposed internal slice")
	}
}
