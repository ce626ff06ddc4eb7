package md2html

import (
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit is capped",
			workers: MaxWorkers + 10,
			want:    MaxWorkers,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs, MinWorkers), MaxWorkers),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs, MinWorkers), MaxWorkers),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveWorkers(tt.workers)
			if got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolveWorkers_Bounds(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 0, 1, 7, 1000} {
		got := ResolveWorkers(n)
		if got < MinWorkers || got > MaxWorkers {
			t.Errorf("ResolveWorkers(%d) = %d, outside [%d, %d]", n, got, MinWorkers, MaxWorkers)
		}
	}
}
