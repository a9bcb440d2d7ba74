package selector

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

func TestResolve(t *testing.T) {
	defaults := []int{9, 3, 7}

	tests := []struct {
		name  string
		value string
		want  []int
	}{
		{"all keeps default order", "all", []int{9, 3, 7}},
		{"all is case-insensitive", " ALL ", []int{9, 3, 7}},
		{"single value", "5", []int{5}},
		{"inclusive range", "3-6", []int{3, 4, 5, 6}},
		{"spaced range", "2020 - 2022", []int{2020, 2021, 2022}},
		{"one-element range", "4-4", []int{4}},
		{"reversed range is empty", "6-3", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.value, defaults)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}

func TestResolveDoesNotAliasDefaults(t *testing.T) {
	defaults := []int{1, 2}
	got, err := Resolve("all", defaults)
	require.NoError(t, err)
	got[0] = 99
	require.Equal(t, 1, defaults[0])
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		value string
		want  error
	}{
		{"a-5", ErrInvalidRange},
		{"5-b", ErrInvalidRange},
		{"-5", ErrInvalidRange},
		{"1-2-3", ErrInvalidRange},
		{"five", ErrInvalidValue},
		{"", ErrInvalidValue},
	}

	for _, tt := range tests {
		_, err := Resolve(tt.value, nil)
		if !errors.Is(err, tt.want) {
			t.Errorf("Resolve(%q) error = %v, want %v", tt.value, err, tt.want)
		}
	}
}

func TestDefaultRanges(t *testing.T) {
	years := Years(2026)
	require.Equal(t, 2002, years[0])
	require.Equal(t, 2024, years[len(years)-1])
	require.Len(t, years, 23)

	require.Equal(t, []int{2020, 2021}, YearsFrom(2020, 2023))

	weeks := Weeks()
	require.Len(t, weeks, 17)
	require.Equal(t, 1, weeks[0])
	require.Equal(t, 17, weeks[16])
}

func TestResolvePositions(t *testing.T) {
	all, err := ResolvePositions("all")
	require.NoError(t, err)
	require.Equal(t, models.AllPositions, all)

	single, err := ResolvePositions("QB")
	require.NoError(t, err)
	require.Equal(t, []models.Position{models.Quarterback}, single)

	_, err = ResolvePositions("qbb")
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.Contains(t, err.Error(), `did you mean "qb"`)

	_, err = ResolvePositions("zzz")
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.Contains(t, err.Error(), "expected one of qb, rb, wr, te, k, dst")
}
