package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorIs(t *testing.T) {
	err := NewError(ErrCartNotFound, "cart not found for user: %d", 7)

	require.ErrorIs(t, err, ErrCartNotFound)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrOrderNotFound)
	require.NotErrorIs(t, err, ErrBusinessRule)
	require.Equal(t, "cart not found for user: 7", err.Error())
}

func TestAppErrorThroughWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("add item: %w", WrapError(ErrUpstream, cause, "catalog unreachable"))

	require.ErrorIs(t, err, ErrUpstream)
	require.ErrorIs(t, err, cause)
	require.Equal(t, KindUpstream, KindOf(err))
	require.Equal(t, ErrorKind(""), KindOf(cause))
}

func TestPageTotalPages(t *testing.T) {
	require.Equal(t, 0, Page[int]{Size: 10}.TotalPages())
	require.Equal(t, 1, Page[int]{Size: 10, TotalItems: 10}.TotalPages())
	require.Equal(t, 3, Page[int]{Size: 10, TotalItems: 21}.TotalPages())

	mapped := MapPage(Page[int]{Items: []int{1, 2}, Page: 1, Size: 2, TotalItems: 4}, func(i int) string {
		return fmt.Sprint(i * 10)
	})
	require.Equal(t, []string{"10", "20"}, mapped.Items)
	require.Equal(t, 2, mapped.TotalPages())
	require.Equal(t, 2, PageRequest{Page: 1, Size: 2}.Offset())
}
