package services

import (
	"context"
	"testing"

	"ecommerce-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRejectsDuplicate(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.categories.Create(context.Background(), models.CategoryRequest{Name: "electronics"})
	require.ErrorIs(t, err, models.ErrDuplicateCategory)
	assert.Equal(t, models.KindBusinessRule, models.KindOf(err))
}

func TestCategoryListsAreCachedAndInvalidated(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	inactive := false
	_, err := f.categories.Create(ctx, models.CategoryRequest{Name: "Archive", Active: &inactive})
	require.NoError(t, err)

	all, err := f.categories.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	active, err := f.categories.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	reads := f.categoryStore.reads
	_, err = f.categories.GetAll(ctx)
	require.NoError(t, err)
	_, err = f.categories.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, reads, f.categoryStore.reads)

	productInvalidations := f.productCache.invalidations
	_, err = f.categories.Update(ctx, f.electronics.ID, models.CategoryRequest{Name: "Gadgets"})
	require.NoError(t, err)
	assert.Equal(t, productInvalidations+1, f.productCache.invalidations)

	got, err := f.categories.GetByID(ctx, f.electronics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", got.Name)
	assert.True(t, got.Active)
}

func TestCategoryNotFound(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.categories.GetByID(ctx, 404)
	require.ErrorIs(t, err, models.ErrCategoryNotFound)
	_, err = f.categories.Update(ctx, 404, models.CategoryRequest{Name: "x"})
	require.ErrorIs(t, err, models.ErrCategoryNotFound)
	require.ErrorIs(t, f.categories.Delete(ctx, 404), models.ErrCategoryNotFound)

	require.NoError(t, f.categories.Delete(ctx, f.electronics.ID))
	_, err = f.categories.GetByID(ctx, f.electronics.ID)
	require.ErrorIs(t, err, models.ErrCategoryNotFound)
}
