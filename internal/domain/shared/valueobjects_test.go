package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	assert.Equal(t, Page{Offset: 0, Limit: 10}, Page{}.Normalize())
	assert.Equal(t, Page{Offset: 0, Limit: 100}, Page{Limit: 500}.Normalize())
	assert.Equal(t, Page{Offset: 0, Limit: 10}, Page{Offset: -5, Limit: -1}.Normalize())
	assert.Equal(t, Page{Offset: 20, Limit: 10}, Page{Offset: 20, Limit: 10}.Normalize())
}

func TestPage_Number(t *testing.T) {
	assert.Equal(t, 1, Page{Offset: 0, Limit: 10}.Number())
	assert.Equal(t, 3, Page{Offset: 20, Limit: 10}.Number())
}

func TestNewPagedResult(t *testing.T) {
	items := []string{"a", "b", "c"}
	result := NewPagedResult(items, 23, Page{Offset: 10, Limit: 10})

	assert.Equal(t, items, result.Items)
	assert.Equal(t, 23, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Size)
	assert.Equal(t, 3, result.Pages)
}

func TestNewPagedResult_EmptyTotal(t *testing.T) {
	result := NewPagedResult([]string{}, 0, DefaultPage())
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 1, result.Page)
}

func TestUserID_Validation(t *testing.T) {
	id, err := NewUserID("7ed99bd0-87b2-4dbb-a97b-596c3f29c49b")
	assert.NoError(t, err)
	assert.Equal(t, "7ed99bd0-87b2-4dbb-a97b-596c3f29c49b", id.String())

	_, err = NewUserID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestDomainError_Unwrapping(t *testing.T) {
	err := NewDomainError("goal", "Create", ErrNotFound, "goal not found")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))

	wrapped := WrapError("goal", "Create", err)
	assert.True(t, IsNotFound(wrapped))
}
